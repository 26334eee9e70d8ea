// internal/model/page.go
package model

import "math"

const (
	DefaultPageSize = 5
	MaxPageSize     = 100
	// MaxPage keeps Page*Size within an int.
	MaxPage = math.MaxInt32 / MaxPageSize
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// PageRequest selects one zero-based page of emails.
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction SortDirection
}

// Normalize fills in the listing defaults: page 0, size 5, id descending.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = "id"
	}
	if p.Direction != SortAsc {
		p.Direction = SortDesc
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of the email listing plus totals.
type Page struct {
	Content       []Email `json:"content"`
	TotalElements int     `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	Number        int     `json:"number"`
	Size          int     `json:"size"`
}

// NewPage computes the totals for content fetched with req.
func NewPage(content []Email, total int, req PageRequest) *Page {
	if content == nil {
		content = []Email{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = (total + req.Size - 1) / req.Size
	}
	return &Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        req.Page,
		Size:          req.Size,
	}
}
