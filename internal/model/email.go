// internal/model/email.go
package model

import "time"

// StatusEmail is the outcome of a single send attempt.
type StatusEmail string

const (
	StatusSent  StatusEmail = "SENT"
	StatusError StatusEmail = "ERROR"
)

// Valid reports whether s is one of the recorded outcomes.
func (s StatusEmail) Valid() bool {
	return s == StatusSent || s == StatusError
}

// Email is the persisted record of one send attempt. StatusEmail is empty
// until the send pipeline has run.
type Email struct {
	ID            int64       `db:"id" json:"id"`
	OwnerRef      string      `db:"owner_ref" json:"ownerRef"`
	EmailFrom     string      `db:"email_from" json:"emailFrom"`
	EmailTo       string      `db:"email_to" json:"emailTo"`
	Subject       string      `db:"subject" json:"subject"`
	Text          string      `db:"text" json:"text"`
	HTML          string      `db:"html" json:"html,omitempty"`
	SendDateEmail *time.Time  `db:"send_date_email" json:"sendDateEmail,omitempty"`
	StatusEmail   StatusEmail `db:"status_email" json:"statusEmail,omitempty"`
}
