package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
	"github.com/unclebandit/mailer-backend/internal/model"
)

type EmailRepositoryInterface interface {
	Save(ctx context.Context, e *model.Email) (*model.Email, error)
	FindAll(ctx context.Context, req model.PageRequest) (*model.Page, error)
	FindByID(ctx context.Context, id int64) (*model.Email, error)
}

// sortColumns maps the JSON field names accepted in ?sort= to table columns.
var sortColumns = map[string]string{
	"id":            "id",
	"ownerRef":      "owner_ref",
	"emailFrom":     "email_from",
	"emailTo":       "email_to",
	"subject":       "subject",
	"sendDateEmail": "send_date_email",
	"statusEmail":   "status_email",
}

// SortColumn resolves a sort field to its column name.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

const emailColumns = `id, owner_ref, email_from, email_to, subject, text, html, send_date_email, status_email`

type EmailRepository struct {
	DB *sql.DB
}

// Save inserts the email and fills in the generated ID.
func (r *EmailRepository) Save(ctx context.Context, e *model.Email) (*model.Email, error) {
	query := `
		INSERT INTO tb_email (owner_ref, email_from, email_to, subject, text, html, send_date_email, status_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.OwnerRef,
		e.EmailFrom,
		e.EmailTo,
		e.Subject,
		e.Text,
		nullString(e.HTML),
		e.SendDateEmail,
		nullString(string(e.StatusEmail)),
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("insert email: %w", err)
	}
	return e, nil
}

func (r *EmailRepository) FindByID(ctx context.Context, id int64) (*model.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM tb_email WHERE id=$1`
	e, err := scanEmail(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewEmailNotFound(id)
		}
		return nil, err
	}
	return e, nil
}

func (r *EmailRepository) FindAll(ctx context.Context, req model.PageRequest) (*model.Page, error) {
	req = req.Normalize()
	column, ok := SortColumn(req.Sort)
	if !ok {
		return nil, appErrors.NewValidation("sort", fmt.Sprintf("unknown sort field %q", req.Sort))
	}

	query := fmt.Sprintf(
		`SELECT %s FROM tb_email ORDER BY %s %s, id %s LIMIT $1 OFFSET $2`,
		emailColumns, column, req.Direction, req.Direction,
	)
	rows, err := r.DB.QueryContext(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []model.Email{}
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tb_email`).Scan(&total); err != nil {
		return nil, err
	}

	return model.NewPage(emails, total, req), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmail(row rowScanner) (*model.Email, error) {
	var (
		e      model.Email
		html   sql.NullString
		sentAt sql.NullTime
		status sql.NullString
	)
	err := row.Scan(&e.ID, &e.OwnerRef, &e.EmailFrom, &e.EmailTo, &e.Subject, &e.Text, &html, &sentAt, &status)
	if err != nil {
		return nil, err
	}
	e.HTML = html.String
	if sentAt.Valid {
		t := sentAt.Time
		e.SendDateEmail = &t
	}
	e.StatusEmail = model.StatusEmail(status.String)
	if status.Valid && !e.StatusEmail.Valid() {
		return nil, fmt.Errorf("email %d: unknown status %q", e.ID, status.String)
	}
	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ EmailRepositoryInterface = (*EmailRepository)(nil)
