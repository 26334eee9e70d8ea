package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/mailer-backend/internal/model"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *string:
			*p = f.values[i].(string)
		case *sql.NullString:
			if f.values[i] == nil {
				*p = sql.NullString{}
			} else {
				*p = sql.NullString{String: f.values[i].(string), Valid: true}
			}
		case *sql.NullTime:
			if f.values[i] == nil {
				*p = sql.NullTime{}
			} else {
				*p = sql.NullTime{Time: f.values[i].(time.Time), Valid: true}
			}
		}
	}
	return nil
}

func TestScanEmailNullableColumns(t *testing.T) {
	sent := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	row := fakeRow{values: []any{int64(7), "site", "a@x.com", "b@x.com", "Hi", "Hello", "<p>Hello</p>", sent, "SENT"}}

	e, err := scanEmail(row)
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.ID)
	assert.Equal(t, "<p>Hello</p>", e.HTML)
	require.NotNil(t, e.SendDateEmail)
	assert.True(t, sent.Equal(*e.SendDateEmail))
	assert.Equal(t, model.StatusSent, e.StatusEmail)

	row = fakeRow{values: []any{int64(8), "", "a@x.com", "b@x.com", "Hi", "Hello", nil, nil, nil}}
	e, err = scanEmail(row)
	require.NoError(t, err)
	assert.Empty(t, e.HTML)
	assert.Nil(t, e.SendDateEmail)
	assert.Equal(t, model.StatusEmail(""), e.StatusEmail)
}

func TestScanEmailRejectsUnknownStatus(t *testing.T) {
	row := fakeRow{values: []any{int64(9), "", "a@x.com", "b@x.com", "Hi", "Hello", nil, nil, "QUEUED"}}
	_, err := scanEmail(row)
	assert.ErrorContains(t, err, `unknown status "QUEUED"`)
}

func TestScanEmailPropagatesError(t *testing.T) {
	_, err := scanEmail(fakeRow{err: sql.ErrNoRows})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSortColumn(t *testing.T) {
	col, ok := SortColumn("sendDateEmail")
	assert.True(t, ok)
	assert.Equal(t, "send_date_email", col)

	_, ok = SortColumn("id; DROP TABLE tb_email")
	assert.False(t, ok)
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.Equal(t, sql.NullString{String: "ERROR", Valid: true}, nullString("ERROR"))
}
