package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DevTransport writes each message to dir as an .eml file plus a JSON
// summary instead of sending it.
type DevTransport struct {
	dir string
	now func() time.Time
}

func NewDevTransport(dir string) *DevTransport {
	return &DevTransport{dir: dir, now: time.Now}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HasHTML   bool   `json:"has_html"`
}

func (d *DevTransport) Deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	if err := msg.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrDeliveryFailed, err)
	}

	now := d.now()
	data, err := buildMIME(msg, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	base := fileStem(now, msg.Subject)
	if err := os.WriteFile(filepath.Join(d.dir, base+".eml"), data, 0o644); err != nil {
		return fmt.Errorf("%w: write eml: %w", ErrDeliveryFailed, err)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		From:      msg.From,
		To:        msg.To,
		Subject:   msg.Subject,
		HasHTML:   msg.HTML != "",
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %w", ErrDeliveryFailed, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("%w: write metadata: %w", ErrDeliveryFailed, err)
	}
	return nil
}

// fileStem names the .eml/.json pair: UTC send time, then a subject slug.
func fileStem(now time.Time, subject string) string {
	return now.UTC().Format("20060102T150405.000000000") + "-" + subjectSlug(subject)
}

const maxSlugLen = 60

// subjectSlug keeps lowercased ASCII letters and digits; every other run of
// characters collapses to a single dash.
func subjectSlug(subject string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(subject) {
		if r >= utf8.RuneSelf || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
		if b.Len() >= maxSlugLen {
			break
		}
	}
	if b.Len() == 0 {
		return "message"
	}
	return b.String()
}
