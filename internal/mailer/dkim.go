package mailer

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	msgauthdkim "github.com/emersion/go-msgauth/dkim"
)

type DKIMConfig struct {
	Selector   string
	Domain     string
	KeyPath    string
	PrivateKey string
}

// DKIMSigner adds a DKIM-Signature header to outgoing messages.
// A nil *DKIMSigner is valid and leaves messages unsigned.
type DKIMSigner struct {
	domain     string
	selector   string
	key        crypto.Signer
	headerKeys []string
}

// NewDKIMSigner returns nil, nil when DKIM is not configured at all.
func NewDKIMSigner(cfg DKIMConfig) (*DKIMSigner, error) {
	selector := strings.TrimSpace(cfg.Selector)
	keyPath := strings.TrimSpace(cfg.KeyPath)
	domain := strings.TrimSpace(cfg.Domain)

	if selector == "" && keyPath == "" && cfg.PrivateKey == "" && domain == "" {
		return nil, nil
	}
	if selector == "" {
		return nil, fmt.Errorf("%w: dkim selector is required when enabling DKIM", ErrInvalidConfig)
	}

	var pemData []byte
	switch {
	case cfg.PrivateKey != "":
		pemData = []byte(cfg.PrivateKey)
	case keyPath != "":
		data, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, fmt.Errorf("dkim: read private key: %w", err)
		}
		pemData = data
	default:
		return nil, fmt.Errorf("%w: dkim needs a key path or an inline private key", ErrInvalidConfig)
	}

	key, err := decodeSigningKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("dkim: parse private key: %w", err)
	}

	return &DKIMSigner{
		domain:   domain,
		selector: selector,
		key:      key,
		headerKeys: []string{
			"from",
			"to",
			"subject",
			"date",
			"message-id",
			"mime-version",
			"content-type",
		},
	}, nil
}

// Sign returns message with a DKIM signature prepended. The signing domain
// falls back to the sender's domain.
func (s *DKIMSigner) Sign(message []byte, from string) ([]byte, error) {
	if s == nil || s.key == nil {
		return message, nil
	}

	domain := s.domain
	if domain == "" {
		domain = domainOf(from)
	}
	if domain == "" {
		return nil, fmt.Errorf("dkim: unable to determine signing domain")
	}

	opts := &msgauthdkim.SignOptions{
		Domain:                 domain,
		Selector:               s.selector,
		Signer:                 s.key,
		HeaderCanonicalization: msgauthdkim.CanonicalizationRelaxed,
		BodyCanonicalization:   msgauthdkim.CanonicalizationRelaxed,
		HeaderKeys:             s.headerKeys,
	}

	var signed bytes.Buffer
	if err := msgauthdkim.Sign(&signed, bytes.NewReader(message), opts); err != nil {
		return nil, fmt.Errorf("dkim: signing failed: %w", err)
	}
	return signed.Bytes(), nil
}

// decodeSigningKey reads the first PEM block and accepts the two key types
// DKIM defines: RSA (PKCS#1 or PKCS#8) and Ed25519 (PKCS#8).
func decodeSigningKey(pemData []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s block is not a PKCS#1 or PKCS#8 key: %w", block.Type, err)
	}
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return k, nil
	case ed25519.PrivateKey:
		return k, nil
	default:
		return nil, fmt.Errorf("unsupported DKIM key type %T", key)
	}
}
