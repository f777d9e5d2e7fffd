package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

// Revoked token ids live in app_meta under revoked:<jti>, with the
// token's expiry as the value so stale entries can be swept.
const revokedPrefix = "revoked:"

// RevokeToken adds a token's JTI to the revocation list and sweeps
// revocations whose tokens have expired on their own.
func RevokeToken(docs *document.Store, jti string, expiresAt time.Time) error {
	err := docs.Update(func(doc *model.Document) error {
		doc.AppMeta[revokedPrefix+jti] = expiresAt.UTC().Format(time.RFC3339)

		cutoff := now().UTC()
		for key, value := range doc.AppMeta {
			if !strings.HasPrefix(key, revokedPrefix) {
				continue
			}
			expiry, err := time.Parse(time.RFC3339, value)
			if err != nil || expiry.Before(cutoff) {
				delete(doc.AppMeta, key)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func IsTokenRevoked(docs *document.Store, jti string) (bool, error) {
	doc, err := docs.Load()
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	_, revoked := doc.AppMeta[revokedPrefix+jti]
	return revoked, nil
}
