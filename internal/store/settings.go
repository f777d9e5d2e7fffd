package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

// Well-known app_meta keys.
const (
	metaJWTSecret  = "jwt_secret"
	metaAdminToken = "admin_token"
)

// JWTSecret returns the token signing secret from app_meta, generating
// and persisting one on first use.
func JWTSecret(docs *document.Store) (string, error) {
	return ensureMeta(docs, metaJWTSecret)
}

// AdminToken returns the static API token from app_meta, generating and
// persisting one on first use.
func AdminToken(docs *document.Store) (string, error) {
	return ensureMeta(docs, metaAdminToken)
}

// ensureMeta generates a candidate value up front, then inserts it only
// if the key is still absent inside the update slot, so concurrent
// first-time callers agree on a single value.
func ensureMeta(docs *document.Store, key string) (string, error) {
	candidate, err := randomHex(32)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", key, err)
	}

	var value string
	err = docs.Update(func(doc *model.Document) error {
		if existing := doc.AppMeta[key]; existing != "" {
			value = existing
			return nil
		}
		doc.AppMeta[key] = candidate
		value = candidate
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}
	return value, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
