package storage

import (
	"context"
	"errors"
	"regexp"
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrConflict means the document changed between Get and Put. Callers
	// reload and retry or surface a 409.
	ErrConflict = errors.New("document revision conflict")
)

// AnyRevision makes Put unconditional: create the document or overwrite
// whatever revision is there.
const AnyRevision int64 = -1

// Store is a revisioned JSON document store. Get unmarshals into out and
// returns the document's revision; Put succeeds only when the stored revision
// still matches rev (or rev is AnyRevision).
type Store interface {
	Get(ctx context.Context, key string, out interface{}) (int64, error)
	Put(ctx context.Context, key string, doc interface{}, rev int64) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

var keyPattern = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeKey strips everything outside [A-Za-z0-9._-]. Applied to the id
// components of storage keys, never to the path separators between them.
func SanitizeKey(key string) string {
	return keyPattern.ReplaceAllString(key, "")
}
