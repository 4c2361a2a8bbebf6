// Package kv is the string-only preference store behind session state
// (theme preference, portal tokens, cached user blobs). Structured values
// are JSON-serialized text; a value that fails to parse is treated as
// absent, never as a fatal error.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kv: not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
