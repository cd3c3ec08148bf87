// Package storage provides the key-value persistence boundary of the ledger.
// Backends behave like a local, always-available store: a full value per key,
// no partial writes.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the injected persistence dependency of the ledger store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
