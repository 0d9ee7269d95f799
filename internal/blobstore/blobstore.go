// Package blobstore is the key-value persistence collaborator of the
// tracking engine. Each key maps to one whole JSON document; every save
// rewrites the full blob, there is no partial format. The engine treats a
// missing key as "no prior data".
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no blob exists for the key.
var ErrNotFound = errors.New("blobstore: key not found")

// Store is the opaque load/save contract consumed by the workout store and
// the type registry.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}
