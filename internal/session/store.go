// Package session keeps per-visitor play sessions in memory.
package session

import "context"

// Store maps session ids to values.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
	NewID() string
}
