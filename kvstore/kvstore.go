// Package kvstore provides the key-value persistence behind uploaded ledgers
// and their aggregation results.
//
// A Store holds opaque byte values under string keys. Absence of a key is not
// an error: Get reports it through its boolean return, errors are reserved
// for storage failures.
package kvstore

import "context"

// Store is a flat key-value byte store.
type Store interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Get returns the value stored under key. The boolean is false when the
	// key is absent; err is non-nil only on storage failure.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
}
