// Package store defines the document-store boundary the record services are
// built on. The hosted backend (Firebase Realtime Database), the self-hosted
// MongoDB backend and the in-memory test store all satisfy the same narrow
// contract, so everything above this package is backend-agnostic.
package store

import "context"

// TransactionFunc receives the current value of a node (nil when the node is
// absent) and returns the value to commit. Returning an error aborts the
// transaction without writing.
type TransactionFunc func(current map[string]any) (map[string]any, error)

// SubscribeFunc receives the value of a subscribed node. It is invoked once
// with the initial value and again after every subsequent change. A nil map
// means the node is absent, which is a valid empty state.
type SubscribeFunc func(value map[string]any)

// UnsubscribeFunc tears down a live subscription. Every subscriber must call
// it when the consuming view goes away; an unreleased handle leaks a live
// listener for the rest of the process lifetime.
type UnsubscribeFunc func()

// DocumentStore is the injected persistence boundary. Paths are
// slash-separated, e.g. "businesses/4" or "businesses/4/status".
type DocumentStore interface {
	// Get reads the value at path into dest. An absent path leaves dest
	// untouched and returns nil; absence is not an error.
	Get(ctx context.Context, path string, dest any) error

	// GetCollection reads a flat collection of sibling records keyed by
	// string. An absent collection yields an empty map.
	GetCollection(ctx context.Context, path string) (map[string]map[string]any, error)

	// Update applies a partial update with merge semantics: only the given
	// fields are written, everything else at path is preserved.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Set overwrites the value at path entirely.
	Set(ctx context.Context, path string, value any) error

	// Delete removes the value at path. Deleting an absent path is a no-op.
	Delete(ctx context.Context, path string) error

	// MultiUpdate applies all path/value pairs atomically in one call. A nil
	// value deletes the path.
	MultiUpdate(ctx context.Context, updates map[string]any) error

	// Transaction runs fn against the node at path as an atomic
	// read-modify-write. Concurrent transactions on the same node serialize;
	// the sequential-ID allocator depends on this.
	Transaction(ctx context.Context, path string, fn TransactionFunc) error

	// Subscribe registers fn for live updates of the node at path and
	// returns the mandatory disposal handle.
	Subscribe(ctx context.Context, path string, fn SubscribeFunc) (UnsubscribeFunc, error)
}
