// Package allocator assigns the human-readable incrementing IDs used as
// record keys in the businesses and inquiries collections.
package allocator

import (
	"context"
	"fmt"
	"strconv"

	"barberhub/database/store"
)

// NextKey computes the next sequential key for a set of existing sibling
// keys: the largest base-10 parsable key plus one, as a decimal string with
// no padding. Non-numeric keys (legacy alphanumeric identifiers) are
// ignored. An empty set yields "1".
func NextKey(keys []string) string {
	max := 0
	for _, key := range keys {
		n, err := strconv.Atoi(key)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// NextID reads the collection at path and returns the next key. The read is
// a single round trip; failures propagate with no retry. This is the
// read-only half of allocation: it does not reserve the ID, so callers that
// may race must use Allocate instead.
func NextID(ctx context.Context, st store.DocumentStore, path string) (string, error) {
	records, err := st.GetCollection(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to scan %s for next id: %w", path, err)
	}
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	return NextKey(keys), nil
}

// Allocate atomically assigns the next key under path and writes value
// there, returning the allocated ID. The key computation and the write run
// inside a store transaction on the collection node, so two concurrent
// creations always receive distinct IDs. This replaces the original
// read-max-then-write sequence, whose lost-update window is documented in
// DESIGN.md.
func Allocate(ctx context.Context, st store.DocumentStore, path string, value map[string]any) (string, error) {
	var allocated string
	err := st.Transaction(ctx, path, func(current map[string]any) (map[string]any, error) {
		keys := make([]string, 0, len(current))
		for key := range current {
			keys = append(keys, key)
		}
		allocated = NextKey(keys)
		next := make(map[string]any, len(current)+1)
		for key, record := range current {
			next[key] = record
		}
		next[allocated] = value
		return next, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate id under %s: %w", path, err)
	}
	return allocated, nil
}
