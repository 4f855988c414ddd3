package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"firebase.google.com/go/v4/db"
)

// FirebaseStore implements DocumentStore on the Firebase Realtime Database,
// the hosted backend of record. The Admin SDK has no streaming listener, so
// Subscribe is poll-based at a configurable interval.
type FirebaseStore struct {
	client       *db.Client
	pollInterval time.Duration
}

// NewFirebaseStore wraps an initialized Realtime Database client.
// pollInterval governs Subscribe; zero falls back to 5s.
func NewFirebaseStore(client *db.Client, pollInterval time.Duration) *FirebaseStore {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &FirebaseStore{client: client, pollInterval: pollInterval}
}

// Get reads the value at path into dest. A missing node leaves dest
// untouched; the RTDB returns null for absent paths.
func (f *FirebaseStore) Get(ctx context.Context, path string, dest any) error {
	if err := f.client.NewRef(path).Get(ctx, dest); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// GetCollection reads all sibling records under path in one round trip.
func (f *FirebaseStore) GetCollection(ctx context.Context, path string) (map[string]map[string]any, error) {
	var raw map[string]map[string]any
	if err := f.client.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", path, err)
	}
	if raw == nil {
		raw = make(map[string]map[string]any)
	}
	return raw, nil
}

// Update applies a merge-semantics partial update at path.
func (f *FirebaseStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := f.client.NewRef(path).Update(ctx, fields); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}

// Set overwrites the value at path.
func (f *FirebaseStore) Set(ctx context.Context, path string, value any) error {
	if err := f.client.NewRef(path).Set(ctx, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// Delete removes the node at path.
func (f *FirebaseStore) Delete(ctx context.Context, path string) error {
	if err := f.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// MultiUpdate issues a single multi-location update rooted at "/". The RTDB
// applies all paths atomically; nil values delete.
func (f *FirebaseStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	if err := f.client.NewRef("/").Update(ctx, updates); err != nil {
		return fmt.Errorf("failed multi-path update: %w", err)
	}
	return nil
}

// Transaction maps onto the RTDB's native compare-and-swap transaction.
func (f *FirebaseStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	err := f.client.NewRef(path).Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var current map[string]any
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		return fn(current)
	})
	if err != nil {
		return fmt.Errorf("transaction on %s failed: %w", path, err)
	}
	return nil
}

// Subscribe polls the node at pollInterval and fires fn on the initial value
// and every observed change. The returned handle stops the poll loop.
func (f *FirebaseStore) Subscribe(ctx context.Context, path string, fn SubscribeFunc) (UnsubscribeFunc, error) {
	var initial map[string]any
	if err := f.client.NewRef(path).Get(ctx, &initial); err != nil {
		return nil, fmt.Errorf("failed to read %s for subscription: %w", path, err)
	}
	fn(initial)

	stop := make(chan struct{})
	go func() {
		last := initial
		ticker := time.NewTicker(f.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				var current map[string]any
				if err := f.client.NewRef(path).Get(ctx, &current); err != nil {
					// Transient read failures keep the last snapshot; the
					// next tick retries.
					continue
				}
				if !reflect.DeepEqual(last, current) {
					last = current
					fn(current)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
	}, nil
}
