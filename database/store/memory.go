package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-process DocumentStore holding a JSON-like tree. It is
// the store double used by the test suites and backs local development when
// no backend is configured. Subscriptions get true event fan-out.
type MemoryStore struct {
	mu      sync.Mutex
	root    map[string]any
	subs    map[int]*memSubscriber
	nextSub int
}

type memSubscriber struct {
	path string
	fn   SubscribeFunc
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: make(map[string]any),
		subs: make(map[int]*memSubscriber),
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// normalize round-trips v through JSON so stored values behave like a real
// JSON tree regardless of the Go type written.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return out, nil
}

func (m *MemoryStore) getNode(segments []string) (any, bool) {
	var cur any = m.root
	for _, seg := range segments {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		child, ok := node[seg]
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

func (m *MemoryStore) setNode(segments []string, value any) {
	if len(segments) == 0 {
		if node, ok := value.(map[string]any); ok {
			m.root = node
		} else {
			m.root = make(map[string]any)
		}
		return
	}
	cur := m.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := cur[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			cur[seg] = child
		}
		cur = child
	}
	last := segments[len(segments)-1]
	if value == nil {
		delete(cur, last)
	} else {
		cur[last] = value
	}
}

// Get reads the value at path into dest. Absent paths leave dest untouched.
func (m *MemoryStore) Get(ctx context.Context, path string, dest any) error {
	m.mu.Lock()
	node, ok := m.getNode(splitPath(path))
	m.mu.Unlock()
	if !ok || node == nil {
		return nil
	}
	data, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to encode value at %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode value at %s: %w", path, err)
	}
	return nil
}

// GetCollection reads a flat set of sibling records under path.
func (m *MemoryStore) GetCollection(ctx context.Context, path string) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)
	m.mu.Lock()
	node, ok := m.getNode(splitPath(path))
	m.mu.Unlock()
	if !ok {
		return out, nil
	}
	children, ok := node.(map[string]any)
	if !ok {
		return out, nil
	}
	for key, child := range children {
		rec, _ := child.(map[string]any)
		copied, err := normalize(rec)
		if err != nil {
			return nil, err
		}
		recCopy, _ := copied.(map[string]any)
		out[key] = recCopy
	}
	return out, nil
}

// Update merges the given fields into the node at path.
func (m *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	m.mu.Lock()
	for key, value := range fields {
		norm, err := normalize(value)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.setNode(splitPath(path+"/"+key), norm)
	}
	notify := m.pendingNotifications(path)
	m.mu.Unlock()
	runNotifications(notify)
	return nil
}

// Set overwrites the node at path.
func (m *MemoryStore) Set(ctx context.Context, path string, value any) error {
	norm, err := normalize(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.setNode(splitPath(path), norm)
	notify := m.pendingNotifications(path)
	m.mu.Unlock()
	runNotifications(notify)
	return nil
}

// Delete removes the node at path.
func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	m.setNode(splitPath(path), nil)
	notify := m.pendingNotifications(path)
	m.mu.Unlock()
	runNotifications(notify)
	return nil
}

// MultiUpdate applies all path/value pairs under one lock; nil deletes.
func (m *MemoryStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	m.mu.Lock()
	for path, value := range updates {
		norm, err := normalize(value)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.setNode(splitPath(path), norm)
	}
	var notify []func()
	for path := range updates {
		notify = append(notify, m.pendingNotifications(path)...)
	}
	m.mu.Unlock()
	runNotifications(notify)
	return nil
}

// Transaction runs fn against the node at path while holding the store lock,
// so concurrent transactions on the same store serialize.
func (m *MemoryStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	m.mu.Lock()
	var current map[string]any
	if node, ok := m.getNode(splitPath(path)); ok {
		if asMap, ok := node.(map[string]any); ok {
			current = asMap
		}
	}
	next, err := fn(current)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	norm, err := normalize(next)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.setNode(splitPath(path), norm)
	notify := m.pendingNotifications(path)
	m.mu.Unlock()
	runNotifications(notify)
	return nil
}

// Subscribe registers fn for the node at path. The initial value fires
// synchronously before Subscribe returns.
func (m *MemoryStore) Subscribe(ctx context.Context, path string, fn SubscribeFunc) (UnsubscribeFunc, error) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = &memSubscriber{path: path, fn: fn}
	value := m.valueAt(path)
	m.mu.Unlock()

	fn(value)

	unsubscribe := func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
	return unsubscribe, nil
}

// valueAt returns the node at path as a map, or nil when absent.
// Caller must hold the lock.
func (m *MemoryStore) valueAt(path string) map[string]any {
	node, ok := m.getNode(splitPath(path))
	if !ok {
		return nil
	}
	copied, err := normalize(node)
	if err != nil {
		return nil
	}
	asMap, _ := copied.(map[string]any)
	return asMap
}

// pendingNotifications collects callbacks for every subscriber whose watched
// node overlaps the changed path. Caller must hold the lock; the returned
// closures are invoked after it is released.
func (m *MemoryStore) pendingNotifications(changed string) []func() {
	changedSegs := splitPath(changed)
	var out []func()
	for _, sub := range m.subs {
		subSegs := splitPath(sub.path)
		if !pathsOverlap(changedSegs, subSegs) {
			continue
		}
		value := m.valueAt(sub.path)
		fn := sub.fn
		out = append(out, func() { fn(value) })
	}
	return out
}

func pathsOverlap(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func runNotifications(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
