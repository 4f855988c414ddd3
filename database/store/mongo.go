package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements DocumentStore on MongoDB for self-hosted
// deployments. The first path segment is the collection, the second the
// document key, anything deeper a dotted field path inside the document.
// MultiUpdate and Transaction rely on server-side transactions, so the
// deployment must be a replica set.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore wraps a connected Mongo client.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(dbName)}
}

type mongoPath struct {
	coll   string
	key    string
	fields []string
}

func parseMongoPath(path string) (mongoPath, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return mongoPath{}, fmt.Errorf("empty document path")
	}
	p := mongoPath{coll: segs[0]}
	if len(segs) > 1 {
		p.key = segs[1]
	}
	if len(segs) > 2 {
		p.fields = segs[2:]
	}
	return p, nil
}

func (p mongoPath) fieldPath() string {
	return strings.Join(p.fields, ".")
}

// decodeInto converts a bson document into dest through a JSON round trip,
// matching the loose typing of the document-store contract.
func decodeInto(doc any, dest any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

func (m *MongoStore) fetchDoc(ctx context.Context, p mongoPath) (map[string]any, bool, error) {
	var doc map[string]any
	err := m.db.Collection(p.coll).FindOne(ctx, bson.M{"_id": p.key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch %s/%s: %w", p.coll, p.key, err)
	}
	delete(doc, "_id")
	return doc, true, nil
}

// Get reads the value at path into dest; absent documents leave dest untouched.
func (m *MongoStore) Get(ctx context.Context, path string, dest any) error {
	p, err := parseMongoPath(path)
	if err != nil {
		return err
	}
	if p.key == "" {
		return fmt.Errorf("point read requires a document path, got %s", path)
	}
	doc, found, err := m.fetchDoc(ctx, p)
	if err != nil || !found {
		return err
	}
	var node any = doc
	for _, field := range p.fields {
		asMap, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = asMap[field]
		if !ok {
			return nil
		}
	}
	return decodeInto(node, dest)
}

// GetCollection reads every document of the collection named by path.
func (m *MongoStore) GetCollection(ctx context.Context, path string) (map[string]map[string]any, error) {
	p, err := parseMongoPath(path)
	if err != nil {
		return nil, err
	}
	if p.key != "" {
		return nil, fmt.Errorf("collection read requires a collection path, got %s", path)
	}
	cursor, err := m.db.Collection(p.coll).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", p.coll, err)
	}
	defer cursor.Close(ctx)

	out := make(map[string]map[string]any)
	for cursor.Next(ctx) {
		var doc map[string]any
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", p.coll, err)
		}
		key, _ := doc["_id"].(string)
		if key == "" {
			continue
		}
		delete(doc, "_id")
		var rec map[string]any
		if err := decodeInto(doc, &rec); err != nil {
			return nil, err
		}
		out[key] = rec
	}
	return out, cursor.Err()
}

// Update merges fields into the document at path with upsert semantics.
// Field keys may themselves contain slashes, which map onto dotted paths.
func (m *MongoStore) Update(ctx context.Context, path string, fields map[string]any) error {
	p, err := parseMongoPath(path)
	if err != nil {
		return err
	}
	if p.key == "" {
		return fmt.Errorf("update requires a document path, got %s", path)
	}
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{}
	for key, value := range fields {
		dotted := strings.ReplaceAll(strings.Trim(key, "/"), "/", ".")
		if p.fieldPath() != "" {
			dotted = p.fieldPath() + "." + dotted
		}
		set[dotted] = value
	}
	opts := options.Update().SetUpsert(true)
	if _, err := m.db.Collection(p.coll).UpdateOne(ctx, bson.M{"_id": p.key}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}

// Set overwrites the value at path.
func (m *MongoStore) Set(ctx context.Context, path string, value any) error {
	p, err := parseMongoPath(path)
	if err != nil {
		return err
	}
	if p.key == "" {
		return fmt.Errorf("set requires a document path, got %s", path)
	}
	if len(p.fields) > 0 {
		opts := options.Update().SetUpsert(true)
		update := bson.M{"$set": bson.M{p.fieldPath(): value}}
		if _, err := m.db.Collection(p.coll).UpdateOne(ctx, bson.M{"_id": p.key}, update, opts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
		return nil
	}
	var doc map[string]any
	if err := decodeInto(value, &doc); err != nil {
		return err
	}
	doc["_id"] = p.key
	opts := options.Replace().SetUpsert(true)
	if _, err := m.db.Collection(p.coll).ReplaceOne(ctx, bson.M{"_id": p.key}, doc, opts); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// Delete removes the document or field at path; absent targets are a no-op.
func (m *MongoStore) Delete(ctx context.Context, path string) error {
	p, err := parseMongoPath(path)
	if err != nil {
		return err
	}
	if p.key == "" {
		if err := m.db.Collection(p.coll).Drop(ctx); err != nil {
			return fmt.Errorf("failed to delete collection %s: %w", p.coll, err)
		}
		return nil
	}
	if len(p.fields) > 0 {
		update := bson.M{"$unset": bson.M{p.fieldPath(): ""}}
		if _, err := m.db.Collection(p.coll).UpdateOne(ctx, bson.M{"_id": p.key}, update); err != nil {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
		return nil
	}
	if _, err := m.db.Collection(p.coll).DeleteOne(ctx, bson.M{"_id": p.key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// MultiUpdate applies every path/value pair inside one server transaction.
func (m *MongoStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for path, value := range updates {
			if value == nil {
				if err := m.Delete(sc, path); err != nil {
					return nil, err
				}
				continue
			}
			if err := m.Set(sc, path, value); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed multi-path update: %w", err)
	}
	return nil
}

// Transaction runs fn against the full collection node inside a server
// transaction, then reconciles the returned children against the stored ones.
func (m *MongoStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	p, err := parseMongoPath(path)
	if err != nil {
		return err
	}
	if p.key != "" {
		return fmt.Errorf("transaction requires a collection path, got %s", path)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		records, err := m.GetCollection(sc, p.coll)
		if err != nil {
			return nil, err
		}
		var current map[string]any
		if len(records) > 0 {
			current = make(map[string]any, len(records))
			for key, rec := range records {
				current[key] = rec
			}
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		for key := range records {
			if _, kept := next[key]; !kept {
				if err := m.Delete(sc, p.coll+"/"+key); err != nil {
					return nil, err
				}
			}
		}
		for key, value := range next {
			if err := m.Set(sc, p.coll+"/"+key, value); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("transaction on %s failed: %w", path, err)
	}
	return nil
}

// Subscribe fires the initial collection snapshot, then watches the
// collection's change stream and re-reads on every event.
func (m *MongoStore) Subscribe(ctx context.Context, path string, fn SubscribeFunc) (UnsubscribeFunc, error) {
	p, err := parseMongoPath(path)
	if err != nil {
		return nil, err
	}
	if p.key != "" {
		return nil, fmt.Errorf("subscription requires a collection path, got %s", path)
	}

	snapshot := func(c context.Context) (map[string]any, error) {
		records, err := m.GetCollection(c, p.coll)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, nil
		}
		value := make(map[string]any, len(records))
		for key, rec := range records {
			value[key] = rec
		}
		return value, nil
	}

	initial, err := snapshot(ctx)
	if err != nil {
		return nil, err
	}
	fn(initial)

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := m.db.Collection(p.coll).Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to watch %s: %w", p.coll, err)
	}

	go func() {
		defer stream.Close(streamCtx)
		for stream.Next(streamCtx) {
			value, err := snapshot(streamCtx)
			if err != nil {
				continue
			}
			fn(value)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}, nil
}
