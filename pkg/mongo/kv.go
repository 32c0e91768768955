package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the subset of *mongo.Collection used by KV.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

type record struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KV stores byte values as documents keyed by _id.
type KV struct {
	coll Collection
}

// NewKV stores records in the configured collection of client.
func NewKV(client *mongo.Client, cfg Config) *KV {
	if client == nil {
		panic("mongo: client is required")
	}
	return NewCollectionKV(client.Database(cfg.Database).Collection(cfg.Collection))
}

// NewCollectionKV stores records in coll. Panics if coll is nil.
func NewCollectionKV(coll Collection) *KV {
	if coll == nil {
		panic("mongo: collection is required")
	}
	return &KV{coll: coll}
}

// Get returns nil, nil when key does not exist.
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var rec record
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// CompareAndSwap inserts the document when old is nil, relying on the unique
// _id index to reject a concurrent create. Otherwise it updates the document
// only while its value still equals old.
func (s *KV) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	now := time.Now().UTC()

	if old == nil {
		_, err := s.coll.InsertOne(ctx, record{Key: key, Value: next, UpdatedAt: now})
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return err == nil, err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: key}, {Key: "value", Value: old}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "value", Value: next},
			{Key: "updated_at", Value: now},
		}}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}
