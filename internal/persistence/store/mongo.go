package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each table in its own collection, documents keyed by
// the record id.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{db: database}
}

func (s *MongoStore) collection(table string) *mongo.Collection {
	return s.db.Collection(db.RecordCollectionPrefix + table)
}

func (s *MongoStore) Get(ctx context.Context, table, id string) (domain.Record, error) {
	var doc bson.M
	err := s.collection(table).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", table, id, err)
	}

	return fromDocument(doc), nil
}

func (s *MongoStore) Upsert(ctx context.Context, table string, rec domain.Record) error {
	id := rec.ID()
	if id == "" {
		return fmt.Errorf("upsert into %s: record has no id", table)
	}

	doc := bson.M{"_id": id}
	for k, v := range rec {
		doc[k] = v
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection(table).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", table, id, err)
	}

	return nil
}

func (s *MongoStore) LastModified(ctx context.Context, table, id string) (time.Time, bool, error) {
	var doc struct {
		LastModified time.Time `bson:"last_modified"`
	}

	opts := options.FindOne().SetProjection(bson.M{"last_modified": 1})
	err := s.collection(table).FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last_modified %s/%s: %w", table, id, err)
	}

	return doc.LastModified, true, nil
}

// fromDocument strips mongo's _id and rehydrates bson-specific scalar
// types into plain Go values.
func fromDocument(doc bson.M) domain.Record {
	rec := make(domain.Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		switch t := v.(type) {
		case primitive.DateTime:
			rec[k] = t.Time().UTC()
		default:
			rec[k] = v
		}
	}
	return rec
}
