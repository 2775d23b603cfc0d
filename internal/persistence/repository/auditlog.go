package repository

import (
	"context"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditLogRepository struct {
	db *mongo.Database
}

func NewAuditLogRepository(database *mongo.Database) domain.AuditRepository {
	return &auditLogRepository{db: database}
}

func (r *auditLogRepository) Record(ctx context.Context, entry *domain.AuditLogEntry) error {
	collection := r.db.Collection(db.AuditLogsCollection)

	_, err := collection.InsertOne(ctx, entry)
	return err
}

func (r *auditLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AuditLogEntry, error) {
	collection := r.db.Collection(db.AuditLogsCollection)

	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditLogRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.AuditLogsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "action", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
