package repository

import (
	"context"
	"errors"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type profileRepository struct {
	db *mongo.Database
}

func NewProfileRepository(database *mongo.Database) domain.ProfileRepository {
	return &profileRepository{db: database}
}

// Get reads the profile fresh on every call. The pause gate depends on
// this never being cached in process.
func (r *profileRepository) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	collection := r.db.Collection(db.UserProfilesCollection)

	var profile domain.UserProfile
	err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Pausing is an explicit settings action; absence means unpaused.
		return domain.UserProfile{ID: userID, ActivePersona: domain.PersonaDefault}, nil
	}
	if err != nil {
		return domain.UserProfile{}, err
	}

	return profile, nil
}
