package repository

import (
	"context"
	"errors"
	"time"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepository implements ProfileRepository
type MongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	collection := db.Collection("profiles")

	ctx := context.Background()

	roleIndex := mongo.IndexModel{
		Keys: bson.M{"role": 1},
	}

	// Compound index for the available-mechanic roster query
	rosterIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "available", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{roleIndex, rosterIndex})

	return &MongoProfileRepository{
		collection: collection,
	}
}

// Insert stores a new profile, generating an ID when none was assigned
func (r *MongoProfileRepository) Insert(ctx context.Context, profile *entity.Profile) error {
	if profile.ID == "" {
		profile.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflictf("profile %s already exists", profile.ID)
		}
		return apperrors.Storage("insert profile", err)
	}
	return nil
}

// FindByID finds a profile by ID
func (r *MongoProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("profile %s", id)
		}
		return nil, apperrors.Storage("find profile", err)
	}
	return &profile, nil
}

// Update merges the non-nil update fields into the stored document and
// returns the updated profile. ID and Role are never part of the update.
func (r *MongoProfileRepository) Update(ctx context.Context, id string, upd entity.ProfileUpdate) (*entity.Profile, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.DisplayName != nil {
		set["displayName"] = *upd.DisplayName
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Skills != nil {
		set["skills"] = *upd.Skills
	}
	if upd.VehicleType != nil {
		set["vehicleType"] = *upd.VehicleType
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile entity.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("profile %s", id)
		}
		return nil, apperrors.Storage("update profile", err)
	}
	return &profile, nil
}

// ListMechanics returns all mechanic profiles ordered by ID for a stable
// snapshot iteration
func (r *MongoProfileRepository) ListMechanics(ctx context.Context) ([]*entity.Profile, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"role": entity.RoleMechanic}, opts)
	if err != nil {
		return nil, apperrors.Storage("list mechanics", err)
	}
	defer cursor.Close(ctx)

	var mechanics []*entity.Profile
	if err := cursor.All(ctx, &mechanics); err != nil {
		return nil, apperrors.Storage("decode mechanics", err)
	}
	return mechanics, nil
}

// SetAvailability toggles the availability flag on a mechanic profile.
// The filter excludes documents already carrying the requested value, so an
// unchanged toggle reports no modification.
func (r *MongoProfileRepository) SetAvailability(ctx context.Context, mechanicID string, available bool) (bool, error) {
	filter := bson.M{"_id": mechanicID, "role": entity.RoleMechanic}
	update := bson.M{"$set": bson.M{
		"available": available,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, apperrors.Storage("set availability", err)
	}
	if result.MatchedCount == 0 {
		return false, apperrors.NotFoundf("mechanic %s", mechanicID)
	}
	return result.ModifiedCount > 0, nil
}
