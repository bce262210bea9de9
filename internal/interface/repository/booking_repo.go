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

// MongoBookingRepository implements BookingRepository
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	ctx := context.Background()

	userIndex := mongo.IndexModel{
		Keys: bson.M{"userId": 1},
	}
	mechanicIndex := mongo.IndexModel{
		Keys: bson.M{"mechanicId": 1},
	}

	// Unique sparse index backing createBooking idempotency
	keyIndex := mongo.IndexModel{
		Keys:    bson.M{"idempotencyKey": 1},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{userIndex, mechanicIndex, keyIndex})

	return &MongoBookingRepository{
		collection: collection,
	}
}

// Insert stores a new booking, generating an ID when none was assigned
func (r *MongoBookingRepository) Insert(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflictf("booking with key %s already exists", booking.IdempotencyKey)
		}
		return apperrors.Storage("insert booking", err)
	}
	return nil
}

// FindByID finds a booking by ID
func (r *MongoBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("booking %s", id)
		}
		return nil, apperrors.Storage("find booking", err)
	}
	return &booking, nil
}

// FindByIdempotencyKey finds the booking created under a client key
func (r *MongoBookingRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.collection.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("booking with key %s", key)
		}
		return nil, apperrors.Storage("find booking by key", err)
	}
	return &booking, nil
}

// DecideIfPending is the status compare-and-swap: the update filter requires
// the current status to be Pending, so of two racing decisions exactly one
// matches and the other observes a conflict.
func (r *MongoBookingRepository) DecideIfPending(ctx context.Context, id, status string, decidedAt time.Time) (*entity.Booking, error) {
	filter := bson.M{"_id": id, "status": entity.StatusPending}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"decidedAt": decidedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking entity.Booking
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Storage("decide booking", err)
	}

	// No pending document matched: distinguish decided from absent.
	existing, ferr := r.FindByID(ctx, id)
	if ferr != nil {
		return nil, ferr
	}
	return nil, apperrors.Conflictf("booking %s already %s", id, existing.Status)
}

// ListByUser returns all bookings created by the user
func (r *MongoBookingRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Booking, error) {
	return r.list(ctx, bson.M{"userId": userID}, "list bookings by user")
}

// ListByMechanic returns all bookings addressed to the mechanic
func (r *MongoBookingRepository) ListByMechanic(ctx context.Context, mechanicID string) ([]*entity.Booking, error) {
	return r.list(ctx, bson.M{"mechanicId": mechanicID}, "list bookings by mechanic")
}

func (r *MongoBookingRepository) list(ctx context.Context, filter bson.M, op string) ([]*entity.Booking, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Storage(op, err)
	}
	defer cursor.Close(ctx)

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, apperrors.Storage(op, err)
	}
	return bookings, nil
}
