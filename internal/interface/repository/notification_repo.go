package repository

import (
	"context"
	"errors"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"

	"github.com/google/uuid"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepository implements NotificationRepository
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new notification repository
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	collection := db.Collection("notifications")

	ctx := context.Background()

	// Compound index for the newest-first per-user feed
	feedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, feedIndex)

	return &MongoNotificationRepository{
		collection: collection,
	}
}

// Insert stores a new notification, generating an ID when none was assigned
func (r *MongoNotificationRepository) Insert(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}

	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return apperrors.Storage("insert notification", err)
	}
	return nil
}

// ListByUser returns the user's notifications, newest first
func (r *MongoNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, apperrors.Storage("list notifications", err)
	}
	defer cursor.Close(ctx)

	var notifications []*entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, apperrors.Storage("decode notifications", err)
	}
	return notifications, nil
}

// MarkRead sets the read flag on a notification owned by userID
func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFoundf("notification %s", id)
		}
		return apperrors.Storage("mark notification read", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFoundf("notification %s", id)
	}
	return nil
}
