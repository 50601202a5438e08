package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecocollect/models"
)

type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func recipientFilter(key RecipientKey) bson.M {
	if key.UserID != nil {
		return bson.M{"user_id": *key.UserID}
	}
	if key.ReceiverID != nil {
		return bson.M{"receiver_id": *key.ReceiverID}
	}
	return bson.M{}
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, n)
	return err
}

func (r *MongoNotificationRepository) ListForRecipient(ctx context.Context, key RecipientKey) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, recipientFilter(key), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) TrimRecipient(ctx context.Context, key RecipientKey, keep int) (int64, error) {
	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, recipientFilter(key), findOptions)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var stale []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &stale); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, 0, len(stale))
	for _, doc := range stale {
		ids = append(ids, doc.ID)
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID, key RecipientKey) (*models.Notification, error) {
	filter := recipientFilter(key)
	filter["_id"] = id

	var n models.Notification
	err := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *MongoNotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"read":       true,
		"created_at": bson.M{"$lte": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
