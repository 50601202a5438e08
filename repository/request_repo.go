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

type MongoRequestRepository struct {
	collection *mongo.Collection
}

func NewMongoRequestRepository(db *mongo.Database) *MongoRequestRepository {
	return &MongoRequestRepository{collection: db.Collection("recycling_requests")}
}

func (r *MongoRequestRepository) Create(ctx context.Context, req *models.RecyclingRequest) error {
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, req)
	return err
}

func (r *MongoRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RecyclingRequest, error) {
	var req models.RecyclingRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func buildRequestFilter(filter RequestFilter) bson.M {
	switch {
	case filter.UserID != nil:
		return bson.M{"user_id": *filter.UserID}
	case filter.ReceiverID != nil:
		return bson.M{"$or": bson.A{
			bson.M{"assigned_receiver.id": *filter.ReceiverID},
			bson.M{"received_by": filter.ReceiverID.Hex()},
		}}
	}
	return bson.M{}
}

func (r *MongoRequestRepository) List(ctx context.Context, filter RequestFilter) ([]models.RecyclingRequest, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, buildRequestFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []models.RecyclingRequest{}
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MongoRequestRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.RecyclingRequest, error) {
	delete(updates, "status")
	updates["updated_at"] = time.Now().UTC()

	var req models.RecyclingRequest
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Transition pins the expected current status in the update filter, so two
// concurrent writers cannot both advance the same request: the loser sees
// ErrStatusConflict instead of silently clobbering the winner.
func (r *MongoRequestRepository) Transition(ctx context.Context, id primitive.ObjectID, fromStatus, toStatus string, set bson.M) (*models.RecyclingRequest, error) {
	if set == nil {
		set = bson.M{}
	}
	set["status"] = toStatus
	set["updated_at"] = time.Now().UTC()

	var req models.RecyclingRequest
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": fromStatus},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing document from a stale precondition.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *MongoRequestRepository) DeleteMatching(ctx context.Context, filter RequestFilter) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, buildRequestFilter(filter))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
