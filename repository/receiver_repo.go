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

type MongoReceiverRepository struct {
	collection *mongo.Collection
}

func NewMongoReceiverRepository(db *mongo.Database) *MongoReceiverRepository {
	return &MongoReceiverRepository{collection: db.Collection("receivers")}
}

func (r *MongoReceiverRepository) Create(ctx context.Context, rec *models.Receiver) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, rec)
	if isDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *MongoReceiverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Receiver, error) {
	var rec models.Receiver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MongoReceiverRepository) GetByEmail(ctx context.Context, email string) (*models.Receiver, error) {
	var rec models.Receiver
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MongoReceiverRepository) List(ctx context.Context) ([]models.Receiver, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	receivers := []models.Receiver{}
	if err = cursor.All(ctx, &receivers); err != nil {
		return nil, err
	}
	return receivers, nil
}

func (r *MongoReceiverRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Receiver, error) {
	updates["updated_at"] = time.Now().UTC()

	var rec models.Receiver
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if isDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MongoReceiverRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
