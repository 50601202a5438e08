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

var (
	// ErrNotFound is returned when no document matches the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned on a unique-index violation for email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrStatusConflict is returned when a status transition's precondition
	// does not hold anymore (the document moved on under a concurrent writer).
	ErrStatusConflict = errors.New("status transition conflict")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error)
}

type ReceiverRepository interface {
	Create(ctx context.Context, r *models.Receiver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Receiver, error)
	GetByEmail(ctx context.Context, email string) (*models.Receiver, error)
	List(ctx context.Context) ([]models.Receiver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Receiver, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RequestFilter narrows the visible request set for a caller. Zero value
// means unfiltered (admin view).
type RequestFilter struct {
	UserID     *primitive.ObjectID
	ReceiverID *primitive.ObjectID
}

type RequestRepository interface {
	Create(ctx context.Context, r *models.RecyclingRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RecyclingRequest, error)
	// List returns matching requests sorted by creation time descending.
	List(ctx context.Context, filter RequestFilter) ([]models.RecyclingRequest, error)
	// UpdateFields applies a partial update that must not touch the status
	// field and returns the updated document.
	UpdateFields(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.RecyclingRequest, error)
	// Transition atomically moves a request from one status to another,
	// applying extra field updates in the same write. ErrStatusConflict is
	// returned when the document is no longer in fromStatus.
	Transition(ctx context.Context, id primitive.ObjectID, fromStatus, toStatus string, set bson.M) (*models.RecyclingRequest, error)
	DeleteMatching(ctx context.Context, filter RequestFilter) (int64, error)
}

// RecipientKey addresses one notification log: exactly one of the two IDs
// is set.
type RecipientKey struct {
	UserID     *primitive.ObjectID
	ReceiverID *primitive.ObjectID
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	// ListForRecipient returns the recipient's log newest first.
	ListForRecipient(ctx context.Context, key RecipientKey) ([]models.Notification, error)
	// TrimRecipient deletes all but the newest keep entries for a recipient
	// and returns the number of evicted documents.
	TrimRecipient(ctx context.Context, key RecipientKey, keep int) (int64, error)
	// MarkRead flips the read flag, scoped to the recipient so a caller
	// cannot touch someone else's entry.
	MarkRead(ctx context.Context, id primitive.ObjectID, key RecipientKey) (*models.Notification, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EnsureIndexes creates the unique email indexes on both account
// collections. Emails are stored lowercased, so a plain unique index gives
// case-insensitive uniqueness.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, coll := range []string{"users", "receivers"} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, emailIndex); err != nil {
			return err
		}
	}

	requestIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_receiver.id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection("recycling_requests").Indexes().CreateMany(ctx, requestIndexes); err != nil {
		return err
	}

	notificationIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, notificationIndexes)
	return err
}

func isDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
