package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxNotificationsPerRecipient caps the retained log per recipient. After an
// insert the recipient's log is trimmed down to the newest entries.
const MaxNotificationsPerRecipient = 4

// Notification targets exactly one of UserID or ReceiverID.
type Notification struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	ReceiverID *primitive.ObjectID `bson:"receiver_id,omitempty" json:"receiverId,omitempty"`
	Message    string              `bson:"message" json:"message"`
	Read       bool                `bson:"read" json:"read"`
	CreatedAt  time.Time           `bson:"created_at" json:"createdAt"`
}
