package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Receiver is the actor who physically collects approved pickup requests.
// Receivers live in their own collection; their email namespace is
// independent from the users collection.
type Receiver struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Approved     bool               `bson:"approved" json:"approved"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Snapshot returns the embeddable receiver view stored on an approved
// recycling request.
func (r *Receiver) Snapshot() ReceiverSnapshot {
	return ReceiverSnapshot{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

type ReceiverSnapshot struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Phone string             `bson:"phone" json:"phone"`
}
