package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request lifecycle. Transitions only move forward:
// pending -> approved -> collected -> received_by_recycler
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCollected = "collected"
	StatusReceived  = "received_by_recycler"
)

// NormalizeStatus maps the legacy spellings that older clients still send
// onto the canonical set. Unknown values are returned unchanged so the
// caller can reject them.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "received by recycler", "received":
		return StatusReceived
	case "picked_up", "picked up":
		return StatusCollected
	case StatusPending, StatusApproved, StatusCollected, StatusReceived:
		return strings.ToLower(strings.TrimSpace(s))
	}
	return s
}

// NextStatus reports whether moving from "from" to "to" is a legal forward
// step in the lifecycle.
func NextStatus(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved
	case StatusApproved:
		return to == StatusCollected
	case StatusCollected:
		return to == StatusReceived
	}
	return false
}

type RecyclingRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	UserEmail string             `bson:"user_email" json:"userEmail"`

	RecycleItem     string   `bson:"recycle_item" json:"recycleItem"`
	Category        string   `bson:"category,omitempty" json:"category,omitempty"`
	Model           string   `bson:"model,omitempty" json:"model,omitempty"`
	DeviceCondition string   `bson:"device_condition" json:"deviceCondition"`
	Accessories     []string `bson:"accessories,omitempty" json:"accessories,omitempty"`

	PickupDate string `bson:"pickup_date" json:"pickupDate"`
	PickupTime string `bson:"pickup_time" json:"pickupTime"`

	FullName            string `bson:"full_name" json:"fullName"`
	Address             string `bson:"address" json:"address"`
	PreferredContact    string `bson:"preferred_contact,omitempty" json:"preferredContactNumber,omitempty"`
	AlternateContact    string `bson:"alternate_contact,omitempty" json:"alternateContactNumber,omitempty"`
	SpecialInstructions string `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
	DeclarationChecked  bool   `bson:"declaration_checked" json:"declarationChecked"`

	Status           string            `bson:"status" json:"status"`
	AssignedReceiver *ReceiverSnapshot `bson:"assigned_receiver,omitempty" json:"assignedReceiver,omitempty"`

	CollectionNotes string `bson:"collection_notes,omitempty" json:"collectionNotes,omitempty"`
	CollectionProof string `bson:"collection_proof,omitempty" json:"collectionProof,omitempty"`
	ReceivedBy      string `bson:"received_by,omitempty" json:"receivedBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
