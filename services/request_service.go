package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecocollect/models"
	"ecocollect/repository"
	"ecocollect/utils"
)

type RequestService struct {
	requests  repository.RequestRepository
	receivers repository.ReceiverRepository
	notifs    NotificationSender
	proofs    ProofStore
}

func NewRequestService(requests repository.RequestRepository, receivers repository.ReceiverRepository, notifs NotificationSender, proofs ProofStore) *RequestService {
	return &RequestService{
		requests:  requests,
		receivers: receivers,
		notifs:    notifs,
		proofs:    proofs,
	}
}

type CreateRequestInput struct {
	RecycleItem         string   `json:"recycleItem" validate:"required"`
	Category            string   `json:"category"`
	Model               string   `json:"model"`
	DeviceCondition     string   `json:"deviceCondition" validate:"required"`
	Accessories         []string `json:"accessories"`
	PickupDate          string   `json:"pickupDate" validate:"required"`
	PickupTime          string   `json:"pickupTime" validate:"required"`
	FullName            string   `json:"fullName" validate:"required"`
	Address             string   `json:"address" validate:"required"`
	PreferredContact    string   `json:"preferredContactNumber"`
	AlternateContact    string   `json:"alternateContactNumber"`
	SpecialInstructions string   `json:"specialInstructions"`
	DeclarationChecked  bool     `json:"declarationChecked"`
}

// Create stores a new pickup request for the acting user. Status always
// starts at pending regardless of what the client sends.
func (s *RequestService) Create(ctx context.Context, actor Identity, input CreateRequestInput) (*models.RecyclingRequest, error) {
	if actor.Role != models.RoleUser {
		return nil, ErrForbidden
	}
	if err := validateCreateRequest(input); err != nil {
		return nil, err
	}

	req := &models.RecyclingRequest{
		UserID:              actor.ID,
		UserEmail:           utils.NormalizeEmail(actor.Email),
		RecycleItem:         input.RecycleItem,
		Category:            input.Category,
		Model:               input.Model,
		DeviceCondition:     input.DeviceCondition,
		Accessories:         input.Accessories,
		PickupDate:          input.PickupDate,
		PickupTime:          input.PickupTime,
		FullName:            input.FullName,
		Address:             input.Address,
		PreferredContact:    input.PreferredContact,
		AlternateContact:    input.AlternateContact,
		SpecialInstructions: input.SpecialInstructions,
		DeclarationChecked:  input.DeclarationChecked,
		Status:              models.StatusPending,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// visibilityFilter implements the role-based narrowing: users see their own
// requests, receivers see requests assigned to (or received by) them,
// admins see everything.
func visibilityFilter(actor Identity) repository.RequestFilter {
	switch actor.Role {
	case models.RoleUser:
		id := actor.ID
		return repository.RequestFilter{UserID: &id}
	case models.RoleReceiver:
		id := actor.ID
		return repository.RequestFilter{ReceiverID: &id}
	}
	return repository.RequestFilter{}
}

func (s *RequestService) List(ctx context.Context, actor Identity) ([]models.RecyclingRequest, error) {
	return s.requests.List(ctx, visibilityFilter(actor))
}

func (s *RequestService) Get(ctx context.Context, actor Identity, id primitive.ObjectID) (*models.RecyclingRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !canSee(actor, req) {
		return nil, ErrForbidden
	}
	return req, nil
}

func canSee(actor Identity, req *models.RecyclingRequest) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleUser:
		return req.UserID == actor.ID
	case models.RoleReceiver:
		return req.AssignedReceiver != nil && req.AssignedReceiver.ID == actor.ID
	}
	return false
}

// UpdateRequestInput covers the mutable detail fields. Status and lifecycle
// fields move only through the dedicated transition operations.
type UpdateRequestInput struct {
	RecycleItem         *string  `json:"recycleItem,omitempty"`
	Category            *string  `json:"category,omitempty"`
	Model               *string  `json:"model,omitempty"`
	DeviceCondition     *string  `json:"deviceCondition,omitempty"`
	Accessories         []string `json:"accessories,omitempty"`
	PickupDate          *string  `json:"pickupDate,omitempty"`
	PickupTime          *string  `json:"pickupTime,omitempty"`
	FullName            *string  `json:"fullName,omitempty"`
	Address             *string  `json:"address,omitempty"`
	PreferredContact    *string  `json:"preferredContactNumber,omitempty"`
	AlternateContact    *string  `json:"alternateContactNumber,omitempty"`
	SpecialInstructions *string  `json:"specialInstructions,omitempty"`
}

func (s *RequestService) UpdateDetails(ctx context.Context, actor Identity, id primitive.ObjectID, input UpdateRequestInput) (*models.RecyclingRequest, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	updates, err := buildRequestUpdates(input)
	if err != nil {
		return nil, err
	}

	req, err := s.requests.UpdateFields(ctx, id, updates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return req, err
}

// Approve assigns a receiver and moves pending -> approved. Admin only. The
// chosen receiver must exist; picking none at all is a 400-class error.
func (s *RequestService) Approve(ctx context.Context, actor Identity, id primitive.ObjectID, receiverID string) (*models.RecyclingRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(receiverID) == "" {
		return nil, fmt.Errorf("%w: a receiver must be selected for approval", ErrValidation)
	}

	recID, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid receiver id", ErrValidation)
	}

	receiver, err := s.receivers.GetByID(ctx, recID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: receiver does not exist", ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	snapshot := receiver.Snapshot()
	req, err := s.requests.Transition(ctx, id, models.StatusPending, models.StatusApproved, bson.M{
		"assigned_receiver": snapshot,
	})
	if err != nil {
		return nil, mapTransitionError(err)
	}

	if s.notifs != nil {
		msg := "Your request has been approved. Our partner will reach out to you as soon as possible."
		if err := s.notifs.NotifyUser(ctx, req.UserID, msg); err != nil {
			utils.LogError("Failed to notify user about approval", err)
		}
		assignMsg := fmt.Sprintf("You have been assigned a pickup: %s at %s on %s.", req.RecycleItem, req.Address, req.PickupDate)
		if err := s.notifs.NotifyReceiver(ctx, receiver.ID, assignMsg); err != nil {
			utils.LogError("Failed to notify receiver about assignment", err)
		}
	}
	return req, nil
}

type CollectInput struct {
	Notes string `json:"collectionNotes"`
	Proof string `json:"collectionProof"`
}

// Collect records collection proof and moves approved -> collected. Only
// the assigned receiver may do this, and a non-empty proof image is
// mandatory.
func (s *RequestService) Collect(ctx context.Context, actor Identity, id primitive.ObjectID, input CollectInput, maxProofBytes int64) (*models.RecyclingRequest, error) {
	if actor.Role != models.RoleReceiver {
		return nil, ErrForbidden
	}
	if err := utils.ValidateProofImage(input.Proof, maxProofBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	current, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if current.AssignedReceiver == nil || current.AssignedReceiver.ID != actor.ID {
		return nil, ErrForbidden
	}

	proofRef, err := s.proofs.Store(ctx, id.Hex(), input.Proof)
	if err != nil {
		return nil, fmt.Errorf("failed to store collection proof: %w", err)
	}

	req, err := s.requests.Transition(ctx, id, models.StatusApproved, models.StatusCollected, bson.M{
		"collection_notes": input.Notes,
		"collection_proof": proofRef,
	})
	if err != nil {
		return nil, mapTransitionError(err)
	}

	if s.notifs != nil {
		msg := fmt.Sprintf("Your %s has been collected by %s.", req.RecycleItem, actor.Name)
		if err := s.notifs.NotifyUser(ctx, req.UserID, msg); err != nil {
			utils.LogError("Failed to notify user about collection", err)
		}
	}
	return req, nil
}

// Receive marks a collected request as handed over to the recycler. Admin
// only; collected -> received_by_recycler.
func (s *RequestService) Receive(ctx context.Context, actor Identity, id primitive.ObjectID) (*models.RecyclingRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	req, err := s.requests.Transition(ctx, id, models.StatusCollected, models.StatusReceived, bson.M{
		"received_by": "Recycler",
	})
	if err != nil {
		return nil, mapTransitionError(err)
	}

	if s.notifs != nil {
		msg := fmt.Sprintf("Your %s has been received by the recycler. Thank you for recycling responsibly.", req.RecycleItem)
		if err := s.notifs.NotifyUser(ctx, req.UserID, msg); err != nil {
			utils.LogError("Failed to notify user about recycler handover", err)
		}
	}
	return req, nil
}

// DeleteVisible removes every request inside the caller's visibility scope,
// preserving the original bulk-delete contract.
func (s *RequestService) DeleteVisible(ctx context.Context, actor Identity) (int64, error) {
	return s.requests.DeleteMatching(ctx, visibilityFilter(actor))
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrStatusConflict):
		return ErrStatusConflict
	}
	return err
}

func validateCreateRequest(input CreateRequestInput) error {
	for field, value := range map[string]string{
		"recycleItem":     input.RecycleItem,
		"deviceCondition": input.DeviceCondition,
		"fullName":        input.FullName,
		"address":         input.Address,
	} {
		if err := utils.ValidateRequiredString(field, value); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if err := utils.ValidatePickupDate(input.PickupDate); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := utils.ValidatePickupTime(input.PickupTime); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.PreferredContact != "" {
		if err := utils.ValidatePhone(input.PreferredContact); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return nil
}

func buildRequestUpdates(input UpdateRequestInput) (bson.M, error) {
	updates := bson.M{}

	setString := func(key string, value *string) {
		if value != nil {
			updates[key] = *value
		}
	}

	setString("recycle_item", input.RecycleItem)
	setString("category", input.Category)
	setString("model", input.Model)
	setString("device_condition", input.DeviceCondition)
	setString("full_name", input.FullName)
	setString("address", input.Address)
	setString("preferred_contact", input.PreferredContact)
	setString("alternate_contact", input.AlternateContact)
	setString("special_instructions", input.SpecialInstructions)

	if input.Accessories != nil {
		updates["accessories"] = input.Accessories
	}
	if input.PickupDate != nil {
		if err := utils.ValidatePickupDate(*input.PickupDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updates["pickup_date"] = *input.PickupDate
	}
	if input.PickupTime != nil {
		if err := utils.ValidatePickupTime(*input.PickupTime); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updates["pickup_time"] = *input.PickupTime
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}
	return updates, nil
}
