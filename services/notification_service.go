package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecocollect/models"
	"ecocollect/realtime"
	"ecocollect/repository"
	"ecocollect/utils"
)

// NotificationSender is what the request workflow needs from the
// notification side-channel.
type NotificationSender interface {
	NotifyUser(ctx context.Context, userID primitive.ObjectID, message string) error
	NotifyReceiver(ctx context.Context, receiverID primitive.ObjectID, message string) error
}

type NotificationService struct {
	notifications repository.NotificationRepository
	hub           *realtime.Hub
}

func NewNotificationService(notifications repository.NotificationRepository, hub *realtime.Hub) *NotificationService {
	return &NotificationService{notifications: notifications, hub: hub}
}

func (s *NotificationService) NotifyUser(ctx context.Context, userID primitive.ObjectID, message string) error {
	return s.enqueue(ctx, repository.RecipientKey{UserID: &userID}, message)
}

func (s *NotificationService) NotifyReceiver(ctx context.Context, receiverID primitive.ObjectID, message string) error {
	return s.enqueue(ctx, repository.RecipientKey{ReceiverID: &receiverID}, message)
}

// SendInput is the manual-send payload (a user messaging a receiver, a
// receiver messaging a user, or an admin messaging either).
type SendInput struct {
	UserID     string `json:"userId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	Message    string `json:"message"`
}

func (s *NotificationService) Send(ctx context.Context, actor Identity, input SendInput) (*models.Notification, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	key, err := parseRecipient(input)
	if err != nil {
		return nil, err
	}

	// Users write to receivers, receivers write to users; admins to either.
	switch actor.Role {
	case models.RoleUser:
		if key.ReceiverID == nil {
			return nil, ErrForbidden
		}
	case models.RoleReceiver:
		if key.UserID == nil {
			return nil, ErrForbidden
		}
	}

	n := &models.Notification{
		UserID:     key.UserID,
		ReceiverID: key.ReceiverID,
		Message:    strings.TrimSpace(input.Message),
	}
	if err := s.insertAndTrim(ctx, n, key); err != nil {
		return nil, err
	}
	return n, nil
}

// ListFor returns the caller's own log, newest first.
func (s *NotificationService) ListFor(ctx context.Context, actor Identity) ([]models.Notification, error) {
	return s.notifications.ListForRecipient(ctx, recipientKeyFor(actor))
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Identity, id primitive.ObjectID) (*models.Notification, error) {
	n, err := s.notifications.MarkRead(ctx, id, recipientKeyFor(actor))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return n, err
}

func (s *NotificationService) enqueue(ctx context.Context, key repository.RecipientKey, message string) error {
	n := &models.Notification{
		UserID:     key.UserID,
		ReceiverID: key.ReceiverID,
		Message:    message,
	}
	return s.insertAndTrim(ctx, n, key)
}

// insertAndTrim appends the new entry, then evicts everything past the
// newest MaxNotificationsPerRecipient for that recipient. Post-operation
// the log never holds more than the cap.
func (s *NotificationService) insertAndTrim(ctx context.Context, n *models.Notification, key repository.RecipientKey) error {
	if err := s.notifications.Insert(ctx, n); err != nil {
		return err
	}

	evicted, err := s.notifications.TrimRecipient(ctx, key, models.MaxNotificationsPerRecipient)
	if err != nil {
		// The entry is stored; a failed trim only leaves extra history.
		utils.LogError("Failed to trim notification log", err)
	} else if evicted > 0 {
		utils.LogInfof("Evicted %d stale notifications for recipient", evicted)
	}

	if s.hub != nil {
		s.hub.PushNotification(n)
	}
	return nil
}

func parseRecipient(input SendInput) (repository.RecipientKey, error) {
	if (input.UserID == "") == (input.ReceiverID == "") {
		return repository.RecipientKey{}, fmt.Errorf("%w: exactly one of userId or receiverId must be set", ErrValidation)
	}

	if input.UserID != "" {
		id, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			return repository.RecipientKey{}, fmt.Errorf("%w: invalid userId", ErrValidation)
		}
		return repository.RecipientKey{UserID: &id}, nil
	}

	id, err := primitive.ObjectIDFromHex(input.ReceiverID)
	if err != nil {
		return repository.RecipientKey{}, fmt.Errorf("%w: invalid receiverId", ErrValidation)
	}
	return repository.RecipientKey{ReceiverID: &id}, nil
}

func recipientKeyFor(actor Identity) repository.RecipientKey {
	id := actor.ID
	if actor.Role == models.RoleReceiver {
		return repository.RecipientKey{ReceiverID: &id}
	}
	return repository.RecipientKey{UserID: &id}
}
