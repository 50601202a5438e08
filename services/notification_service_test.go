package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecocollect/models"
	"ecocollect/repository"
)

func TestNotifyUserInsertsThenTrims(t *testing.T) {
	userID := primitive.NewObjectID()

	repo := new(mockNotificationRepo)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID != nil && *n.UserID == userID && n.ReceiverID == nil
	})).Return(nil)
	repo.On("TrimRecipient", mock.Anything, mock.MatchedBy(func(key repository.RecipientKey) bool {
		return key.UserID != nil && *key.UserID == userID
	}), models.MaxNotificationsPerRecipient).Return(int64(1), nil)

	svc := NewNotificationService(repo, nil)
	err := svc.NotifyUser(context.Background(), userID, "Your request has been approved.")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestNotifyKeepsTrimAfterInsertOrder(t *testing.T) {
	receiverID := primitive.NewObjectID()

	repo := new(mockNotificationRepo)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	repo.On("TrimRecipient", mock.Anything, mock.Anything, models.MaxNotificationsPerRecipient).Return(int64(0), nil)

	svc := NewNotificationService(repo, nil)
	require.NoError(t, svc.NotifyReceiver(context.Background(), receiverID, "New pickup assigned."))

	require.Len(t, repo.Calls, 2)
	assert.Equal(t, "Insert", repo.Calls[0].Method)
	assert.Equal(t, "TrimRecipient", repo.Calls[1].Method)
}

func TestSendRequiresMessage(t *testing.T) {
	svc := NewNotificationService(new(mockNotificationRepo), nil)

	_, err := svc.Send(context.Background(), Identity{Role: models.RoleAdmin}, SendInput{
		UserID:  primitive.NewObjectID().Hex(),
		Message: "   ",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendRequiresExactlyOneRecipient(t *testing.T) {
	svc := NewNotificationService(new(mockNotificationRepo), nil)
	admin := Identity{Role: models.RoleAdmin}

	_, err := svc.Send(context.Background(), admin, SendInput{Message: "hello"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Send(context.Background(), admin, SendInput{
		UserID:     primitive.NewObjectID().Hex(),
		ReceiverID: primitive.NewObjectID().Hex(),
		Message:    "hello",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendEnforcesRoleDirection(t *testing.T) {
	svc := NewNotificationService(new(mockNotificationRepo), nil)

	// A user cannot message another user.
	_, err := svc.Send(context.Background(), Identity{ID: primitive.NewObjectID(), Role: models.RoleUser}, SendInput{
		UserID:  primitive.NewObjectID().Hex(),
		Message: "hello",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// A receiver cannot message another receiver.
	_, err = svc.Send(context.Background(), Identity{ID: primitive.NewObjectID(), Role: models.RoleReceiver}, SendInput{
		ReceiverID: primitive.NewObjectID().Hex(),
		Message:    "hello",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSendAdminReachesEitherSide(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input func(id primitive.ObjectID) SendInput
	}{
		{"to user", func(id primitive.ObjectID) SendInput {
			return SendInput{UserID: id.Hex(), Message: "maintenance window"}
		}},
		{"to receiver", func(id primitive.ObjectID) SendInput {
			return SendInput{ReceiverID: id.Hex(), Message: "maintenance window"}
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockNotificationRepo)
			repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
			repo.On("TrimRecipient", mock.Anything, mock.Anything, models.MaxNotificationsPerRecipient).Return(int64(0), nil)

			svc := NewNotificationService(repo, nil)
			n, err := svc.Send(context.Background(), Identity{Role: models.RoleAdmin}, tc.input(primitive.NewObjectID()))
			require.NoError(t, err)
			assert.Equal(t, "maintenance window", n.Message)
			repo.AssertExpectations(t)
		})
	}
}

func TestMarkReadScopedToCaller(t *testing.T) {
	userID := primitive.NewObjectID()
	notifID := primitive.NewObjectID()

	repo := new(mockNotificationRepo)
	repo.On("MarkRead", mock.Anything, notifID, mock.MatchedBy(func(key repository.RecipientKey) bool {
		return key.UserID != nil && *key.UserID == userID
	})).Return(nil, repository.ErrNotFound)

	svc := NewNotificationService(repo, nil)
	_, err := svc.MarkRead(context.Background(), Identity{ID: userID, Role: models.RoleUser}, notifID)
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertExpectations(t)
}

func TestListForUsesRecipientKey(t *testing.T) {
	receiverID := primitive.NewObjectID()

	repo := new(mockNotificationRepo)
	repo.On("ListForRecipient", mock.Anything, mock.MatchedBy(func(key repository.RecipientKey) bool {
		return key.ReceiverID != nil && *key.ReceiverID == receiverID && key.UserID == nil
	})).Return([]models.Notification{}, nil)

	svc := NewNotificationService(repo, nil)
	_, err := svc.ListFor(context.Background(), Identity{ID: receiverID, Role: models.RoleReceiver})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
