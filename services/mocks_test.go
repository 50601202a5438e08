package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecocollect/models"
	"ecocollect/repository"
)

// Mock repositories implementing the repository interfaces.

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockReceiverRepo struct {
	mock.Mock
}

func (m *mockReceiverRepo) Create(ctx context.Context, r *models.Receiver) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockReceiverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Receiver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receiver), args.Error(1)
}

func (m *mockReceiverRepo) GetByEmail(ctx context.Context, email string) (*models.Receiver, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receiver), args.Error(1)
}

func (m *mockReceiverRepo) List(ctx context.Context) ([]models.Receiver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Receiver), args.Error(1)
}

func (m *mockReceiverRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Receiver, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receiver), args.Error(1)
}

func (m *mockReceiverRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Create(ctx context.Context, r *models.RecyclingRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RecyclingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecyclingRequest), args.Error(1)
}

func (m *mockRequestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]models.RecyclingRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecyclingRequest), args.Error(1)
}

func (m *mockRequestRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.RecyclingRequest, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecyclingRequest), args.Error(1)
}

func (m *mockRequestRepo) Transition(ctx context.Context, id primitive.ObjectID, fromStatus, toStatus string, set bson.M) (*models.RecyclingRequest, error) {
	args := m.Called(ctx, id, fromStatus, toStatus, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecyclingRequest), args.Error(1)
}

func (m *mockRequestRepo) DeleteMatching(ctx context.Context, filter repository.RequestFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) ListForRecipient(ctx context.Context, key repository.RecipientKey) ([]models.Notification, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) TrimRecipient(ctx context.Context, key repository.RecipientKey, keep int) (int64, error) {
	args := m.Called(ctx, key, keep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id primitive.ObjectID, key repository.RecipientKey) (*models.Notification, error) {
	args := m.Called(ctx, id, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotificationSender struct {
	mock.Mock
}

func (m *mockNotificationSender) NotifyUser(ctx context.Context, userID primitive.ObjectID, message string) error {
	args := m.Called(ctx, userID, message)
	return args.Error(0)
}

func (m *mockNotificationSender) NotifyReceiver(ctx context.Context, receiverID primitive.ObjectID, message string) error {
	args := m.Called(ctx, receiverID, message)
	return args.Error(0)
}
