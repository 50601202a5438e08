package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"ecocollect/models"
	"ecocollect/repository"
	"ecocollect/utils"
)

type ReceiverService struct {
	receivers repository.ReceiverRepository
}

func NewReceiverService(receivers repository.ReceiverRepository) *ReceiverService {
	return &ReceiverService{receivers: receivers}
}

func (s *ReceiverService) Register(ctx context.Context, input RegisterInput) (*models.Receiver, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	receiver := &models.Receiver{
		Name:         input.Name,
		Email:        utils.NormalizeEmail(input.Email),
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Approved:     false,
	}

	if err := s.receivers.Create(ctx, receiver); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return receiver, nil
}

func (s *ReceiverService) List(ctx context.Context) ([]models.Receiver, error) {
	return s.receivers.List(ctx)
}

func (s *ReceiverService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Receiver, error) {
	receiver, err := s.receivers.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return receiver, err
}

func (s *ReceiverService) Update(ctx context.Context, actor Identity, id primitive.ObjectID, input AccountUpdateInput) (*models.Receiver, error) {
	if !actor.IsAdmin() && !(actor.Role == models.RoleReceiver && actor.ID == id) {
		return nil, ErrForbidden
	}

	updates, err := buildAccountUpdates(actor, input)
	if err != nil {
		return nil, err
	}

	receiver, err := s.receivers.Update(ctx, id, updates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return receiver, err
}

func (s *ReceiverService) Delete(ctx context.Context, actor Identity, id primitive.ObjectID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	err := s.receivers.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
