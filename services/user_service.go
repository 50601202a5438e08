package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"ecocollect/models"
	"ecocollect/repository"
	"ecocollect/utils"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type AccountUpdateInput struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Approved *bool   `json:"approved,omitempty"`
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        utils.NormalizeEmail(input.Email),
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Approved:     false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// Update applies a partial account update. Only an admin may flip the
// approved flag; users may update their own name, phone and password.
func (s *UserService) Update(ctx context.Context, actor Identity, id primitive.ObjectID, input AccountUpdateInput) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrForbidden
	}

	updates, err := buildAccountUpdates(actor, input)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, id, updates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func validateRegistration(input RegisterInput) error {
	for field, value := range map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"phone":    input.Phone,
		"password": input.Password,
	} {
		if err := utils.ValidateRequiredString(field, value); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if err := utils.ValidateEmail(utils.NormalizeEmail(input.Email)); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := utils.ValidatePhone(input.Phone); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func buildAccountUpdates(actor Identity, input AccountUpdateInput) (bson.M, error) {
	updates := bson.M{}

	if input.Name != nil {
		if err := utils.ValidateRequiredString("name", *input.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		if err := utils.ValidatePhone(*input.Phone); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updates["phone"] = *input.Phone
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if input.Approved != nil {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		updates["approved"] = *input.Approved
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}
	return updates, nil
}
