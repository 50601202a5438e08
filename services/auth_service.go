package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"ecocollect/models"
	"ecocollect/repository"
	"ecocollect/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
	ErrEmailExists        = errors.New("email already exists")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("forbidden")
	ErrStatusConflict     = errors.New("illegal status transition")
)

// Identity is the authenticated caller as extracted from a verified session
// token.
type Identity struct {
	ID    primitive.ObjectID
	Role  string
	Email string
	Name  string
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

type AuthService struct {
	users         repository.UserRepository
	receivers     repository.ReceiverRepository
	jwtSecret     string
	jwtIssuer     string
	jwtExpiration time.Duration
}

func NewAuthService(users repository.UserRepository, receivers repository.ReceiverRepository, jwtSecret, jwtIssuer string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		receivers:     receivers,
		jwtSecret:     jwtSecret,
		jwtIssuer:     jwtIssuer,
		jwtExpiration: jwtExpiration,
	}
}

// SignInResult preserves the shape the frontend consumed from the original
// sign-in endpoint, with a signed token instead of a mock one.
type SignInResult struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Token       string `json:"token"`
	Role        string `json:"role"`
}

// SignIn checks the users collection first, then receivers. Both lookups
// run even on a miss so response timing does not reveal which collection
// held the email.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if user, err := s.users.GetByEmail(ctx, email); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			return s.issueToken(user.ID, user.Email, user.Name, user.Phone, user.Role)
		}
		return nil, ErrInvalidCredentials
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if receiver, err := s.receivers.GetByEmail(ctx, email); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(receiver.PasswordHash), []byte(password)) == nil {
			return s.issueToken(receiver.ID, receiver.Email, receiver.Name, receiver.Phone, models.RoleReceiver)
		}
		return nil, ErrInvalidCredentials
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Burn a comparison against a dummy hash to equalize timing.
	bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4oYdC1vYdqp2hyJ1ZDzVQW9PKHS"), []byte(password))
	return nil, ErrInvalidCredentials
}

func (s *AuthService) issueToken(id primitive.ObjectID, email, name, phone, role string) (*SignInResult, error) {
	token, err := utils.GenerateJWTToken(id, email, name, role, s.jwtSecret, s.jwtIssuer, s.jwtExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &SignInResult{
		ID:          id.Hex(),
		Email:       email,
		FullName:    name,
		PhoneNumber: phone,
		Token:       token,
		Role:        role,
	}, nil
}

// EnsureAdminAccount creates the bootstrap admin from config on startup if
// it does not exist yet. A no-op when the email is unset or already taken.
func (s *AuthService) EnsureAdminAccount(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	email = utils.NormalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Approved:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	utils.LogInfof("Bootstrap admin account created for %s", email)
	return nil
}
