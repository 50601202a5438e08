package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"ecocollect/models"
	"ecocollect/repository"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "Jordan Smith",
		Email:    "Jordan@Example.com",
		Phone:    "+4915512345678",
		Password: "correct horse battery",
	}
}

func TestRegisterUserHashesPassword(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		if u.Role != models.RoleUser || u.Approved {
			return false
		}
		if u.Email != "jordan@example.com" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse battery")) == nil
	})).Return(nil)

	svc := NewUserService(users)
	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	svc := NewUserService(users)
	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterUserValidation(t *testing.T) {
	svc := NewUserService(new(mockUserRepo))

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty name", func(in *RegisterInput) { in.Name = " " }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"bad phone", func(in *RegisterInput) { in.Phone = "abc" }},
		{"empty password", func(in *RegisterInput) { in.Password = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)
			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserUpdateSelfOnly(t *testing.T) {
	selfID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	newName := "Jordan S."

	svc := NewUserService(new(mockUserRepo))

	_, err := svc.Update(context.Background(), Identity{ID: selfID, Role: models.RoleUser}, otherID,
		AccountUpdateInput{Name: &newName})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserUpdateApprovedFlagIsAdminOnly(t *testing.T) {
	selfID := primitive.NewObjectID()
	approved := true

	svc := NewUserService(new(mockUserRepo))

	_, err := svc.Update(context.Background(), Identity{ID: selfID, Role: models.RoleUser}, selfID,
		AccountUpdateInput{Approved: &approved})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserUpdateAdminApproves(t *testing.T) {
	targetID := primitive.NewObjectID()
	approved := true

	users := new(mockUserRepo)
	users.On("Update", mock.Anything, targetID, bson.M{"approved": true}).
		Return(&models.User{ID: targetID, Approved: true}, nil)

	svc := NewUserService(users)
	admin := Identity{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	user, err := svc.Update(context.Background(), admin, targetID, AccountUpdateInput{Approved: &approved})
	require.NoError(t, err)
	assert.True(t, user.Approved)
	users.AssertExpectations(t)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	selfID := primitive.NewObjectID()
	newPassword := "new battery staple"

	users := new(mockUserRepo)
	users.On("Update", mock.Anything, selfID, mock.MatchedBy(func(updates bson.M) bool {
		hash, ok := updates["password_hash"].(string)
		if !ok {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(newPassword)) == nil
	})).Return(&models.User{ID: selfID}, nil)

	svc := NewUserService(users)

	_, err := svc.Update(context.Background(), Identity{ID: selfID, Role: models.RoleUser}, selfID,
		AccountUpdateInput{Password: &newPassword})
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUserUpdateEmptyPayload(t *testing.T) {
	selfID := primitive.NewObjectID()
	svc := NewUserService(new(mockUserRepo))

	_, err := svc.Update(context.Background(), Identity{ID: selfID, Role: models.RoleUser}, selfID, AccountUpdateInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReceiverRegisterDuplicateEmail(t *testing.T) {
	receivers := new(mockReceiverRepo)
	receivers.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	svc := NewReceiverService(receivers)
	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestReceiverDeleteIsAdminOnly(t *testing.T) {
	targetID := primitive.NewObjectID()

	receivers := new(mockReceiverRepo)
	receivers.On("Delete", mock.Anything, targetID).Return(nil)

	svc := NewReceiverService(receivers)

	err := svc.Delete(context.Background(), Identity{ID: targetID, Role: models.RoleReceiver}, targetID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), Identity{ID: primitive.NewObjectID(), Role: models.RoleAdmin}, targetID)
	require.NoError(t, err)
	receivers.AssertExpectations(t)
}

func TestReceiverUpdateForeignAccountForbidden(t *testing.T) {
	newName := "Depot Two"
	svc := NewReceiverService(new(mockReceiverRepo))

	_, err := svc.Update(context.Background(),
		Identity{ID: primitive.NewObjectID(), Role: models.RoleReceiver},
		primitive.NewObjectID(),
		AccountUpdateInput{Name: &newName})
	assert.ErrorIs(t, err, ErrForbidden)
}
