package usecase

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/user/mocks"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"strings"
	"testing"
)

func TestCreateUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		mockRepo.On("CreateUser", ctx, &domain.User{Name: "Ada", CompanyName: "Acme"}).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 1
			}).
			Return(nil)

		user, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: "  Ada ", CompanyName: "Acme"})
		assert.NoError(t, err)
		assert.Equal(t, &domain.User{ID: 1, Name: "Ada", CompanyName: "Acme"}, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing Name", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		user, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: "   ", CompanyName: "Acme"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "name is required")
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Missing Company Name", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		_, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: "Ada"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "company_name is required")
	})

	t.Run("Name Too Long", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		_, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: strings.Repeat("a", 256), CompanyName: "Acme"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "name must be at most 255")
	})

	t.Run("Markup In Company Name", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		_, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: "Ada", CompanyName: "<script>x</script>"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "company_name must not contain markup")
	})

	t.Run("Angle Brackets In Plain Text", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		mockRepo.On("CreateUser", ctx, &domain.User{Name: "Ada\r\nLovelace", CompanyName: "Smith & <Sons>"}).Return(nil)

		user, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: "Ada\r\nLovelace", CompanyName: "Smith & <Sons>"})
		assert.NoError(t, err)
		assert.Equal(t, "Smith & <Sons>", user.CompanyName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Conflict Passes Through", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.Anything).Return(domain.ErrConflict)

		user, err := uc.CreateUser(ctx, domain.CreateUserRequest{Name: "Ada", CompanyName: "Acme"})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, user)
	})
}

func TestGetUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)
		expected := &domain.User{ID: 1, Name: "Ada", CompanyName: "Acme"}

		mockRepo.On("GetUser", ctx, uint(1)).Return(expected, nil)

		user, err := uc.GetUser(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, expected, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Absent", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		mockRepo.On("GetUser", ctx, uint(7)).Return(nil, nil)

		user, err := uc.GetUser(ctx, 7)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Zero ID", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		uc := NewUserUsecase(mockRepo)

		_, err := uc.GetUser(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
		mockRepo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}
