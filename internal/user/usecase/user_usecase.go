package usecase

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"capsight_backend/internal/service/validation"
	"context"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

type userUsecase struct {
	userRepository domain.UserRepository
}

func NewUserUsecase(userRepository domain.UserRepository) UserUsecase {
	return &userUsecase{
		userRepository: userRepository,
	}
}

func (uc *userUsecase) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.CompanyName = strings.TrimSpace(req.CompanyName)

	if err := validation.Struct(req); err != nil {
		logger.AccessLogger.Warn("Invalid user payload", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	if err := validation.PlainText("name", req.Name); err != nil {
		logger.AccessLogger.Warn("Invalid user payload", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	if err := validation.PlainText("company_name", req.CompanyName); err != nil {
		logger.AccessLogger.Warn("Invalid user payload", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Name:        req.Name,
		CompanyName: req.CompanyName,
	}
	if err := uc.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUsecase) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		logger.AccessLogger.Warn("user id must be positive", zap.String("request_id", middleware.GetRequestID(ctx)))
		return nil, fmt.Errorf("%w: user_id must be a positive integer", domain.ErrValidation)
	}
	return uc.userRepository.GetUser(ctx, id)
}
