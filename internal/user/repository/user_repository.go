package repository

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/database"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"context"
	"errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateUser called", zap.String("request_id", requestID), zap.String("name", user.Name))

	err := database.WithUnitOfWork(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		err = database.TranslateError(err)
		logger.DBLogger.Error("Error creating user", zap.String("request_id", requestID), zap.String("name", user.Name), zap.Error(err))
		return err
	}

	logger.DBLogger.Info("Successfully create user", zap.String("request_id", requestID), zap.Uint("user_id", user.ID))
	return nil
}

func (r *userRepository) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetUser called", zap.String("request_id", requestID), zap.Uint("user_id", id))

	var user domain.User
	err := database.WithUnitOfWork(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.Uint("user_id", id))
			return nil, nil
		}
		err = database.TranslateError(err)
		logger.DBLogger.Error("Error getting user", zap.String("request_id", requestID), zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}

	logger.DBLogger.Info("Successfully get user", zap.String("request_id", requestID), zap.Uint("user_id", id))
	return &user, nil
}
