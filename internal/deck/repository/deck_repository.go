package repository

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/database"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deckRepository struct {
	db *gorm.DB
}

func NewDeckRepository(db *gorm.DB) domain.DeckRepository {
	return &deckRepository{
		db: db,
	}
}

func (r *deckRepository) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateDeck called", zap.String("request_id", requestID), zap.Uint("user_id", deck.UserID), zap.String("filename", deck.Filename))

	row, err := domain.NewDeckRow(*deck)
	if err != nil {
		logger.DBLogger.Error("Failed to encode deck", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	err = database.WithUnitOfWork(ctx, r.db, func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&domain.User{}).Where("id = ?", deck.UserID).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.Uint("user_id", deck.UserID))
			return fmt.Errorf("%w: user %d", domain.ErrForeignKey, deck.UserID)
		}
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		err = database.TranslateError(err)
		logger.DBLogger.Error("Error creating deck", zap.String("request_id", requestID), zap.Uint("user_id", deck.UserID), zap.Error(err))
		return err
	}

	deck.ID = row.ID
	logger.DBLogger.Info("Successfully create deck", zap.String("request_id", requestID), zap.Uint("deck_id", deck.ID))
	return nil
}

func (r *deckRepository) GetDeck(ctx context.Context, id uint) (*domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetDeck called", zap.String("request_id", requestID), zap.Uint("deck_id", id))

	var row domain.DeckRow
	err := database.WithUnitOfWork(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Deck not found", zap.String("request_id", requestID), zap.Uint("deck_id", id))
			return nil, nil
		}
		err = database.TranslateError(err)
		logger.DBLogger.Error("Error getting deck", zap.String("request_id", requestID), zap.Uint("deck_id", id), zap.Error(err))
		return nil, err
	}

	deck, err := row.ToDeck()
	if err != nil {
		logger.DBLogger.Error("Failed to decode deck", zap.String("request_id", requestID), zap.Uint("deck_id", id), zap.Error(err))
		return nil, err
	}

	logger.DBLogger.Info("Successfully get deck", zap.String("request_id", requestID), zap.Uint("deck_id", id))
	return &deck, nil
}

func (r *deckRepository) GetDecksByUser(ctx context.Context, userID uint) ([]domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetDecksByUser called", zap.String("request_id", requestID), zap.Uint("user_id", userID))

	var rows []domain.DeckRow
	err := database.WithUnitOfWork(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		err = database.TranslateError(err)
		logger.DBLogger.Error("Failed to get decks", zap.String("request_id", requestID), zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	decks, err := toDecks(rows)
	if err != nil {
		logger.DBLogger.Error("Failed to decode decks", zap.String("request_id", requestID), zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	logger.DBLogger.Info("Successfully get decks", zap.String("request_id", requestID), zap.Uint("user_id", userID), zap.Int("count", len(decks)))
	return decks, nil
}

func (r *deckRepository) ListRecentDecks(ctx context.Context, limit int) ([]domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListRecentDecks called", zap.String("request_id", requestID), zap.Int("limit", limit))

	var rows []domain.DeckRow
	err := database.WithUnitOfWork(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Order("id DESC").Limit(limit).Find(&rows).Error
	})
	if err != nil {
		err = database.TranslateError(err)
		logger.DBLogger.Error("Failed to list decks", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	decks, err := toDecks(rows)
	if err != nil {
		logger.DBLogger.Error("Failed to decode decks", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return decks, nil
}

func toDecks(rows []domain.DeckRow) ([]domain.Deck, error) {
	decks := make([]domain.Deck, 0, len(rows))
	for _, row := range rows {
		deck, err := row.ToDeck()
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}
