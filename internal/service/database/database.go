package database

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/config"
	"capsight_backend/internal/service/dsn"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxOpenConns    = 100
	maxIdleConns    = 50
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// Connect opens the connection pool and verifies it within cfg.ConnectTimeout.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn.FromConfig(cfg)), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", domain.ErrStoreUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: get sql db: %w", domain.ErrStoreUnavailable, err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ping: %w", domain.ErrStoreUnavailable, err)
	}

	logger.DBLogger.Info("Connected to database", zap.String("host", cfg.Host), zap.String("name", cfg.Name))
	return db, nil
}

// CreateTables makes sure users and decks exist. Safe to call on every start.
func CreateTables(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&domain.User{}, &domain.DeckRow{}); err != nil {
		logger.DBLogger.Error("Failed to create tables", zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrSchema, err)
	}
	logger.DBLogger.Info("Tables are in place")
	return nil
}

// WithUnitOfWork runs fn in a single transaction. The transaction is committed
// when fn succeeds and rolled back on error or panic, so the session always
// goes back to the pool.
func WithUnitOfWork(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	requestID := middleware.GetRequestID(ctx)

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		logger.DBLogger.Error("Failed to start transaction", zap.String("request_id", requestID), zap.Error(tx.Error))
		return fmt.Errorf("%w: begin: %w", domain.ErrStoreUnavailable, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logger.DBLogger.Warn("Failed to rollback transaction", zap.String("request_id", requestID), zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.DBLogger.Error("Failed to commit transaction", zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%w: commit: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// TranslateError maps driver errors onto the domain error set.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", domain.ErrForeignKey, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation:
		return fmt.Errorf("%w: %w", domain.ErrForeignKey, err)
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrForeignKey,
		domain.ErrConflict,
		domain.ErrStoreUnavailable,
		domain.ErrSchema,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
