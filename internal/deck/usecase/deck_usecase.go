package usecase

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"capsight_backend/internal/service/validation"
	"context"
	"fmt"
	"go.uber.org/zap"
)

const recentDecksLimit = 10

type DeckUsecase interface {
	CreateDeck(ctx context.Context, req domain.CreateDeckRequest) (*domain.Deck, error)
	GetDeck(ctx context.Context, id uint) (*domain.Deck, error)
	GetDecksByUser(ctx context.Context, userID uint) ([]domain.Deck, error)
	ListRecentDecks(ctx context.Context) ([]domain.DeckSummary, error)
}

type deckUsecase struct {
	deckRepository domain.DeckRepository
}

func NewDeckUsecase(deckRepository domain.DeckRepository) DeckUsecase {
	return &deckUsecase{
		deckRepository: deckRepository,
	}
}

func (uc *deckUsecase) CreateDeck(ctx context.Context, req domain.CreateDeckRequest) (*domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)

	if err := validateDeck(req); err != nil {
		logger.AccessLogger.Warn("Invalid deck payload", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	deck := &domain.Deck{
		UserID:     req.UserID,
		Filename:   req.Filename,
		Timestamp:  req.Timestamp,
		Verdict:    req.Verdict,
		Scores:     req.Scores.ToScores(),
		Strengths:  append([]string{}, req.Strengths...),
		Weaknesses: append([]string{}, req.Weaknesses...),
		RedFlags:   append([]string{}, req.RedFlags...),
	}
	if err := uc.deckRepository.CreateDeck(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func validateDeck(req domain.CreateDeckRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	checks := []struct {
		field  string
		values []string
	}{
		{"filename", []string{req.Filename}},
		{"verdict", []string{req.Verdict}},
		{"strengths", req.Strengths},
		{"weaknesses", req.Weaknesses},
		{"red_flags", req.RedFlags},
	}
	for _, c := range checks {
		if err := validation.PlainText(c.field, c.values...); err != nil {
			return err
		}
	}
	return nil
}

func (uc *deckUsecase) GetDeck(ctx context.Context, id uint) (*domain.Deck, error) {
	if id == 0 {
		logger.AccessLogger.Warn("deck id must be positive", zap.String("request_id", middleware.GetRequestID(ctx)))
		return nil, fmt.Errorf("%w: deck_id must be a positive integer", domain.ErrValidation)
	}
	return uc.deckRepository.GetDeck(ctx, id)
}

func (uc *deckUsecase) GetDecksByUser(ctx context.Context, userID uint) ([]domain.Deck, error) {
	if userID == 0 {
		logger.AccessLogger.Warn("user id must be positive", zap.String("request_id", middleware.GetRequestID(ctx)))
		return nil, fmt.Errorf("%w: user_id must be a positive integer", domain.ErrValidation)
	}
	return uc.deckRepository.GetDecksByUser(ctx, userID)
}

// ListRecentDecks returns summaries of the newest decks, newest first.
func (uc *deckUsecase) ListRecentDecks(ctx context.Context) ([]domain.DeckSummary, error) {
	decks, err := uc.deckRepository.ListRecentDecks(ctx, recentDecksLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.DeckSummary, 0, len(decks))
	for _, d := range decks {
		summaries = append(summaries, d.Summary())
	}
	return summaries, nil
}
