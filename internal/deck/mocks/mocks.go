package mocks

import (
	"capsight_backend/domain"
	"context"
	"github.com/stretchr/testify/mock"
)

type MockDeckUsecase struct {
	mock.Mock
}

func (m *MockDeckUsecase) CreateDeck(ctx context.Context, req domain.CreateDeckRequest) (*domain.Deck, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckUsecase) GetDeck(ctx context.Context, id uint) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckUsecase) GetDecksByUser(ctx context.Context, userID uint) ([]domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckUsecase) ListRecentDecks(ctx context.Context) ([]domain.DeckSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.DeckSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock для DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) GetDeck(ctx context.Context, id uint) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckRepository) GetDecksByUser(ctx context.Context, userID uint) ([]domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckRepository) ListRecentDecks(ctx context.Context, limit int) ([]domain.Deck, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}
