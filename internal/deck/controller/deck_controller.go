package controller

import (
	"capsight_backend/domain"
	"capsight_backend/internal/deck/usecase"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"capsight_backend/internal/service/validation"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type DeckHandler struct {
	usecase usecase.DeckUsecase
}

func NewDeckHandler(usecase usecase.DeckUsecase) *DeckHandler {
	return &DeckHandler{
		usecase: usecase,
	}
}

func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received CreateDeck request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	var req domain.CreateDeckRequest
	if err := validation.DecodeStrict(r.Body, &req); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	deck, err := h.usecase.CreateDeck(ctx, req)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusCreated, deck, requestID)

	logger.AccessLogger.Info("Completed CreateDeck request",
		zap.String("request_id", requestID),
		zap.Uint("deck_id", deck.ID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetDeck request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	deckID, err := validation.ParseID("deck_id", mux.Vars(r)["deck_id"])
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	deck, err := h.usecase.GetDeck(ctx, deckID)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	if deck == nil {
		h.handleError(w, fmt.Errorf("Deck %w", domain.ErrNotFound), requestID)
		return
	}

	h.respond(w, http.StatusOK, deck, requestID)

	logger.AccessLogger.Info("Completed GetDeck request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DeckHandler) GetDecksByUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetDecksByUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := validation.ParseID("user_id", mux.Vars(r)["user_id"])
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	decks, err := h.usecase.GetDecksByUser(ctx, userID)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	if decks == nil {
		decks = []domain.Deck{}
	}

	h.respond(w, http.StatusOK, decks, requestID)

	logger.AccessLogger.Info("Completed GetDecksByUser request",
		zap.String("request_id", requestID),
		zap.Int("count", len(decks)),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DeckHandler) ListRecentDecks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ListRecentDecks request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	summaries, err := h.usecase.ListRecentDecks(ctx)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	if summaries == nil {
		summaries = []domain.DeckSummary{}
	}

	h.respond(w, http.StatusOK, summaries, requestID)

	logger.AccessLogger.Info("Completed ListRecentDecks request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DeckHandler) respond(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *DeckHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrForeignKey):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	default:
		message = http.StatusText(http.StatusInternalServerError)
	}

	h.respond(w, status, map[string]string{"error": message}, requestID)
}
