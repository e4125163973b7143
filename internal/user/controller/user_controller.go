package controller

import (
	"capsight_backend/domain"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"capsight_backend/internal/service/validation"
	"capsight_backend/internal/user/usecase"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type UserHandler struct {
	usecase usecase.UserUsecase
}

func NewUserHandler(usecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		usecase: usecase,
	}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received CreateUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	var req domain.CreateUserRequest
	if err := validation.DecodeStrict(r.Body, &req); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	user, err := h.usecase.CreateUser(ctx, req)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusCreated, user, requestID)

	logger.AccessLogger.Info("Completed CreateUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := validation.ParseID("user_id", mux.Vars(r)["user_id"])
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	user, err := h.usecase.GetUser(ctx, userID)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	if user == nil {
		h.handleError(w, fmt.Errorf("User %w", domain.ErrNotFound), requestID)
		return
	}

	h.respond(w, http.StatusOK, user, requestID)

	logger.AccessLogger.Info("Completed GetUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *UserHandler) respond(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *UserHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrValidation):
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
