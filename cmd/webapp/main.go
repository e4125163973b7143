package main

import (
	deckController "capsight_backend/internal/deck/controller"
	deckRepository "capsight_backend/internal/deck/repository"
	deckUsecase "capsight_backend/internal/deck/usecase"

	"capsight_backend/internal/service/config"
	"capsight_backend/internal/service/database"
	"capsight_backend/internal/service/logger"
	"capsight_backend/internal/service/middleware"
	"capsight_backend/internal/service/router"
	userController "capsight_backend/internal/user/controller"
	userRepository "capsight_backend/internal/user/repository"
	userUsecase "capsight_backend/internal/user/usecase"
	"context"
	"errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLoggers("."); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer func() {
		_ = logger.SyncLoggers()
	}()

	middleware.SetRequestTimeout(cfg.RequestTimeout)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		logger.DBLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.CreateTables(ctx, db); err != nil {
		logger.DBLogger.Fatal("Failed to create tables", zap.Error(err))
	}

	userRepository := userRepository.NewUserRepository(db)
	userUseCase := userUsecase.NewUserUsecase(userRepository)
	userHandler := userController.NewUserHandler(userUseCase)

	deckRepository := deckRepository.NewDeckRepository(db)
	deckUseCase := deckUsecase.NewDeckUsecase(deckRepository)
	deckHandler := deckController.NewDeckHandler(deckUseCase)

	middleware.StartLimiterCleanup(ctx, time.Minute)

	mainRouter := router.SetUpRoutes(userHandler, deckHandler)
	mainRouter.Use(middleware.RequestIDMiddleware)
	mainRouter.Use(middleware.RateLimitMiddleware)
	logRoutes(mainRouter)

	server := &http.Server{
		Addr:              cfg.BackendURL,
		Handler:           middleware.EnableCORS(cfg.FrontendURL)(mainRouter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.AccessLogger.Info("Starting HTTP server", zap.String("address", cfg.BackendURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.AccessLogger.Fatal("Error on starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.AccessLogger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.AccessLogger.Error("Graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func logRoutes(r *mux.Router) {
	_ = r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		logger.AccessLogger.Info("Registered route", zap.String("path", path), zap.Strings("methods", methods))
		return nil
	})
}
