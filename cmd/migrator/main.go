package main

import (
	"capsight_backend/internal/service/config"
	"capsight_backend/internal/service/database"
	"capsight_backend/internal/service/logger"
	"context"
	"fmt"
	"log"
)

func migrate() (err error) {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := logger.InitLoggers("."); err != nil {
		return err
	}
	defer func() {
		_ = logger.SyncLoggers()
	}()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := database.CreateTables(context.Background(), db); err != nil {
		return err
	}
	fmt.Println("Database tables created")
	return nil
}

func main() {
	err := migrate()
	if err != nil {
		log.Fatal(err)
	}
}
