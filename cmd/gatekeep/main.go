package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/auth"
	"github.com/gatekeep-dev/gatekeep/internal/logger"
	"github.com/gatekeep-dev/gatekeep/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	zl, err := logger.New(os.Getenv("APP_ENV"))

	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	if err := auth.InitJWTSecret(); err != nil {
		zl.Fatal("JWT secret missing", zap.Error(err))
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		zl.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		zl.Fatal("Failed to migrate database", zap.Error(err))
	}

	r := router.NewRouter(zl)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		zl.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		zl.Fatal("Failed to start server", zap.Error(err))
	}
}
