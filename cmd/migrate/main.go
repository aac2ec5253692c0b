package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"matcha-journal-backend/internal/config"
	"matcha-journal-backend/internal/infrastructure/database"
	"matcha-journal-backend/pkg/logger"
)

const migrationsDir = "migrations"

// Usage: migrate [up|down|status|version]
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system environment", nil)
	}
	logger.Init(os.Getenv("APP_ENV"))

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		logger.Error("failed to load database config", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", database.NewPostgresDB(dbConfig).DSN())
	if err != nil {
		logger.Error("failed to open database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Error("failed to set goose dialect", err)
		os.Exit(1)
	}

	if err := goose.Run(command, db, migrationsDir); err != nil {
		logger.Error("migration failed", err)
		os.Exit(1)
	}

	logger.Info("migration finished", map[string]interface{}{"command": command})
}
