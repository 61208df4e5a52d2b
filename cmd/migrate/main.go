package main

import (
	"log"

	"career-assistant-be/internal/config"
	"career-assistant-be/internal/model"
	"career-assistant-be/pkg/database"
)

// migrate creates the identity store schema. The API runs without it, but
// returning visitors are then greeted as strangers.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(cfg.Database.Connection, database.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// gen_random_uuid() lives in pgcrypto before Postgres 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: pgcrypto unavailable (%v), relying on built-in gen_random_uuid", err)
	}

	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	log.Println("✅ Migration finished")
}
