// Command migrate applies the embedded schema migrations and exits. The
// server does the same at startup; this exists for provisioning a database
// file ahead of a deploy.
package main

import (
	"context"
	"os"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/config"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/repository/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := sqlite.NewDB(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := sqlite.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Str("database", cfg.Database.Path).Msg("Migrations applied")
}
