// cmd/pangramd/main.go
//
// Entry point for the Pangram game server.
// Loads .env, configures logging, builds the dictionary oracle, opens the
// results database, and starts the HTTP server.
//
// Environment:
//   PORT             listen port (default 5180)
//   LOG_LEVEL        zerolog level (default info)
//   DB_PATH          SQLite path (default ./data/pangram.db)
//   DICT_WORDS_FILE  optional word list file (embedded defaults otherwise)
//   DICT_REMOTE      "1" to fall back to the remote dictionary API on misses

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pangramlab/pangram/internal/dict"
	"github.com/pangramlab/pangram/internal/httpserver"
	"github.com/pangramlab/pangram/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	words, err := dict.NewWordList()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	var oracle dict.Oracle = words
	if os.Getenv("DICT_REMOTE") == "1" {
		oracle = &dict.Chain{List: words, Fallback: dict.NewRemote()}
		log.Info().Msg("remote dictionary fallback enabled")
	}

	db, err := httpserver.OpenDB(getEnv("DB_PATH", "./data/pangram.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := httpserver.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	reg := store.NewMemoryRegistry()
	srv := httpserver.New(reg, db, oracle, words)
	port := getEnv("PORT", "5180")
	log.Info().Str("port", port).Int("words", words.Stats()).Msg("starting pangramd")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
