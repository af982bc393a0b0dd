// main.go
//
// hexsettlers server entry point.
// Loads .env and the environment, opens the match database, and serves the
// room API and websocket endpoint.

package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hexsettlers/internal/config"
	"github.com/robalobadob/hexsettlers/internal/history"
	"github.com/robalobadob/hexsettlers/internal/httpserver"
	"github.com/robalobadob/hexsettlers/internal/room"
	"github.com/robalobadob/hexsettlers/internal/session"
	"github.com/robalobadob/hexsettlers/internal/ws"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg)

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	hist := history.NewStore(db)
	rooms := room.NewRegistry(cfg.RoomSeed, hist)
	go rooms.RunJanitor(context.Background(), time.Minute, cfg.RoomIdleTTL)

	srv := httpserver.New(httpserver.Options{
		Rooms:         rooms,
		Hub:           ws.NewHub(),
		Signer:        session.NewSigner(cfg.JWTSecret, cfg.JWTTTL),
		History:       hist,
		ClientOrigin:  cfg.ClientOrigin,
		ActionTimeout: cfg.ActionTimeout,
		SecureCookies: strings.HasPrefix(cfg.ClientOrigin, "https://"),
	})

	log.Info().Str("port", cfg.Port).Msg("starting hexsettlers")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
