package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"idscan/internal/cache"
	"idscan/internal/config"
	"idscan/internal/db"
	"idscan/internal/handlers"
	"idscan/internal/logger"
	"idscan/internal/middleware"
	"idscan/internal/ocr"
	"idscan/internal/parser"
	"idscan/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	middleware.Secret = []byte(cfg.JWTSecret)

	db.Init(cfg.DatabaseURL)
	cache.Init(cfg.RedisURL)

	ctx := context.Background()
	vision, err := ocr.NewVisionService(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init Vision OCR service")
	}
	defer vision.Close()

	cardParser := parser.New(cfg.Institution, cfg.Faculty, logger.WithComponent("parser"))
	handlers.Init(cfg, cardParser, vision)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("starting idscan server")
	if err := http.ListenAndServe(addr, router.RegisterRouter()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
