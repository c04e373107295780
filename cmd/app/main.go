package main

import (
	"github.com/rs/zerolog/log"

	"tripplanner/config"
	"tripplanner/di"
	"tripplanner/shared/logger"
)

// @title Trip Planner API
// @version 1.0
// @description Travel package browsing and booking backed by a key-value store.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
