package main

import (
	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/api"
	"github.com/runquest/runquest-backend/internal/config"
	"github.com/runquest/runquest-backend/internal/database"
	"github.com/runquest/runquest-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	router := api.SetupRouter(cfg, database.GetDB())

	logging.Info().Str("addr", cfg.Port).Str("timezone", cfg.Timezone).Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}
