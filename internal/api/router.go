package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runquest/runquest-backend/internal/auth"
	"github.com/runquest/runquest-backend/internal/config"
	"github.com/runquest/runquest-backend/internal/handler"
	"github.com/runquest/runquest-backend/internal/middleware"
	"github.com/runquest/runquest-backend/internal/repository"
	"github.com/runquest/runquest-backend/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine
func SetupRouter(cfg *config.Config, db *sql.DB, opts ...service.RunOption) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "RunQuest API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tokens := auth.NewManager(auth.Config{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})

	userRepo := repository.NewUserRepository(db)
	runRepo := repository.NewRunRepository(db)
	territoryRepo := repository.NewTerritoryRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	runService := service.NewRunService(runRepo, userRepo, cfg.Location(), opts...)
	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, tokenRepo, tokens))
	profileHandler := handler.NewProfileHandler(service.NewUserService(userRepo))
	runHandler := handler.NewRunHandler(runService)
	locationHandler := handler.NewLocationHandler(runService)
	territoryHandler := handler.NewTerritoryHandler(service.NewTerritoryService(territoryRepo))
	statsHandler := handler.NewStatsHandler(service.NewStatsService(statsRepo, cfg.Location()))

	api := r.Group("/api/v1")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/refresh", authHandler.Refresh)

		private := api.Group("", auth.Middleware(tokens))

		private.GET("/profile", profileHandler.GetProfile)
		private.PUT("/profile", profileHandler.UpdateProfile)
		private.PATCH("/profile", profileHandler.UpdateProfile)

		runs := private.Group("/runs")
		{
			runs.GET("", runHandler.ListRuns)
			runs.POST("", runHandler.CreateRun)
			runs.GET("/:id", runHandler.GetRun)
			runs.PUT("/:id", runHandler.UpdateRun)
			runs.PATCH("/:id", runHandler.UpdateRun)
			runs.DELETE("/:id", runHandler.DeleteRun)
			runs.POST("/:id/add_location", runHandler.AddLocation)
			runs.POST("/:id/finish", runHandler.FinishRun)
		}

		locations := private.Group("/locations")
		{
			locations.GET("", locationHandler.ListLocations)
			locations.POST("", locationHandler.CreateLocation)
			locations.GET("/:id", locationHandler.GetLocation)
			locations.PUT("/:id", locationHandler.UpdateLocation)
			locations.PATCH("/:id", locationHandler.UpdateLocation)
			locations.DELETE("/:id", locationHandler.DeleteLocation)
		}

		territories := private.Group("/territories")
		{
			territories.GET("", territoryHandler.ListTerritories)
			territories.GET("/:id", territoryHandler.GetTerritory)
		}

		private.GET("/stats", statsHandler.GetRunStatistics)
	}

	return r
}
