package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecohaven_backend/internal/config"
	"ecohaven_backend/internal/database"
	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/router"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", true)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.GinMode != gin.ReleaseMode)
	gin.SetMode(cfg.GinMode)

	if err := utils.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register validators")
	}

	ctx := context.Background()

	// Initialize Database
	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	jwtManager, err := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create JWT manager")
	}

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare upload directory")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.ClientURL
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	// Setup all application routes
	handlers := router.NewHandlers(router.Dependencies{
		DB:           db,
		JWT:          jwtManager,
		Files:        files,
		Mailer:       mailer.New(cfg.SMTP),
		ContactEmail: cfg.ContactEmail,
	})
	router.Setup(engine, handlers, jwtManager)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "mode": cfg.GinMode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}
