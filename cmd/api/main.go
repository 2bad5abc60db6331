package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/studioline/studioline-api/internal/config"
	"github.com/studioline/studioline-api/internal/domain/auth"
	"github.com/studioline/studioline-api/internal/domain/booking"
	"github.com/studioline/studioline-api/internal/domain/event"
	"github.com/studioline/studioline-api/internal/domain/location"
	"github.com/studioline/studioline-api/internal/domain/schedule"
	"github.com/studioline/studioline-api/internal/domain/settings"
	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/middleware"
	"github.com/studioline/studioline-api/internal/pkg/database"
	"github.com/studioline/studioline-api/internal/pkg/imaging"
	"github.com/studioline/studioline-api/internal/pkg/jwt"
	"github.com/studioline/studioline-api/internal/pkg/logger"
	pkgresponse "github.com/studioline/studioline-api/internal/pkg/response"
	"github.com/studioline/studioline-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting StudioLine API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	locationRepo := location.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := event.NewHub(redisClient)
	go hub.Run()

	// ---------- Services ----------
	refreshStore := auth.NewRefreshTokenStore(redisClient)
	authService := auth.NewService(userRepo, jwtService, refreshStore, cfg.JWTAccessTTL)
	normalizer := imaging.NewNormalizer(imaging.DefaultConfig())
	bookingService := booking.NewService(bookingRepo, locationRepo, userRepo, store, normalizer, hub)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userRepo)
	locationHandler := location.NewHandler(locationRepo)
	scheduleHandler := schedule.NewHandler(scheduleRepo)
	settingsHandler := settings.NewHandler(settingsRepo)
	bookingHandler := booking.NewHandler(bookingService)
	eventHandler := event.NewHandler(hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(eventHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/users", userHandler.Routes(authMiddleware))
		r.Mount("/locations", locationHandler.Routes(authMiddleware))
		r.Mount("/schedule", scheduleHandler.Routes(authMiddleware))
		r.Mount("/settings", settingsHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3Bucket:    cfg.S3Bucket,
		})
	}
	return storage.NewLocalStorage(cfg.StoragePath, cfg.StorageBaseURL)
}
