package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/config"
	"github.com/vision2030/site-server/internal/database"
	"github.com/vision2030/site-server/internal/handler"
	"github.com/vision2030/site-server/internal/jobs"
	"github.com/vision2030/site-server/internal/middleware"
	"github.com/vision2030/site-server/internal/redis"
	"github.com/vision2030/site-server/internal/repository"
	"github.com/vision2030/site-server/internal/service"
	"github.com/vision2030/site-server/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Local dev convenience; in deployment the environment is already set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	sectionRepo := repository.NewSectionRepository(db.DB)

	sectionsCache := redisClient.SectionsCache(cfg.SectionsCacheTTL())

	authService := service.NewAuthService(userRepo, sessionRepo)
	contentService := service.NewContentService(sectionRepo, sectionsCache)
	profileService := service.NewProfileService(userRepo)

	var store storage.Service
	if cfg.UploadsEnabled() {
		store, err = storage.New(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure storage")
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("uploads enabled")
	} else {
		log.Info().Msg("uploads disabled, no storage configured")
	}

	isProduction := cfg.IsProduction()
	sessionMiddleware := middleware.NewSessionMiddleware(authService)
	loginLimiter := middleware.NewLoginRateLimiter()
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction, cfg.S3PublicBaseURL)

	authHandler := handler.NewAuthHandler(authService, isProduction)
	sectionHandler := handler.NewSectionHandler(contentService, sessionMiddleware.Handler)
	profileHandler := handler.NewProfileHandler(profileService, sessionMiddleware.Handler)
	uploadHandler := handler.NewUploadHandler(store, sessionMiddleware.Handler)
	spaHandler := handler.NewSPAHandler(cfg.StaticDir)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(csrfMiddleware.Handler)

		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Handler)
			r.Post("/login", authHandler.Login)
		})
		r.Delete("/login", authHandler.LogoutCookie)
		r.Post("/logout", authHandler.LegacyLogout)
		r.Get("/auth/me", authHandler.Me)

		r.Mount("/sections", sectionHandler.Routes())
		r.Mount("/profile", profileHandler.Routes())
		r.Mount("/uploads", uploadHandler.Routes())
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(sessionMiddleware.PageGuard)
		r.Handle("/*", spaHandler)
	})

	r.NotFound(spaHandler.ServeHTTP)

	cleanupJob := jobs.NewCleanupJob(sessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
