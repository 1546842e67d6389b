package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manganest/database"
	"manganest/internal/cache"
	"manganest/internal/config"
	"manganest/internal/microservices/http-api/handler"
	"manganest/internal/microservices/http-api/middleware"
	"manganest/internal/microservices/http-api/repository"
	"manganest/internal/microservices/http-api/service"
	"manganest/internal/moderation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatalf("could not connect to database: %v", err)
	}

	pageCache, err := cache.NewCommentCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		// The API works without the cache; every read just hits postgres.
		logger.WithError(err).Warn("redis unavailable, comment page cache disabled")
	} else {
		defer pageCache.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	mangaRepo := repository.NewMangaRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	banRepo := repository.NewBanRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Services
	history := moderation.NewHistory()
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	commentService := service.NewCommentService(commentRepo, chapterRepo, banRepo, reactionRepo, notificationRepo, history, pageCache, logger)
	reactionService := service.NewReactionService(reactionRepo, commentRepo, pageCache, logger)
	reportService := service.NewReportService(reportRepo, commentRepo, notificationRepo, pageCache, logger)
	banService := service.NewBanService(banRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, mangaRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	commentHandler := handler.NewCommentHandler(commentService, cfg.CommentPageSize, cfg.ReplyPageSize)
	reactionHandler := handler.NewReactionHandler(reactionService)
	reportHandler := handler.NewReportHandler(reportService, cfg.CommentPageSize)
	banHandler := handler.NewBanHandler(banService, cfg.CommentPageSize)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(requestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	submitLimit := middleware.NewSubmissionLimiter(cfg.CommentRateLimit, cfg.CommentRateBurst).Middleware()

	api := r.Group("/api")
	authHandler.RegisterRoutes(api)
	commentHandler.RegisterRoutes(api, requireAuth, optionalAuth, submitLimit)
	reactionHandler.RegisterRoutes(api, requireAuth, optionalAuth)
	reportHandler.RegisterRoutes(api, requireAuth)
	banHandler.RegisterRoutes(api, requireAuth)
	notificationHandler.RegisterRoutes(api, requireAuth)
	favoriteHandler.RegisterRoutes(api, requireAuth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
		}
		logger.Info("server stopped")
	case err := <-errChan:
		logger.WithError(err).Fatal("server error")
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// requestLogger logs one line per request with method, path, status and
// latency.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}
