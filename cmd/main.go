package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"review-app/internal/config"
	"review-app/internal/handler"
	"review-app/internal/repository"
	"review-app/internal/services"
	"review-app/internal/utils"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	utils.InitLogger(cfg.Server.Env, cfg.Server.LogLevel)

	ctx, shutdownManager := utils.NewShutdownManager(context.Background())

	// 2. MongoDB
	mongoClient, err := utils.NewMongoDBConnection(ctx, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	shutdownManager.Register("mongodb", func(ctx context.Context) error {
		return mongoClient.Disconnect(ctx)
	})

	mongoRepo := repository.NewReviewRepository(mongoClient.Database(cfg.MongoDB.DBName), cfg.MongoDB.ReviewsCollection)
	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure review indexes")
	}

	var reviewStore services.ReviewRepository = mongoRepo

	// 3. Redis cache for recent reviews (optional)
	redisClient, err := utils.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		shutdownManager.Register("redis", func(context.Context) error {
			return redisClient.Close()
		})
		reviewStore = repository.NewCachedReviewRepository(mongoRepo, redisClient, cfg.Redis.RecentTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Recent reviews cache enabled")
	}

	// 4. Object storage (optional; uploads answer 500 without it)
	var imageStorage services.ImageStorage
	if cfg.S3.Enabled() {
		s3Storage, err := utils.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 client")
		}
		imageStorage = s3Storage
	} else {
		log.Warn().Msg("S3 credentials are not set, image uploads are disabled")
	}

	// 5. Services and handlers
	reviewService := services.NewReviewService(reviewStore)
	imageService := services.NewImageService(imageStorage, cfg.Upload.MaxBytes)

	handlers := handler.Handlers{
		Reviews: handler.NewReviewHandler(reviewService),
		Media:   handler.NewMediaHandler(imageService, cfg.Upload.MaxBytes),
		Names:   handler.NewNameHandler(utils.GenerateName),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		}),
	}

	// 6. Router
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.RequestLogger(), utils.Recovery(), utils.Metrics())
	router.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))

	handler.RegisterRoutes(router, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	serveFrontend(router, cfg.Server.StaticDir)

	// 7. HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Review service running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	shutdownManager.Register("http", func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	shutdownManager.Wait()
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", utils.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

// serveFrontend mounts the static form when its directory exists.
func serveFrontend(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return
	}

	router.Static("/static", dir)
	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})
	log.Info().Str("dir", dir).Msg("Serving frontend")
}
