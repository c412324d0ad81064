package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"symptom-predictor/internal/config"
	apihttp "symptom-predictor/internal/http"
	"symptom-predictor/internal/ml"
	"symptom-predictor/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// El modelo se carga una sola vez; reentrenar exige reiniciar el proceso.
	var classifier service.Classifier
	forest, err := ml.Load(cfg.ModelPath)
	if err != nil {
		logger.Warn("model not loaded", zap.String("path", cfg.ModelPath), zap.Error(err))
	} else {
		classifier = forest
		logger.Info("model loaded",
			zap.String("path", cfg.ModelPath),
			zap.Strings("classes", forest.Classes),
			zap.Int("trees", len(forest.Trees)),
		)
	}
	predictionSvc := service.NewPredictionService(classifier)

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	sessionSvc := service.NewSessionService(cfg.SecretKey, sessionTTL)
	if cfg.SecretKey == "default_secret_key" {
		logger.Warn("SECRET_KEY not configured, using insecure default")
	}

	history := service.NewMemoryHistoryStore(sessionTTL)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory history", zap.Error(err))
		} else {
			history = service.NewRedisHistoryStore(redisClient, sessionTTL)
		}
		cancel()
	}

	pageHandler := apihttp.NewPageHandler(logger, predictionSvc, history, sessionSvc)
	apiHandler := apihttp.NewAPIHandler(logger, predictionSvc)
	router := apihttp.NewRouter(logger, cfg.CORSAllowedOrigins, sessionSvc, pageHandler, apiHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.Bool("model_loaded", predictionSvc.ModelLoaded()))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
