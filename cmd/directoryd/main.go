package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/erpdash/user-directory/internal/api"
	"github.com/erpdash/user-directory/internal/core/ports"
	"github.com/erpdash/user-directory/internal/core/service"
	"github.com/erpdash/user-directory/internal/infrastructure/config"
	"github.com/erpdash/user-directory/internal/infrastructure/db/memory"
	"github.com/erpdash/user-directory/internal/infrastructure/db/mongo"
	"github.com/erpdash/user-directory/internal/infrastructure/db/redis"
	"github.com/erpdash/user-directory/internal/infrastructure/queue"
	"github.com/erpdash/user-directory/pkg/logger"
)

func main() {
	// A missing .env file is fine: fall through to the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "user-directory",
		Pretty:  cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		users     ports.UserRepository
		sessions  ports.SessionStore
		auditRepo ports.AuditRepository
		mongoDB   *mongodriver.Database
		redisCli  *goredis.Client
	)

	switch cfg.Store {
	case "memory":
		memUsers := memory.NewUserRepository()
		if err := memory.Seed(ctx, memUsers); err != nil {
			log.Fatal().Err(err).Msg("failed to seed memory store")
		}
		users = memUsers
		sessions = memory.NewSessionStore()
		auditRepo = memory.NewAuditRepository()
		log.Info().Msg("using in-memory store with demo accounts")

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		mongoDB = db

		userRepo := mongo.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create indexes")
		}
		users = userRepo
		auditRepo = mongo.NewAuditRepository(db)

		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()
		redisCli = rdb
		sessions = redis.NewSessionStore(rdb)
	}

	recorder := queue.NewRecorder(0, auditRepo, log)
	recorder.Start(ctx)

	authService := service.NewAuthService(users, sessions, cfg.JWTSecret, cfg.SessionTTL, log)
	directoryService := service.NewDirectoryService(users, recorder, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Directory: directoryService,
		Audit:     auditRepo,
		JWTSecret: cfg.JWTSecret,
		Mongo:     mongoDB,
		Redis:     redisCli,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("user directory listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
