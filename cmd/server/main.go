package main

import (
	"log"

	"github.com/famquest/famquest-backend/internal/bootstrap"
	"github.com/famquest/famquest-backend/internal/config"
	"github.com/famquest/famquest-backend/internal/server"
	"github.com/famquest/famquest-backend/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoFamily(db); err != nil {
			log.Fatalf("failed to seed demo family: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, running without cache and feed pub/sub")
	}

	srv := server.NewServer(cfg, db, redisClient)

	if err := srv.StartScheduler(cfg.ChampionCron); err != nil {
		log.Fatalf("failed to start weekly scheduler: %v", err)
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
