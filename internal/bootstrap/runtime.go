// Package bootstrap wires up runtime dependencies for commands.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo populates demo data when the database is empty.
	// Only honored in the development environment.
	SeedDemo bool
}

// InitRuntime connects to the database and Redis and optionally seeds
// demo data. The Redis client may be nil when the server is unreachable;
// callers degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo && strings.EqualFold(cfg.Env, "development") {
		if err := seedIfEmpty(db); err != nil {
			return nil, nil, fmt.Errorf("demo seeding failed: %w", err)
		}
	}

	return db, r, nil
}

// seedIfEmpty runs the demo seeder only against an empty user table so
// restarts never duplicate data.
func seedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("empty database, seeding demo data")
	return seed.NewSeeder(db, seed.DefaultOptions).Run()
}
