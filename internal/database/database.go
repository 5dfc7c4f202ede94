package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devansh1234523/whole-sale/internal/config"
	"github.com/devansh1234523/whole-sale/internal/middleware"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/storage"
)

// Connect opens the accounts database selected by cfg.Driver.
func Connect(cfg config.DBConfig, production bool) (*gorm.DB, error) {
	level := logger.Info
	if production {
		level = logger.Warn
	}
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(level)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	log.Printf("✅ Database connection successful (%s)", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the users and snapshots tables.
func Migrate(db *gorm.DB) error {
	log.Println("Running Schema Migrations (Gorm AutoMigrate)...")
	if err := db.AutoMigrate(&models.User{}, &models.Snapshot{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("✅ Schema Migrations completed.")
	return nil
}

// SeedAdmin creates the first admin account when no admin exists yet. With an
// empty password a random one is generated and logged once.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	generated := password == ""
	if generated {
		password = uuid.NewString()
	}

	hash, err := middleware.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{Username: username, Password: hash, Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if generated {
		log.Printf("Created admin %q with generated password %s", username, password)
	} else {
		log.Printf("Created admin %q", username)
	}
	return nil
}

// OpenSnapshotStore returns the snapshot backend selected by cfg.StorageDriver.
// db is only used by the sql driver and may be nil otherwise.
func OpenSnapshotStore(ctx context.Context, cfg config.Config, db *gorm.DB) (storage.SnapshotStore, error) {
	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		files, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return files, nil
	case "sql":
		if db == nil {
			return nil, errors.New("sql storage needs a database connection")
		}
		return storage.NewSQLStore(db), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return storage.NewRedisStore(client), nil
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}
