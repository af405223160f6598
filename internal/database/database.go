package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/clientdesk/crm-backend/internal/config"
	"github.com/clientdesk/crm-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models. Cascading deletes on client
// removal are also enforced at the application layer, so the schema-level
// constraints are a backstop, not the mechanism.
func Migrate() error {
	return DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.UserProfile{},
		&models.RefreshToken{},
		&models.Client{},
		&models.Task{},
		&models.TaskComment{},
		&models.Document{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
