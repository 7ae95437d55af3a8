package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lnbits-apfel/paycode-webhook/models"
	"github.com/lnbits-apfel/paycode-webhook/utils"
)

// busy timeout lets concurrent writers wait on the SQLite file lock instead of failing
const sqliteBusyTimeoutMs = 5000

// InitDB opens the SQLite database and creates the tables if absent.
// A schema error is logged and the handle is still returned so the service keeps running.
func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", cfg.DBPath, sqliteBusyTimeoutMs)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// no idle connections: every operation opens and closes its own connection
	sqlDB.SetMaxIdleConns(0)

	if err := Migrate(db); err != nil {
		utils.LogError("Database initialization failed: %v", err)
		return db, nil
	}
	utils.LogInfo("SQLite tables initialized at %s", cfg.DBPath)
	return db, nil
}

// Migrate creates the webhook and wallet balance tables if they do not exist
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.WebhookRecord{},
		&models.WalletBalance{},
	)
}

// CloseDB releases the database handle
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
