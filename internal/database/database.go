package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/codyseavey/shoprank/internal/config"
	"github.com/codyseavey/shoprank/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the schema
func Open(cfg config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite && isMemoryDSN(cfg.DSN) {
		// every new connection to :memory: is a fresh empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Database connected successfully (%s)", cfg.Driver)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema and the data fixups that follow it
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Platform{},
		&models.Category{},
		&models.Product{},
		&models.Ranking{},
		&models.PriceHistory{},
		&models.ProductAnalysis{},
		&models.WatchlistEntry{},
		&models.DataCollectionLog{},
		&models.DashboardSnapshot{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("data migrations failed: %w", err)
	}

	log.Println("Database migration completed")
	return nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:")
}
