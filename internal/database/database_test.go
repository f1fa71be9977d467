package database

import (
	"database/sql"
	"testing"

	"github.com/codyseavey/shoprank/internal/config"
	"github.com/codyseavey/shoprank/internal/models"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, "silent")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	for _, table := range []string{"platforms", "categories", "products", "rankings", "price_history", "product_analysis", "watchlist", "data_collection_logs", "dashboard_snapshots"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"}, "info"); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":  logger.Info,
		"info":   logger.Warn,
		"ERROR":  logger.Error,
		"silent": logger.Silent,
		"":       logger.Warn,
	}
	for in, want := range tests {
		if got := gormLogLevel(in); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRunMigrationsNormalizesLegacyValues(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, "silent")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	db.Exec(`INSERT INTO product_analysis (product_id, market_position, last_analyzed) VALUES (1, ' Strong ', CURRENT_TIMESTAMP)`)
	db.Exec(`INSERT INTO product_analysis (product_id, market_position, last_analyzed) VALUES (2, 'dominant', CURRENT_TIMESTAMP)`)
	db.Exec(`INSERT INTO product_analysis (product_id, market_position, last_analyzed) VALUES (3, 'WEAK', CURRENT_TIMESTAMP)`)
	db.Exec(`INSERT INTO data_collection_logs (platform_id, status, started_at) VALUES (1, 'OK', CURRENT_TIMESTAMP)`)
	db.Exec(`INSERT INTO data_collection_logs (platform_id, status, started_at) VALUES (1, 'timeout', CURRENT_TIMESTAMP)`)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	var positions []sql.NullString
	db.Model(&models.ProductAnalysis{}).Order("product_id").Pluck("market_position", &positions)
	if len(positions) != 3 {
		t.Fatalf("Expected 3 analyses, got %d", len(positions))
	}
	if !positions[0].Valid || positions[0].String != "strong" {
		t.Errorf("Expected ' Strong ' to become strong, got %+v", positions[0])
	}
	if positions[1].Valid {
		t.Errorf("Expected unknown position to be cleared to NULL, got %q", positions[1].String)
	}
	if !positions[2].Valid || positions[2].String != "weak" {
		t.Errorf("Expected WEAK to become weak, got %+v", positions[2])
	}

	var statuses []string
	db.Model(&models.DataCollectionLog{}).Order("id").Pluck("status", &statuses)
	if len(statuses) != 2 || statuses[0] != "success" || statuses[1] != "failed" {
		t.Errorf("Unexpected statuses after migration: %v", statuses)
	}

	// second run is a no-op
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}
}
