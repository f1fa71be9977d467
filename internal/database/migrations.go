package database

import (
	"log"

	"github.com/codyseavey/shoprank/internal/models"
	"gorm.io/gorm"
)

// RunMigrations runs the custom data migrations after schema changes.
// Each step is safe to run repeatedly.
func RunMigrations(db *gorm.DB) error {
	if err := normalizeMarketPositions(db); err != nil {
		return err
	}
	if err := normalizeCollectionStatuses(db); err != nil {
		return err
	}
	return nil
}

// normalizeMarketPositions rewrites stored market positions onto
// strong/moderate/weak and clears values that match none of them
func normalizeMarketPositions(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.ProductAnalysis{}, "market_position") {
		return nil
	}

	var stored []string
	if err := db.Model(&models.ProductAnalysis{}).
		Distinct("market_position").
		Where("market_position IS NOT NULL").
		Where("market_position NOT IN (?, ?, ?)", models.MarketPositionStrong, models.MarketPositionModerate, models.MarketPositionWeak).
		Pluck("market_position", &stored).Error; err != nil {
		return err
	}

	for _, raw := range stored {
		var value interface{} = gorm.Expr("NULL")
		label := "NULL"
		if mp, ok := models.ParseMarketPosition(raw); ok {
			value = string(mp)
			label = string(mp)
		}
		result := db.Model(&models.ProductAnalysis{}).
			Where("market_position = ?", raw).
			Update("market_position", value)
		if result.Error != nil {
			return result.Error
		}
		log.Printf("Migrated %d product_analysis market positions: %q -> %s", result.RowsAffected, raw, label)
	}
	return nil
}

// normalizeCollectionStatuses maps legacy collection log statuses onto
// success/partial/failed
func normalizeCollectionStatuses(db *gorm.DB) error {
	type statusRow struct {
		Status string
	}

	var rows []statusRow
	if err := db.Model(&models.DataCollectionLog{}).
		Distinct("status").
		Where("status NOT IN (?, ?, ?)", models.CollectionSuccess, models.CollectionPartial, models.CollectionFailed).
		Scan(&rows).Error; err != nil {
		return err
	}

	for _, r := range rows {
		normalized := models.NormalizeCollectionStatus(r.Status)
		result := db.Model(&models.DataCollectionLog{}).
			Where("status = ?", r.Status).
			Update("status", normalized)
		if result.Error != nil {
			log.Printf("Warning: failed to normalize collection status %q: %v", r.Status, result.Error)
			continue
		}
		log.Printf("Migrated %d collection logs: %q -> %s", result.RowsAffected, r.Status, normalized)
	}
	return nil
}
