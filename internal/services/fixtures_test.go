package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/database/dbtest"
	"github.com/codyseavey/shoprank/internal/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testClock() DayClock {
	return DayClock{Location: time.UTC, Now: func() time.Time { return testNow }}
}

type fixture struct {
	t  *testing.T
	db *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, db: dbtest.New(t)}
}

func (f *fixture) create(v interface{}) {
	f.t.Helper()
	if err := f.db.Create(v).Error; err != nil {
		f.t.Fatalf("create %T: %v", v, err)
	}
}

func (f *fixture) platform(name, displayName string, active bool) models.Platform {
	f.t.Helper()
	p := models.Platform{Name: name, DisplayName: displayName, BaseURL: "https://" + name + ".example", IsActive: active}
	f.create(&p)
	return p
}

func (f *fixture) category(name, displayName string, parent *uint) models.Category {
	f.t.Helper()
	c := models.Category{Name: name, DisplayName: displayName, ParentID: parent, IsActive: true}
	f.create(&c)
	return c
}

func (f *fixture) product(p models.Platform, name, price string, opts ...func(*models.Product)) models.Product {
	f.t.Helper()
	prod := models.Product{
		PlatformID:        p.ID,
		PlatformProductID: p.Name + "-" + name,
		Name:              name,
		Price:             decimal.RequireFromString(price),
		ProductURL:        p.BaseURL + "/p/" + name,
		IsAvailable:       true,
		LastUpdated:       testNow,
	}
	for _, opt := range opts {
		opt(&prod)
	}
	f.create(&prod)
	return prod
}

func (f *fixture) ranking(prod models.Product, rank int, change *int, date time.Time) models.Ranking {
	f.t.Helper()
	r := models.Ranking{
		ProductID:  prod.ID,
		PlatformID: prod.PlatformID,
		CategoryID: prod.CategoryID,
		Rank:       rank,
		RankDate:   date,
		RankChange: change,
	}
	f.create(&r)
	return r
}

func unavailable(p *models.Product) { p.IsAvailable = false }

func inCategory(id uint) func(*models.Product) {
	return func(p *models.Product) { p.CategoryID = &id }
}

func updatedAt(t time.Time) func(*models.Product) {
	return func(p *models.Product) { p.LastUpdated = t }
}

func intPtr(v int) *int { return &v }

// closeDB makes every following query fail
func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()
}
