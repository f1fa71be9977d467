package services

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/models"
)

// RawFilter holds the optional query string filters exactly as received
type RawFilter struct {
	Platform string
	Category string
	Query    string
	Limit    string
}

// QueryFilter is the normalized form of RawFilter. Zero values mean "no filter".
type QueryFilter struct {
	Platform   string // platforms.name
	CategoryID *uint
	Text       string
	Limit      int
}

// Normalize turns raw query values into a QueryFilter. Sentinel "all" values,
// blanks and unparsable values drop the filter instead of failing. The limit
// falls back to defaultLimit when missing or non-positive and is clamped to
// maxLimit.
func (r RawFilter) Normalize(defaultLimit, maxLimit int) QueryFilter {
	f := QueryFilter{
		Text:  strings.TrimSpace(r.Query),
		Limit: defaultLimit,
	}

	if p := strings.TrimSpace(r.Platform); p != "" && p != models.AllPlatforms {
		f.Platform = p
	}

	if c := strings.TrimSpace(r.Category); c != "" && c != models.AllCategories {
		if id, err := strconv.ParseUint(c, 10, 64); err == nil && id > 0 {
			cid := uint(id)
			f.CategoryID = &cid
		}
	}

	if n, err := strconv.Atoi(strings.TrimSpace(r.Limit)); err == nil && n > 0 {
		f.Limit = n
	}
	if maxLimit > 0 && f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}

// Scopes returns the gorm scopes for the filter. The query must already join
// products and platforms.
func (f QueryFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if f.Platform != "" {
		name := f.Platform
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("platforms.name = ?", name)
		})
	}
	if f.CategoryID != nil {
		id := *f.CategoryID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("products.category_id = ?", id)
		})
	}
	if f.Text != "" {
		pattern := "%" + escapeLike(f.Text) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(products.name) LIKE LOWER(?) ESCAPE '!'", pattern)
		})
	}
	return scopes
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike escapes LIKE wildcards using '!' as the escape character
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func activePlatforms(db *gorm.DB) *gorm.DB {
	return db.Where("platforms.is_active = ?", true)
}

func availableProducts(db *gorm.DB) *gorm.DB {
	return db.Where("products.is_available = ?", true)
}
