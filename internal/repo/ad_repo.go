// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Advertisement:
// CRUD, the listing query engine (filter/search/sort/paginate), the view
// counter, and the similar-ads lookup.
//
// Query engine semantics:
//   - Slug filters are exact matches against the related entity's slug;
//     an empty filter field means "no filter", never "match null".
//   - Free-text search is a case-insensitive substring match against the
//     title OR the description. Matching runs against the persisted fold
//     columns (title_fold, description_fold) because SQLite's LOWER() folds
//     ASCII only and listings are mostly Cyrillic.
//   - The sort key is validated against an explicit allow-list; anything
//     else silently falls back to newest-first. The allow-list is a
//     deliberate defense against arbitrary field injection into ORDER BY.
//   - Pages out of range return an empty slice, not an error.
//   - City, Category, and Tags are eagerly loaded on every returned row.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
)

// sortOrders is the allow-list mapping accepted sort tokens to ORDER BY
// clauses. A leading '-' on the token means descending.
var sortOrders = map[string]string{
	"created_at":  "created_at asc",
	"-created_at": "created_at desc",
	"price":       "price asc",
	"-price":      "price desc",
	"views":       "views asc",
	"-views":      "views desc",
}

// defaultOrder is the fallback for unknown sort tokens: newest first.
const defaultOrder = "created_at desc"

// OrderClause resolves a user-supplied sort token against the allow-list.
func OrderClause(token string) string {
	if clause, ok := sortOrders[token]; ok {
		return clause
	}
	return defaultOrder
}

// AdFilter describes one listing query. Zero-valued fields apply no filter.
type AdFilter struct {
	CategorySlug string // exact category slug
	CitySlug     string // exact city slug
	TagSlug      string // exact tag slug
	Query        string // case-insensitive substring on title OR description
	AuthorID     string // exact author identity
	AuthorFold   string // case-insensitive author identity (admin listing)
	Sort         string // allow-listed sort token; unknown → newest first
}

// adsQuery composes the WHERE clauses shared by ListAds and CountAds.
func adsQuery(ctx context.Context, db *gorm.DB, f AdFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Advertisement{})

	if f.CategorySlug != "" {
		q = q.Where("category_id IN (?)",
			db.Model(&domain.Category{}).Select("id").Where("slug = ?", f.CategorySlug))
	}
	if f.CitySlug != "" {
		q = q.Where("city_id IN (?)",
			db.Model(&domain.City{}).Select("id").Where("slug = ?", f.CitySlug))
	}
	if f.TagSlug != "" {
		q = q.Where("id IN (?)",
			db.Table("advertisement_tags").Select("advertisement_id").Where("tag_id IN (?)",
				db.Model(&domain.Tag{}).Select("id").Where("slug = ?", f.TagSlug)))
	}
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("title_fold LIKE ? OR description_fold LIKE ?", pattern, pattern)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.AuthorFold != "" {
		q = q.Where("LOWER(author_id) = ?", strings.ToLower(f.AuthorFold))
	}
	return q
}

// CountAds returns the total number of advertisements matching the filter.
func CountAds(ctx context.Context, db *gorm.DB, f AdFilter) (int64, error) {
	var total int64
	err := adsQuery(ctx, db, f).Count(&total).Error
	return total, err
}

// ListAds returns one page of advertisements matching the filter, ordered by
// the resolved sort clause, with City, Category, and Tags eagerly loaded.
func ListAds(ctx context.Context, db *gorm.DB, f AdFilter, offset, limit int) ([]domain.Advertisement, error) {
	var out []domain.Advertisement
	err := adsQuery(ctx, db, f).
		Order(OrderClause(f.Sort)).
		Offset(offset).
		Limit(limit).
		Preload("City").
		Preload("Category").
		Preload("Tags").
		Find(&out).Error
	return out, err
}

// CreateAd inserts the advertisement (with its tag associations) and stamps
// CreatedAt/UpdatedAt in UTC.
func CreateAd(ctx context.Context, db *gorm.DB, ad *domain.Advertisement) error {
	now := time.Now().UTC()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	return db.WithContext(ctx).Create(ad).Error
}

// GetAdBySlug fetches an advertisement with its related entities loaded, or
// ErrNotFound.
func GetAdBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Advertisement, error) {
	var ad domain.Advertisement
	err := db.WithContext(ctx).
		Preload("City").
		Preload("Category").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&ad).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// IncrementViews atomically bumps the view counter for the advertisement.
// Concurrent increments are serialized by the single-row update.
func IncrementViews(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).
		Model(&domain.Advertisement{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// UpdateAd persists changes to the mutable columns of an advertisement and
// replaces its tag set. The slug is never touched here: it is derived once at
// creation and immutable afterwards.
func UpdateAd(ctx context.Context, db *gorm.DB, ad *domain.Advertisement, tags []domain.Tag) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Map-based updates skip the BeforeSave hook, so the fold columns are
		// written explicitly here.
		updates := map[string]any{
			"title":            ad.Title,
			"title_fold":       strings.ToLower(ad.Title),
			"description":      ad.Description,
			"description_fold": strings.ToLower(ad.Description),
			"price":            ad.Price,
			"city_id":          ad.CityID,
			"category_id":      ad.CategoryID,
			"updated_at":       time.Now().UTC(),
		}
		if err := tx.Model(&domain.Advertisement{}).Where("id = ?", ad.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(ad).Association("Tags").Replace(tags)
	})
}

// UpdateCoverPath stores the cover image path for the advertisement.
func UpdateCoverPath(ctx context.Context, db *gorm.DB, id uint, path string) error {
	return db.WithContext(ctx).
		Model(&domain.Advertisement{}).
		Where("id = ?", id).
		UpdateColumn("cover_path", path).Error
}

// DeleteAd removes the advertisement together with its responses and tag
// associations in one transaction. Removing the stored cover image is the
// caller's job (the file store is not reachable from this layer).
func DeleteAd(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("advertisement_id = ?", id).Delete(&domain.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Advertisement{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&domain.Advertisement{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SimilarAds returns up to limit other advertisements sharing the given ad's
// category OR any of its tags, newest first. The single query deduplicates by
// construction and never returns the ad itself.
func SimilarAds(ctx context.Context, db *gorm.DB, ad *domain.Advertisement, limit int) ([]domain.Advertisement, error) {
	q := db.WithContext(ctx).Model(&domain.Advertisement{}).Where("id <> ?", ad.ID)

	tagIDs := make([]uint, 0, len(ad.Tags))
	for _, t := range ad.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	if len(tagIDs) > 0 {
		q = q.Where("category_id = ? OR id IN (?)", ad.CategoryID,
			db.Table("advertisement_tags").Select("advertisement_id").Where("tag_id IN ?", tagIDs))
	} else {
		q = q.Where("category_id = ?", ad.CategoryID)
	}

	var out []domain.Advertisement
	err := q.Order("created_at desc").
		Limit(limit).
		Preload("City").
		Preload("Category").
		Preload("Tags").
		Find(&out).Error
	return out, err
}
