// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the reference
// entities advertisements point at: City, Category, and Tag.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateCity inserts a new City with the given name and pre-derived slug.
func CreateCity(ctx context.Context, db *gorm.DB, name, slug string) (*domain.City, error) {
	c := &domain.City{Name: name, Slug: slug, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetCityByName fetches a city by its exact display name, or ErrNotFound.
func GetCityByName(ctx context.Context, db *gorm.DB, name string) (*domain.City, error) {
	var c domain.City
	if err := db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCityBySlug fetches a city by slug, or ErrNotFound.
func GetCityBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.City, error) {
	var c domain.City
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCity fetches a city by ID, or ErrNotFound.
func GetCity(ctx context.Context, db *gorm.DB, id uint) (*domain.City, error) {
	var c domain.City
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCities returns all cities ordered by name.
func ListCities(ctx context.Context, db *gorm.DB) ([]domain.City, error) {
	var out []domain.City
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// DeleteCity removes a city by ID. Callers must enforce the no-dependents
// rule first (see CountAdsByCity); the FK constraint is the backstop.
func DeleteCity(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.City{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAdsByCity returns the number of advertisements referencing the city.
func CountAdsByCity(ctx context.Context, db *gorm.DB, cityID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Advertisement{}).Where("city_id = ?", cityID).Count(&n).Error
	return n, err
}

// CreateCategory inserts a new Category.
func CreateCategory(ctx context.Context, db *gorm.DB, name, slug, description string) (*domain.Category, error) {
	c := &domain.Category{Name: name, Slug: slug, Description: description, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryBySlug fetches a category by slug, or ErrNotFound.
func GetCategoryBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCategory fetches a category by ID, or ErrNotFound.
func GetCategory(ctx context.Context, db *gorm.DB, id uint) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns all categories ordered by name.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// DeleteCategory removes a category by ID. Callers must enforce the
// no-dependents rule first (see CountAdsByCategory).
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAdsByCategory returns the number of advertisements in the category.
func CountAdsByCategory(ctx context.Context, db *gorm.DB, categoryID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Advertisement{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

// CreateTag inserts a new Tag with a pre-derived slug and hex color.
func CreateTag(ctx context.Context, db *gorm.DB, name, slug, color string) (*domain.Tag, error) {
	t := &domain.Tag{Name: name, Slug: slug, Color: color, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagBySlug fetches a tag by slug, or ErrNotFound.
func GetTagBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Tag, error) {
	var t domain.Tag
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTagByName fetches a tag by its exact display name, or ErrNotFound.
func GetTagByName(ctx context.Context, db *gorm.DB, name string) (*domain.Tag, error) {
	var t domain.Tag
	if err := db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTags returns all tags ordered by name.
func ListTags(ctx context.Context, db *gorm.DB) ([]domain.Tag, error) {
	var out []domain.Tag
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// GetTagsByIDs loads the tags for the given IDs in one query.
func GetTagsByIDs(ctx context.Context, db *gorm.DB, ids []uint) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	var out []domain.Tag
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}
