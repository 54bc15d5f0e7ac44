// Package services – TaxonomyService
//
// This file implements the TaxonomyService, which manages the reference
// entities advertisements point at: cities, categories, and tags. All three
// share the same slug pipeline (transliterate, then suffix until unique);
// cities and categories additionally refuse deletion while advertisements
// still reference them.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
	"github.com/mkarpov/go-ads-backend/internal/slug"
)

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#808080"

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TaxonomyService implements the use-cases around cities, categories, and
// tags. Write operations open their own transaction so the slug collision
// loop and the insert are atomic.
type TaxonomyService struct {
	DB *gorm.DB
}

// makeSlug derives the unique slug for a taxonomy name within tx.
func makeSlug(ctx context.Context, tx *gorm.DB, model any, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", ErrEmptyName
	}
	return repo.UniqueSlug(ctx, tx, model, base, 0)
}

// CreateCity creates a city by name, deriving its slug. Creating a city that
// already exists (same name) returns the existing row rather than an error:
// the city list is a shared vocabulary, not per-user data.
func (s *TaxonomyService) CreateCity(ctx context.Context, name string) (*domain.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var city *domain.City
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if existing, err := repo.GetCityByName(ctx, tx, name); err == nil {
			city = existing
			return nil
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		sl, err := makeSlug(ctx, tx, &domain.City{}, name)
		if err != nil {
			return err
		}
		city, err = repo.CreateCity(ctx, tx, name, sl)
		return err
	})
	if err != nil {
		return nil, err
	}
	return city, nil
}

// ListCities returns all cities ordered by name.
func (s *TaxonomyService) ListCities(ctx context.Context) ([]domain.City, error) {
	return repo.ListCities(ctx, s.DB)
}

// GetCityBySlug fetches one city, or ErrCityNotFound.
func (s *TaxonomyService) GetCityBySlug(ctx context.Context, sl string) (*domain.City, error) {
	city, err := repo.GetCityBySlug(ctx, s.DB, sl)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return city, nil
}

// DeleteCity removes a city that no advertisement references. A referenced
// city yields ErrTaxonomyInUse; deleting it would orphan listings.
func (s *TaxonomyService) DeleteCity(ctx context.Context, sl string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		city, err := repo.GetCityBySlug(ctx, tx, sl)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCityNotFound
			}
			return err
		}
		n, err := repo.CountAdsByCity(ctx, tx, city.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrTaxonomyInUse
		}
		return repo.DeleteCity(ctx, tx, city.ID)
	})
}

// CreateCategory creates a category with a derived unique slug. Categories
// are an administrator concern; the handler layer decides who may call this.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var cat *domain.Category
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := makeSlug(ctx, tx, &domain.Category{}, name)
		if err != nil {
			return err
		}
		cat, err = repo.CreateCategory(ctx, tx, name, sl, strings.TrimSpace(description))
		return err
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// ListCategories returns all categories ordered by name.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return repo.ListCategories(ctx, s.DB)
}

// GetCategoryBySlug fetches one category, or ErrCategoryNotFound.
func (s *TaxonomyService) GetCategoryBySlug(ctx context.Context, sl string) (*domain.Category, error) {
	cat, err := repo.GetCategoryBySlug(ctx, s.DB, sl)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes a category that no advertisement references,
// mirroring DeleteCity.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, sl string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := repo.GetCategoryBySlug(ctx, tx, sl)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		n, err := repo.CountAdsByCategory(ctx, tx, cat.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrTaxonomyInUse
		}
		return repo.DeleteCategory(ctx, tx, cat.ID)
	})
}

// CreateTag creates a tag with a derived unique slug and a validated hex
// color. An empty color falls back to DefaultTagColor. Tag names are unique;
// re-creating one yields ErrDuplicateTag so the caller can surface the
// existing tag instead.
func (s *TaxonomyService) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultTagColor
	}
	if !hexColorRe.MatchString(color) {
		return nil, ErrInvalidColor
	}

	var tag *domain.Tag
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetTagByName(ctx, tx, name); err == nil {
			return ErrDuplicateTag
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		sl, err := makeSlug(ctx, tx, &domain.Tag{}, name)
		if err != nil {
			return err
		}
		tag, err = repo.CreateTag(ctx, tx, name, sl, strings.ToLower(color))
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags returns all tags ordered by name.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return repo.ListTags(ctx, s.DB)
}

// GetTagBySlug fetches one tag, or ErrTagNotFound.
func (s *TaxonomyService) GetTagBySlug(ctx context.Context, sl string) (*domain.Tag, error) {
	tag, err := repo.GetTagBySlug(ctx, s.DB, sl)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
