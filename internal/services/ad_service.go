// Package services – AdService
//
// This file implements the AdService, which governs the advertisement
// lifecycle: creation with slug derivation, reads with view counting, listing
// through the filtered query engine, updates and deletion guarded by
// ownership, cover uploads, and the similar-ads lookup. Service-level errors
// (e.g. ErrAdNotFound, ErrForbidden, ErrCityChoice) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
	"github.com/mkarpov/go-ads-backend/internal/slug"
	"github.com/mkarpov/go-ads-backend/internal/storage"
)

// Page sizes used by the listing endpoints. City pages are wider because a
// city feed is the primary browsing surface; tag pages sit in between.
const (
	DefaultPageSize = 10
	CityPageSize    = 50
	TagPageSize     = 20

	// SimilarLimit caps the similar-ads block on a detail page.
	SimilarLimit = 4
)

// AdService implements the use-cases around advertisements. It validates
// input, resolves taxonomy references, derives slugs, and persists through the
// repo layer. Covers holds the file store for cover images; it may be nil in
// deployments without uploads, in which case cover operations fail with
// ErrNoCover.
type AdService struct {
	DB     *gorm.DB
	Covers storage.CoverStore
}

// AdInput carries the writable advertisement fields. Exactly one of CityID
// and NewCityName must be set: the form either picks an existing city or
// types a new one, never both.
type AdInput struct {
	Title       string
	Description string
	Price       float64
	CityID      uint
	NewCityName string
	CategoryID  uint
	TagIDs      []uint
}

// validate normalizes the input in place and rejects the predictable bad
// shapes before any database work.
func (in *AdInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.NewCityName = strings.TrimSpace(in.NewCityName)

	if in.Title == "" {
		return ErrEmptyTitle
	}
	if in.Description == "" {
		return ErrEmptyDescription
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if (in.CityID == 0) == (in.NewCityName == "") {
		return ErrCityChoice
	}
	return nil
}

// resolveCity returns the city the input refers to, creating it when the
// form typed a new name. Typing the name of an existing city reuses that
// city instead of failing, so two users can both introduce "Калуга".
func resolveCity(ctx context.Context, tx *gorm.DB, in AdInput) (*domain.City, error) {
	if in.CityID != 0 {
		city, err := repo.GetCity(ctx, tx, in.CityID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrCityNotFound
			}
			return nil, err
		}
		return city, nil
	}

	if city, err := repo.GetCityByName(ctx, tx, in.NewCityName); err == nil {
		return city, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	base := slug.Make(in.NewCityName)
	if base == "" {
		return nil, ErrEmptyName
	}
	s, err := repo.UniqueSlug(ctx, tx, &domain.City{}, base, 0)
	if err != nil {
		return nil, err
	}
	return repo.CreateCity(ctx, tx, in.NewCityName, s)
}

// loadTags resolves the requested tag IDs, insisting that every one exists.
func loadTags(ctx context.Context, tx *gorm.DB, ids []uint) ([]domain.Tag, error) {
	tags, err := repo.GetTagsByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

// Create validates the input, resolves the city and category, derives a
// unique slug from the title, and persists the advertisement with its tags.
//
// Semantics and validation:
//   - Title and description must be non-blank; price must be >= 0.
//   - Exactly one of CityID / NewCityName must be set (ErrCityChoice).
//   - A typed city name that matches an existing city reuses it; a genuinely
//     new name creates the city with its own unique slug.
//   - The category must exist (ErrCategoryNotFound); every tag ID must
//     resolve (ErrTagNotFound).
//   - The slug is derived from the title by transliteration and made unique
//     with numeric suffixes. A title with no sluggable characters is rejected
//     with ErrEmptyTitle.
//
// The city resolution, slug derivation, and insert run in one transaction so
// a slug reserved by the collision loop cannot be stolen by a concurrent
// create.
func (s *AdService) Create(ctx context.Context, authorID string, in AdInput) (*domain.Advertisement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	base := slug.Make(in.Title)
	if base == "" {
		return nil, ErrEmptyTitle
	}

	var ad *domain.Advertisement
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		city, err := resolveCity(ctx, tx, in)
		if err != nil {
			return err
		}
		if _, err := repo.GetCategory(ctx, tx, in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		tags, err := loadTags(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}
		unique, err := repo.UniqueSlug(ctx, tx, &domain.Advertisement{}, base, 0)
		if err != nil {
			return err
		}

		ad = &domain.Advertisement{
			Title:       in.Title,
			Slug:        unique,
			Description: in.Description,
			Price:       in.Price,
			CityID:      city.ID,
			CategoryID:  in.CategoryID,
			Tags:        tags,
			AuthorID:    authorID,
		}
		return repo.CreateAd(ctx, tx, ad)
	})
	if err != nil {
		return nil, err
	}
	return repo.GetAdBySlug(ctx, s.DB, ad.Slug)
}

// Get fetches one advertisement by slug with its related entities loaded.
// When countView is true the view counter is bumped first, so the returned
// snapshot already includes the current visit.
func (s *AdService) Get(ctx context.Context, slugStr string, countView bool) (*domain.Advertisement, error) {
	ad, err := repo.GetAdBySlug(ctx, s.DB, slugStr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	if countView {
		if err := repo.IncrementViews(ctx, s.DB, ad.ID); err != nil {
			return nil, err
		}
		ad.Views++
	}
	return ad, nil
}

// List returns one page of advertisements matching the filter plus the total
// match count. page is 1-based; values below 1 are clamped to the first page.
// A page beyond the result set yields an empty slice, not an error.
func (s *AdService) List(ctx context.Context, f repo.AdFilter, page, pageSize int) ([]domain.Advertisement, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := repo.CountAds(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Advertisement{}, 0, nil
	}
	ads, err := repo.ListAds(ctx, s.DB, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// Similar returns up to SimilarLimit other advertisements sharing the given
// ad's category or any of its tags, newest first, never the ad itself.
func (s *AdService) Similar(ctx context.Context, slugStr string) ([]domain.Advertisement, error) {
	ad, err := repo.GetAdBySlug(ctx, s.DB, slugStr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return repo.SimilarAds(ctx, s.DB, ad, SimilarLimit)
}

// Update applies the input to an existing advertisement. Only the author may
// update (ErrForbidden); the slug is never recomputed, so links to the ad
// stay stable across edits.
func (s *AdService) Update(ctx context.Context, actorID, slugStr string, in AdInput) (*domain.Advertisement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ad, err := repo.GetAdBySlug(ctx, tx, slugStr)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAdNotFound
			}
			return err
		}
		if ad.AuthorID != actorID {
			return ErrForbidden
		}

		city, err := resolveCity(ctx, tx, in)
		if err != nil {
			return err
		}
		if _, err := repo.GetCategory(ctx, tx, in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		tags, err := loadTags(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}

		ad.Title = in.Title
		ad.Description = in.Description
		ad.Price = in.Price
		ad.CityID = city.ID
		ad.CategoryID = in.CategoryID
		return repo.UpdateAd(ctx, tx, ad, tags)
	})
	if err != nil {
		return nil, err
	}
	return repo.GetAdBySlug(ctx, s.DB, slugStr)
}

// Delete removes the advertisement, its responses, and its stored cover
// image. Only the author may delete (ErrForbidden). The database rows go
// first; the cover file is removed afterwards and a failure there is
// returned but leaves no dangling rows.
func (s *AdService) Delete(ctx context.Context, actorID, slugStr string) error {
	ad, err := repo.GetAdBySlug(ctx, s.DB, slugStr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAdNotFound
		}
		return err
	}
	if ad.AuthorID != actorID {
		return ErrForbidden
	}
	if err := repo.DeleteAd(ctx, s.DB, ad.ID); err != nil {
		return err
	}
	if ad.CoverPath != "" && s.Covers != nil {
		return s.Covers.Remove(ad.CoverPath)
	}
	return nil
}

// SetCover stores an uploaded cover image for the advertisement and returns
// the stored path. Only the author may upload (ErrForbidden). A previous
// cover, if any, is removed after the new one is in place.
func (s *AdService) SetCover(ctx context.Context, actorID, slugStr, filename string, r io.Reader) (string, error) {
	if s.Covers == nil || r == nil {
		return "", ErrNoCover
	}
	ad, err := repo.GetAdBySlug(ctx, s.DB, slugStr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAdNotFound
		}
		return "", err
	}
	if ad.AuthorID != actorID {
		return "", ErrForbidden
	}

	path, err := s.Covers.Save(filename, r)
	if err != nil {
		return "", err
	}
	if err := repo.UpdateCoverPath(ctx, s.DB, ad.ID, path); err != nil {
		// Keep storage consistent with the row we failed to update.
		_ = s.Covers.Remove(path)
		return "", err
	}
	if ad.CoverPath != "" && ad.CoverPath != path {
		_ = s.Covers.Remove(ad.CoverPath)
	}
	return path, nil
}
