// Advertisement HTTP handlers.
//
// This file exposes REST endpoints for advertisement resources:
//   - GET    /                              (home feed, searchable/sortable)
//   - GET    /my-ads                        (current user's ads)
//   - GET    /admin-ads                     (ads authored by admin accounts)
//   - GET    /category/{slug}               (ads in a category)
//   - GET    /city/{slug}                   (ads in a city)
//   - GET    /tag/{slug}                    (ads carrying a tag)
//   - POST   /advertisement/new             (create)
//   - GET    /advertisement/{slug}          (detail, counts a view)
//   - GET    /advertisement/{slug}/similar  (related ads)
//   - PUT    /advertisement/{slug}/update   (edit, author only)
//   - DELETE /advertisement/{slug}/delete   (remove, author only)
//   - POST   /advertisement/{slug}/cover    (cover upload, author only)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
	"github.com/mkarpov/go-ads-backend/internal/services"
	"github.com/mkarpov/go-ads-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// AdService defines advertisement lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AdService interface {
	// Create validates the input and persists a new advertisement.
	Create(ctx context.Context, authorID string, in services.AdInput) (*domain.Advertisement, error)
	// Get fetches one advertisement by slug, optionally counting a view.
	Get(ctx context.Context, slug string, countView bool) (*domain.Advertisement, error)
	// List returns one page of advertisements matching the filter plus the total.
	List(ctx context.Context, f repo.AdFilter, page, pageSize int) ([]domain.Advertisement, int64, error)
	// Similar returns the related-ads block for a detail page.
	Similar(ctx context.Context, slug string) ([]domain.Advertisement, error)
	// Update edits an advertisement on behalf of its author.
	Update(ctx context.Context, actorID, slug string, in services.AdInput) (*domain.Advertisement, error)
	// Delete removes an advertisement on behalf of its author.
	Delete(ctx context.Context, actorID, slug string) error
	// SetCover stores an uploaded cover image and returns its path.
	SetCover(ctx context.Context, actorID, slug, filename string, r io.Reader) (string, error)
}

// TaxonomyService defines city/category/tag operations consumed by HTTP
// handlers.
type TaxonomyService interface {
	CreateCity(ctx context.Context, name string) (*domain.City, error)
	ListCities(ctx context.Context) ([]domain.City, error)
	GetCityBySlug(ctx context.Context, slug string) (*domain.City, error)
	DeleteCity(ctx context.Context, slug string) error
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error)
}

// ResponseService defines response workflow operations consumed by HTTP
// handlers.
type ResponseService interface {
	Create(ctx context.Context, senderID, adSlug, text string) (*domain.Response, error)
	Get(ctx context.Context, userID string, id uint) (*domain.Response, error)
	Accept(ctx context.Context, actorID string, id uint) (*domain.Response, error)
	Reject(ctx context.Context, actorID string, id uint) (*domain.Response, error)
	Received(ctx context.Context, userID string) ([]domain.Response, error)
	Sent(ctx context.Context, userID string) ([]domain.Response, error)
	ProfileStats(ctx context.Context, userID string) (repo.ProfileStats, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for advertisements, taxonomy, and responses.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	adSvc   AdService
	taxSvc  TaxonomyService
	respSvc ResponseService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(adSvc AdService, taxSvc TaxonomyService, respSvc ResponseService) *Handlers {
	return &Handlers{adSvc: adSvc, taxSvc: taxSvc, respSvc: respSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to the "X-User-ID" header. An empty
// result means the request is anonymous.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return ""
}

// requireUser returns the authenticated user id, or writes 401 and reports
// false. Mutating endpoints must not run anonymously.
func requireUser(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return "", false
	}
	return uid, true
}

// isAdmin reports whether the identity belongs to the admin account.
// The comparison folds case so "Admin" and "admin" are the same operator.
func isAdmin(uid string) bool {
	return strings.EqualFold(uid, "admin")
}

//
// DTOs
//

// AdRequest is the JSON payload for creating or updating an advertisement.
// Exactly one of city_id and new_city_name must be set.
type AdRequest struct {
	Title       string  `json:"title" binding:"required" example:"Велосипед"`
	Description string  `json:"description" binding:"required" example:"Почти новый, пробег 100 км"`
	Price       float64 `json:"price" example:"5500"`
	CityID      uint    `json:"city_id,omitempty" example:"1"`
	NewCityName string  `json:"new_city_name,omitempty" example:"Калуга"`
	CategoryID  uint    `json:"category_id" binding:"required" example:"3"`
	TagIDs      []uint  `json:"tag_ids,omitempty"`
}

func (r AdRequest) input() services.AdInput {
	return services.AdInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		CityID:      r.CityID,
		NewCityName: r.NewCityName,
		CategoryID:  r.CategoryID,
		TagIDs:      r.TagIDs,
	}
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListAdsResponse wraps a page of advertisements and pagination information.
type ListAdsResponse struct {
	Ads        []domain.Advertisement `json:"ads"`
	Pagination Pagination             `json:"pagination"`
}

// CoverResponse reports the stored path of an uploaded cover image.
type CoverResponse struct {
	CoverPath string `json:"cover_path" example:"0b5a6f3e-0d7e-4a8f-8c0e-3e9a1f2b4c5d.jpg"`
}

//
// Helpers
//

// newPagination derives the metadata block for one result page.
func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// pageParam parses the 1-based "page" query parameter.
func pageParam(c *gin.Context) int {
	page := utils.AtoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	return page
}

// failService translates service-level sentinel errors into the HTTP error
// envelope. Unknown errors become 500s.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAdNotFound),
		errors.Is(err, services.ErrResponseNotFound),
		errors.Is(err, services.ErrCityNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrTagNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyModerated),
		errors.Is(err, services.ErrTaxonomyInUse),
		errors.Is(err, services.ErrDuplicateTag):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrCityChoice),
		errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrEmptyDescription),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrEmptyText),
		errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidColor):
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrNoCover):
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "unexpected error")
	}
}

// listAds runs one listing query and writes the standard page envelope.
func (h *Handlers) listAds(c *gin.Context, f repo.AdFilter, pageSize int) {
	page := pageParam(c)
	ads, total, err := h.adSvc.List(c.Request.Context(), f, page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListAdsResponse{
		Ads:        ads,
		Pagination: newPagination(page, pageSize, total),
	})
}

//
// Handlers
//

// ListAds godoc
// @ID          listAds
// @Summary     Home feed
// @Description Returns a page of advertisements, optionally narrowed by free-text search and reordered by an allow-listed sort key. Unknown sort keys fall back to newest first.
// @Tags        Advertisements
// @Produce     json
//
// @Param       page      query  int     false "1-based page number"          example(1)
// @Param       q         query  string  false "Case-insensitive search term" example(велосипед)
// @Param       category  query  string  false "Category slug filter"         example(furniture)
// @Param       city      query  string  false "City slug filter"             example(moscow)
// @Param       tag       query  string  false "Tag slug filter"              example(torg)
// @Param       sort      query  string  false "Sort key: created_at, -created_at, price, -price, views, -views"
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      / [get]
func (h *Handlers) ListAds(c *gin.Context) {
	h.listAds(c, repo.AdFilter{
		Query:        strings.TrimSpace(c.Query("q")),
		CategorySlug: c.Query("category"),
		CitySlug:     c.Query("city"),
		TagSlug:      c.Query("tag"),
		Sort:         c.Query("sort"),
	}, services.DefaultPageSize)
}

// MyAds godoc
// @ID          listMyAds
// @Summary     Current user's advertisements
// @Tags        Advertisements
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       page       query   int     false "1-based page number"
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /my-ads [get]
func (h *Handlers) MyAds(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	h.listAds(c, repo.AdFilter{AuthorID: uid, Sort: c.Query("sort")}, services.DefaultPageSize)
}

// AdminAds godoc
// @ID          listAdminAds
// @Summary     Advertisements published by the admin account
// @Description Matches the author identity case-insensitively, so listings by "Admin" and "admin" appear together.
// @Tags        Advertisements
// @Produce     json
//
// @Param       page  query  int  false "1-based page number"
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Router      /admin-ads [get]
func (h *Handlers) AdminAds(c *gin.Context) {
	h.listAds(c, repo.AdFilter{AuthorFold: "admin", Sort: c.Query("sort")}, services.DefaultPageSize)
}

// CategoryAds godoc
// @ID          listCategoryAds
// @Summary     Advertisements in a category
// @Tags        Advertisements
// @Produce     json
//
// @Param       slug  path   string  true  "Category slug"  example(furniture)
// @Param       page  query  int     false "1-based page number"
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown category"
// @Router      /category/{slug} [get]
func (h *Handlers) CategoryAds(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.taxSvc.GetCategoryBySlug(c.Request.Context(), slug); err != nil {
		failService(c, err)
		return
	}
	h.listAds(c, repo.AdFilter{CategorySlug: slug, Sort: c.Query("sort")}, services.DefaultPageSize)
}

// CityAds godoc
// @ID          listCityAds
// @Summary     Advertisements in a city
// @Tags        Advertisements
// @Produce     json
//
// @Param       slug  path   string  true  "City slug"  example(moscow)
// @Param       page  query  int     false "1-based page number"
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown city"
// @Router      /city/{slug} [get]
func (h *Handlers) CityAds(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.taxSvc.GetCityBySlug(c.Request.Context(), slug); err != nil {
		failService(c, err)
		return
	}
	h.listAds(c, repo.AdFilter{CitySlug: slug, Sort: c.Query("sort")}, services.CityPageSize)
}

// TagAds godoc
// @ID          listTagAds
// @Summary     Advertisements carrying a tag
// @Tags        Advertisements
// @Produce     json
//
// @Param       slug  path   string  true  "Tag slug"  example(torg)
// @Param       page  query  int     false "1-based page number"
//
// @Success     200  {object}  handlers.ListAdsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown tag"
// @Router      /tag/{slug} [get]
func (h *Handlers) TagAds(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.taxSvc.GetTagBySlug(c.Request.Context(), slug); err != nil {
		failService(c, err)
		return
	}
	h.listAds(c, repo.AdFilter{TagSlug: slug, Sort: c.Query("sort")}, services.TagPageSize)
}

// CreateAd godoc
// @ID          createAd
// @Summary     Publish a new advertisement
// @Description Creates an advertisement for the current user. The URL slug is derived from the title by transliteration and made unique automatically.
// @Tags        Advertisements
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string              true  "User ID"  example(user123)
// @Param       body       body    handlers.AdRequest  true  "Advertisement payload"
//
// @Success     201  {object}  domain.Advertisement
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown city, category, or tag"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /advertisement/new [post]
func (h *Handlers) CreateAd(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req AdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ad, err := h.adSvc.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, ad)
}

// GetAd godoc
// @ID          getAd
// @Summary     Advertisement detail
// @Description Returns one advertisement with its city, category, and tags loaded. Every successful read counts as a view.
// @Tags        Advertisements
// @Produce     json
//
// @Param       slug  path  string  true  "Advertisement slug"  example(velosiped)
//
// @Success     200  {object}  domain.Advertisement
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /advertisement/{slug} [get]
func (h *Handlers) GetAd(c *gin.Context) {
	ad, err := h.adSvc.Get(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ad)
}

// SimilarAds godoc
// @ID          listSimilarAds
// @Summary     Related advertisements
// @Description Returns up to four other advertisements sharing the subject's category or tags, newest first.
// @Tags        Advertisements
// @Produce     json
//
// @Param       slug  path  string  true  "Advertisement slug"  example(velosiped)
//
// @Success     200  {array}   domain.Advertisement
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /advertisement/{slug}/similar [get]
func (h *Handlers) SimilarAds(c *gin.Context) {
	similar, err := h.adSvc.Similar(c.Request.Context(), c.Param("slug"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, similar)
}

// UpdateAd godoc
// @ID          updateAd
// @Summary     Edit an advertisement
// @Description Applies the payload to an existing advertisement. Only the author may edit; the slug never changes.
// @Tags        Advertisements
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string              true  "User ID"  example(user123)
// @Param       slug       path    string              true  "Advertisement slug"
// @Param       body       body    handlers.AdRequest  true  "Advertisement payload"
//
// @Success     200  {object}  domain.Advertisement
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /advertisement/{slug}/update [put]
func (h *Handlers) UpdateAd(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req AdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ad, err := h.adSvc.Update(c.Request.Context(), uid, c.Param("slug"), req.input())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ad)
}

// DeleteAd godoc
// @ID          deleteAd
// @Summary     Remove an advertisement
// @Description Deletes the advertisement, its responses, and its stored cover image. Only the author may delete.
// @Tags        Advertisements
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       slug       path    string  true  "Advertisement slug"
//
// @Success     204  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /advertisement/{slug}/delete [delete]
func (h *Handlers) DeleteAd(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	if err := h.adSvc.Delete(c.Request.Context(), uid, c.Param("slug")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// UploadCover godoc
// @ID          uploadCover
// @Summary     Upload a cover image
// @Description Stores the multipart "cover" file as the advertisement's cover, replacing any previous one. Only the author may upload.
// @Tags        Advertisements
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       X-User-ID  header    string  true  "User ID"  example(user123)
// @Param       slug       path      string  true  "Advertisement slug"
// @Param       cover      formData  file    true  "Cover image"
//
// @Success     200  {object}  handlers.CoverResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing file"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /advertisement/{slug}/cover [post]
func (h *Handlers) UploadCover(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	fh, err := c.FormFile("cover")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "cover file is missing")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "cover file is unreadable")
		return
	}
	defer f.Close()

	path, err := h.adSvc.SetCover(c.Request.Context(), uid, c.Param("slug"), fh.Filename, f)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CoverResponse{CoverPath: path})
}
