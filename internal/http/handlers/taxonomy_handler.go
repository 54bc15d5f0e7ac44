// Taxonomy HTTP handlers: cities, categories, and tags.
//
//   - GET    /cities             (list)
//   - POST   /cities             (create, any authenticated user)
//   - DELETE /cities/{slug}      (admin only, refused while referenced)
//   - GET    /categories         (list)
//   - POST   /categories         (admin only)
//   - DELETE /categories/{slug}  (admin only, refused while referenced)
//   - GET    /tags               (list)
//   - POST   /tag/add            (create, any authenticated user)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// DTOs
//

// CityRequest is the JSON payload for creating a city.
type CityRequest struct {
	Name string `json:"name" binding:"required" example:"Калуга"`
}

// CategoryRequest is the JSON payload for creating a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required" example:"Электроника"`
	Description string `json:"description" example:"Техника, гаджеты, компьютеры"`
}

// TagRequest is the JSON payload for creating a tag. Color is an optional
// #rrggbb value; a neutral gray is used when omitted.
type TagRequest struct {
	Name  string `json:"name" binding:"required" example:"торг"`
	Color string `json:"color,omitempty" example:"#ff8800"`
}

//
// Handlers
//

// ListCities godoc
// @ID          listCities
// @Summary     List cities
// @Tags        Taxonomy
// @Produce     json
// @Success     200  {array}  domain.City
// @Router      /cities [get]
func (h *Handlers) ListCities(c *gin.Context) {
	cities, err := h.taxSvc.ListCities(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cities)
}

// CreateCity godoc
// @ID          createCity
// @Summary     Create a city
// @Description Creates a city by name, deriving its slug. Submitting the name of an existing city returns that city instead of failing.
// @Tags        Taxonomy
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                true  "User ID"  example(user123)
// @Param       body       body    handlers.CityRequest  true  "City payload"
//
// @Success     201  {object}  domain.City
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /cities [post]
func (h *Handlers) CreateCity(c *gin.Context) {
	if _, okUser := requireUser(c); !okUser {
		return
	}
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	city, err := h.taxSvc.CreateCity(c.Request.Context(), req.Name)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, city)
}

// DeleteCity godoc
// @ID          deleteCity
// @Summary     Delete a city (admin)
// @Description Removes a city that no advertisement references. A referenced city yields 409.
// @Tags        Taxonomy
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "Admin user ID"  example(admin)
// @Param       slug       path    string  true  "City slug"
//
// @Success     204  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an administrator"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "City still referenced"
// @Router      /cities/{slug} [delete]
func (h *Handlers) DeleteCity(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	if !isAdmin(uid) {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "administrator access required")
		return
	}
	if err := h.taxSvc.DeleteCity(c.Request.Context(), c.Param("slug")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Tags        Taxonomy
// @Produce     json
// @Success     200  {array}  domain.Category
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.taxSvc.ListCategories(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

// CreateCategory godoc
// @ID          createCategory
// @Summary     Create a category (admin)
// @Tags        Taxonomy
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                    true  "Admin user ID"  example(admin)
// @Param       body       body    handlers.CategoryRequest  true  "Category payload"
//
// @Success     201  {object}  domain.Category
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an administrator"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /categories [post]
func (h *Handlers) CreateCategory(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	if !isAdmin(uid) {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "administrator access required")
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cat, err := h.taxSvc.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, cat)
}

// DeleteCategory godoc
// @ID          deleteCategory
// @Summary     Delete a category (admin)
// @Description Removes a category that no advertisement references. A referenced category yields 409.
// @Tags        Taxonomy
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "Admin user ID"  example(admin)
// @Param       slug       path    string  true  "Category slug"
//
// @Success     204  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an administrator"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Category still referenced"
// @Router      /categories/{slug} [delete]
func (h *Handlers) DeleteCategory(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	if !isAdmin(uid) {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "administrator access required")
		return
	}
	if err := h.taxSvc.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ListTags godoc
// @ID          listTags
// @Summary     List tags
// @Tags        Taxonomy
// @Produce     json
// @Success     200  {array}  domain.Tag
// @Router      /tags [get]
func (h *Handlers) ListTags(c *gin.Context) {
	tags, err := h.taxSvc.ListTags(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, tags)
}

// CreateTag godoc
// @ID          createTag
// @Summary     Create a tag
// @Description Creates a tag with a derived slug and an optional #rrggbb color. Tag names are unique; a duplicate yields 409.
// @Tags        Taxonomy
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string               true  "User ID"  example(user123)
// @Param       body       body    handlers.TagRequest  true  "Tag payload"
//
// @Success     201  {object}  domain.Tag
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     409  {object}  handlers.ErrorResponse  "Duplicate tag"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /tag/add [post]
func (h *Handlers) CreateTag(c *gin.Context) {
	if _, okUser := requireUser(c); !okUser {
		return
	}
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	tag, err := h.taxSvc.CreateTag(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, tag)
}
