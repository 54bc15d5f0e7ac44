// Response workflow HTTP handlers.
//
//   - POST /advertisement/{slug}/respond  (leave a response)
//   - GET  /response/{id}                 (read, parties only)
//   - POST /response/{id}/accept          (recipient only)
//   - POST /response/{id}/reject          (recipient only)
//   - GET  /profile/{username}            (public profile with counters)
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
	"github.com/mkarpov/go-ads-backend/internal/services"
)

//
// DTOs
//

// ResponseRequest is the JSON payload for leaving a response.
type ResponseRequest struct {
	Text string `json:"text" binding:"required" example:"Ещё продаёте? Готов забрать сегодня."`
}

// ProfileResponse is the public profile page: the user's counters and a page
// of their advertisements. Received and Sent are filled only when the viewer
// is the profile owner; responses stay private to their two parties.
type ProfileResponse struct {
	Username   string                 `json:"username"`
	Stats      repo.ProfileStats      `json:"stats"`
	Ads        []domain.Advertisement `json:"ads"`
	Pagination Pagination             `json:"pagination"`
	Received   []domain.Response      `json:"received,omitempty"`
	Sent       []domain.Response      `json:"sent,omitempty"`
}

// InboxResponse wraps the responses a user has received and sent.
type InboxResponse struct {
	Received []domain.Response `json:"received"`
	Sent     []domain.Response `json:"sent"`
}

// responseID parses the numeric {id} path parameter. Reports false after
// writing a 400 when the value is not a positive integer.
func responseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid response id")
		return 0, false
	}
	return uint(id), true
}

//
// Handlers
//

// CreateResponse godoc
// @ID          createResponse
// @Summary     Respond to an advertisement
// @Description Leaves a response on the advertisement. The recipient is the advertisement's author; the response starts in the "new" state.
// @Tags        Responses
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                    true  "User ID"  example(user123)
// @Param       slug       path    string                    true  "Advertisement slug"
// @Param       body       body    handlers.ResponseRequest  true  "Response payload"
//
// @Success     201  {object}  domain.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Advertisement not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /advertisement/{slug}/respond [post]
func (h *Handlers) CreateResponse(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, err := h.respSvc.Create(c.Request.Context(), uid, c.Param("slug"), req.Text)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// GetResponse godoc
// @ID          getResponse
// @Summary     Read a response
// @Description Returns the response when the caller is its sender or recipient. Anyone else gets 404, not 403.
// @Tags        Responses
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       id         path    int     true  "Response ID"
//
// @Success     200  {object}  domain.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /response/{id} [get]
func (h *Handlers) GetResponse(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := responseID(c)
	if !okID {
		return
	}
	r, err := h.respSvc.Get(c.Request.Context(), uid, id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// AcceptResponse godoc
// @ID          acceptResponse
// @Summary     Accept a response
// @Description Moves the response from "new" to "accepted". Recipient only; a response already moderated yields 409.
// @Tags        Responses
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       id         path    int     true  "Response ID"
//
// @Success     200  {object}  domain.Response
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the recipient"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already moderated"
// @Router      /response/{id}/accept [post]
func (h *Handlers) AcceptResponse(c *gin.Context) {
	h.moderateResponse(c, h.respSvc.Accept)
}

// RejectResponse godoc
// @ID          rejectResponse
// @Summary     Reject a response
// @Description Moves the response from "new" to "rejected". Recipient only; a response already moderated yields 409.
// @Tags        Responses
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       id         path    int     true  "Response ID"
//
// @Success     200  {object}  domain.Response
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the recipient"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already moderated"
// @Router      /response/{id}/reject [post]
func (h *Handlers) RejectResponse(c *gin.Context) {
	h.moderateResponse(c, h.respSvc.Reject)
}

func (h *Handlers) moderateResponse(c *gin.Context, op func(ctx context.Context, actorID string, id uint) (*domain.Response, error)) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := responseID(c)
	if !okID {
		return
	}
	r, err := op(c.Request.Context(), uid, id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// Inbox godoc
// @ID          listInbox
// @Summary     Current user's responses
// @Description Returns the responses the user has received and sent, newest first.
// @Tags        Responses
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
//
// @Success     200  {object}  handlers.InboxResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /responses [get]
func (h *Handlers) Inbox(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	received, err := h.respSvc.Received(c.Request.Context(), uid)
	if err != nil {
		failService(c, err)
		return
	}
	sent, err := h.respSvc.Sent(c.Request.Context(), uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, InboxResponse{Received: received, Sent: sent})
}

// Profile godoc
// @ID          getProfile
// @Summary     Public profile
// @Description Returns a user's counters and a page of their advertisements. The profile is public; when the caller views their own profile, their received and sent responses are included too.
// @Tags        Responses
// @Produce     json
//
// @Param       username  path   string  true  "Profile username"  example(user123)
// @Param       page      query  int     false "1-based page number"
//
// @Success     200  {object}  handlers.ProfileResponse
// @Router      /profile/{username} [get]
func (h *Handlers) Profile(c *gin.Context) {
	username := c.Param("username")
	page := pageParam(c)

	stats, err := h.respSvc.ProfileStats(c.Request.Context(), username)
	if err != nil {
		failService(c, err)
		return
	}
	ads, total, err := h.adSvc.List(c.Request.Context(),
		repo.AdFilter{AuthorID: username}, page, services.DefaultPageSize)
	if err != nil {
		failService(c, err)
		return
	}
	out := ProfileResponse{
		Username:   username,
		Stats:      stats,
		Ads:        ads,
		Pagination: newPagination(page, services.DefaultPageSize, total),
	}
	if userID(c) == username {
		if out.Received, err = h.respSvc.Received(c.Request.Context(), username); err != nil {
			failService(c, err)
			return
		}
		if out.Sent, err = h.respSvc.Sent(c.Request.Context(), username); err != nil {
			failService(c, err)
			return
		}
	}
	ok(c, http.StatusOK, out)
}
