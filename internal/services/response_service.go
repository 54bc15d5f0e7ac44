// Package services – ResponseService
//
// This file implements the ResponseService, which governs responses to
// advertisements: buyers leave them, the advertisement's author moderates
// them through a one-way state machine (new → accepted or rejected), and
// only the two parties involved can read them.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
)

// ResponseService implements the use-cases around advertisement responses.
type ResponseService struct {
	DB *gorm.DB
}

// Create records senderID's response to the advertisement identified by
// adSlug. The recipient is pinned to the advertisement's author at creation
// time, so a later transfer of the ad cannot re-route past conversations.
// Responding to one's own advertisement is allowed; it is odd but harmless.
func (s *ResponseService) Create(ctx context.Context, senderID, adSlug, text string) (*domain.Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	ad, err := repo.GetAdBySlug(ctx, s.DB, adSlug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return repo.CreateResponse(ctx, s.DB, ad.ID, senderID, ad.AuthorID, text)
}

// Get fetches a response visible to userID: its sender or its recipient.
// Anyone else gets ErrResponseNotFound; existence is not leaked.
func (s *ResponseService) Get(ctx context.Context, userID string, id uint) (*domain.Response, error) {
	r, err := repo.GetResponseForUser(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return r, nil
}

// Accept moves the response to the accepted state. Recipient only.
func (s *ResponseService) Accept(ctx context.Context, actorID string, id uint) (*domain.Response, error) {
	return s.moderate(ctx, actorID, id, domain.StatusAccepted)
}

// Reject moves the response to the rejected state. Recipient only.
func (s *ResponseService) Reject(ctx context.Context, actorID string, id uint) (*domain.Response, error) {
	return s.moderate(ctx, actorID, id, domain.StatusRejected)
}

// moderate applies the one-way state machine:
//   - only the recipient may moderate (ErrForbidden);
//   - only a "new" response can transition; accepted and rejected are
//     terminal, and any further attempt yields ErrAlreadyModerated, including
//     repeating the transition that already happened.
//
// The read and the guarded update run in one transaction so two concurrent
// moderations cannot both succeed.
func (s *ResponseService) moderate(ctx context.Context, actorID string, id uint, status string) (*domain.Response, error) {
	var r *domain.Response
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		r, err = repo.GetResponse(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrResponseNotFound
			}
			return err
		}
		if r.RecipientID != actorID {
			return ErrForbidden
		}
		if r.Terminal() {
			return ErrAlreadyModerated
		}
		if err := repo.UpdateResponseStatus(ctx, tx, id, status); err != nil {
			// The guard lost a race: the row left "new" between the read
			// and the update.
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAlreadyModerated
			}
			return err
		}
		r.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Received lists the responses addressed to userID, newest first.
func (s *ResponseService) Received(ctx context.Context, userID string) ([]domain.Response, error) {
	return repo.ListReceivedResponses(ctx, s.DB, userID)
}

// Sent lists the responses authored by userID, newest first.
func (s *ResponseService) Sent(ctx context.Context, userID string) ([]domain.Response, error) {
	return repo.ListSentResponses(ctx, s.DB, userID)
}

// ProfileStats returns the counters shown on userID's profile page.
func (s *ResponseService) ProfileStats(ctx context.Context, userID string) (repo.ProfileStats, error) {
	return repo.GetProfileStats(ctx, s.DB, userID)
}
