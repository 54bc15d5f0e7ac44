// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Response
// model: creation, visibility-scoped reads, and the guarded status update.
//
// Error semantics match the rest of the package: gorm.ErrRecordNotFound
// (ErrNotFound) when a row is missing, raw gorm errors otherwise.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
)

// CreateResponse inserts a new Response in state "new". The recipient is
// fixed by the caller to the advertisement's author at creation time.
func CreateResponse(ctx context.Context, db *gorm.DB, adID uint, senderID, recipientID, text string) (*domain.Response, error) {
	r := &domain.Response{
		AdvertisementID: adID,
		SenderID:        senderID,
		RecipientID:     recipientID,
		Text:            text,
		Status:          domain.StatusNew,
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetResponse fetches a response by ID regardless of viewer, or ErrNotFound.
func GetResponse(ctx context.Context, db *gorm.DB, id uint) (*domain.Response, error) {
	var r domain.Response
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetResponseForUser fetches a response visible to userID, i.e. one where
// userID is the sender or the recipient. Anyone else gets ErrNotFound, so
// existence is not leaked to third parties.
func GetResponseForUser(ctx context.Context, db *gorm.DB, id uint, userID string) (*domain.Response, error) {
	var r domain.Response
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateResponseStatus moves a response from "new" to the given terminal
// status. The WHERE clause doubles as the state-machine guard: when the row
// is already terminal, zero rows match and ErrNotFound is returned, which the
// service layer maps to a conflict.
func UpdateResponseStatus(ctx context.Context, db *gorm.DB, id uint, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Response{}).
		Where("id = ? AND status = ?", id, domain.StatusNew).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListReceivedResponses returns responses addressed to userID, newest first.
func ListReceivedResponses(ctx context.Context, db *gorm.DB, userID string) ([]domain.Response, error) {
	var out []domain.Response
	err := db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListSentResponses returns responses authored by userID, newest first.
func ListSentResponses(ctx context.Context, db *gorm.DB, userID string) ([]domain.Response, error) {
	var out []domain.Response
	err := db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
