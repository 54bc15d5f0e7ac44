// Package repo – profile aggregates.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
)

// ProfileStats bundles the counters shown on a profile page.
type ProfileStats struct {
	Ads      int64 `json:"ads"`
	Received int64 `json:"received_responses"`
	Sent     int64 `json:"sent_responses"`
}

// GetProfileStats counts the user's advertisements and the responses they
// have received and sent. Three single-row aggregates; no transaction needed.
func GetProfileStats(ctx context.Context, db *gorm.DB, userID string) (ProfileStats, error) {
	var s ProfileStats
	if err := db.WithContext(ctx).Model(&domain.Advertisement{}).
		Where("author_id = ?", userID).Count(&s.Ads).Error; err != nil {
		return s, err
	}
	if err := db.WithContext(ctx).Model(&domain.Response{}).
		Where("recipient_id = ?", userID).Count(&s.Received).Error; err != nil {
		return s, err
	}
	err := db.WithContext(ctx).Model(&domain.Response{}).
		Where("sender_id = ?", userID).Count(&s.Sent).Error
	return s, err
}
