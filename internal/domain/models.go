// Package domain defines the persistence models for the classifieds
// marketplace: cities, categories, tags, advertisements, and responses.
// These types are mapped with GORM and form the core data layer of the
// application.
package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Response status values. A response starts as StatusNew and may be moved
// exactly once to StatusAccepted or StatusRejected by the recipient.
const (
	StatusNew      = "new"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// City is a reference entity advertisements point at. Cities are created by
// the seed loader or inline from the advertisement form; they are never
// deleted while advertisements reference them.
//
// Fields:
//   - Name: unique display name.
//   - Slug: unique URL identifier, derived from Name at creation.
type City struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"size:100;not null;uniqueIndex"`
	Slug      string    `json:"slug"       gorm:"size:110;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for City.
func (City) TableName() string { return "cities" }

// Category groups advertisements into a browsable taxonomy. Categories are
// administrator-provided; like cities they cannot be removed while
// advertisements reference them.
type Category struct {
	ID          uint      `json:"id"          gorm:"primaryKey"`
	Name        string    `json:"name"        gorm:"size:100;not null"`
	Slug        string    `json:"slug"        gorm:"size:110;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// Tag is a free-form label any authenticated user may create. Tags carry a
// display color and attach to advertisements many-to-many.
type Tag struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"size:100;not null;uniqueIndex"`
	Slug      string    `json:"slug"       gorm:"size:110;not null;uniqueIndex"`
	Color     string    `json:"color"      gorm:"size:7;not null;default:'#808080'"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }

// Advertisement is a user listing. The slug is derived from the title once at
// creation (collision-suffixed) and never re-derived. The author is an opaque
// identity string supplied by the external auth collaborator.
//
// Fields:
//   - Price: non-negative amount (enforced by DB check and service validation).
//   - CoverPath: storage-relative path of the optional cover image.
//   - Views: detail-fetch counter, incremented atomically per fetch.
type Advertisement struct {
	ID          uint      `json:"id"          gorm:"primaryKey"`
	Title       string    `json:"title"       gorm:"size:200;not null"`
	Slug        string    `json:"slug"        gorm:"size:220;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text;not null"`

	// TitleFold and DescriptionFold hold the lowercased title/description for
	// free-text search. SQLite's LOWER() folds ASCII only, so non-Latin text
	// must be folded in Go and persisted; BeforeSave keeps them in sync.
	TitleFold       string `json:"-" gorm:"size:200;not null;index"`
	DescriptionFold string `json:"-" gorm:"type:text;not null"`

	Price       float64   `json:"price"       gorm:"not null;check:price >= 0"`
	CityID      uint      `json:"city_id"     gorm:"not null;index"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	AuthorID    string    `json:"author_id"   gorm:"type:varchar(64);not null;index:idx_author_ads"`
	CoverPath   string    `json:"cover_path,omitempty" gorm:"size:255"`
	Views       int64     `json:"views"       gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// City and Category are owning references; deleting either is restricted
	// while this advertisement exists.
	City     City     `json:"city"     gorm:"foreignKey:CityID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Category Category `json:"category" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Tags     []Tag    `json:"tags"     gorm:"many2many:advertisement_tags;"`

	// Responses are owned by the advertisement and removed with it.
	Responses []Response `json:"-" gorm:"foreignKey:AdvertisementID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Advertisement.
func (Advertisement) TableName() string { return "advertisements" }

// BeforeSave maintains the case-folded search columns on every insert or
// full-struct save.
func (a *Advertisement) BeforeSave(*gorm.DB) error {
	a.TitleFold = strings.ToLower(a.Title)
	a.DescriptionFold = strings.ToLower(a.Description)
	return nil
}

// Response is a structured inquiry/offer on an advertisement. The recipient
// is fixed to the advertisement's author at creation time and is the only
// identity allowed to accept or reject it.
type Response struct {
	ID              uint      `json:"id"               gorm:"primaryKey"`
	AdvertisementID uint      `json:"advertisement_id" gorm:"not null;index"`
	SenderID        string    `json:"sender_id"        gorm:"type:varchar(64);not null;index"`
	RecipientID     string    `json:"recipient_id"     gorm:"type:varchar(64);not null;index"`
	Text            string    `json:"text"             gorm:"type:text;not null"`
	Status          string    `json:"status"           gorm:"size:10;not null;default:'new';check:status IN ('new','accepted','rejected')"`
	CreatedAt       time.Time `json:"created_at"`

	// Advertisement is the parent listing.
	Advertisement Advertisement `json:"-" gorm:"foreignKey:AdvertisementID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Response.
func (Response) TableName() string { return "responses" }

// Terminal reports whether the response has left the moderation queue.
func (r Response) Terminal() bool {
	return r.Status == StatusAccepted || r.Status == StatusRejected
}
