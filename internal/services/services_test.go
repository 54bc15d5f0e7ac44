package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
)

// newTestDB opens a throwaway SQLite database with the full schema and
// foreign keys enabled.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "services.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable fks: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.City{}, &domain.Category{}, &domain.Tag{},
		&domain.Advertisement{}, &domain.Response{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedTaxonomy inserts one city, one category, and two tags for tests that
// need valid references.
func seedTaxonomy(t *testing.T, db *gorm.DB) (*domain.City, *domain.Category, []domain.Tag) {
	t.Helper()
	ctx := context.Background()

	city, err := repo.CreateCity(ctx, db, "Москва", "moscow")
	if err != nil {
		t.Fatalf("seed city: %v", err)
	}
	cat, err := repo.CreateCategory(ctx, db, "Мебель", "furniture", "Столы, стулья, шкафы")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	t1, err := repo.CreateTag(ctx, db, "торг", "torg", "#ff0000")
	if err != nil {
		t.Fatalf("seed tag 1: %v", err)
	}
	t2, err := repo.CreateTag(ctx, db, "новое", "novoe", "#00ff00")
	if err != nil {
		t.Fatalf("seed tag 2: %v", err)
	}
	return city, cat, []domain.Tag{*t1, *t2}
}

// validInput returns an AdInput referencing the seeded taxonomy.
func validInput(city *domain.City, cat *domain.Category, tags []domain.Tag) AdInput {
	in := AdInput{
		Title:       "Велосипед",
		Description: "Почти новый, пробег 100 км",
		Price:       5500,
		CityID:      city.ID,
		CategoryID:  cat.ID,
	}
	for _, tg := range tags {
		in.TagIDs = append(in.TagIDs, tg.ID)
	}
	return in
}
