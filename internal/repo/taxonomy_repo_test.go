package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkarpov/go-ads-backend/internal/domain"
)

func TestCityRepo_CreateLookupList(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	c, err := CreateCity(ctx, db, "Пермь", "perm")
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if c.ID == 0 || c.Slug != "perm" {
		t.Fatalf("unexpected city: %+v", c)
	}

	byName, err := GetCityByName(ctx, db, "Пермь")
	if err != nil || byName.ID != c.ID {
		t.Fatalf("GetCityByName: %+v, %v", byName, err)
	}
	bySlug, err := GetCityBySlug(ctx, db, "perm")
	if err != nil || bySlug.ID != c.ID {
		t.Fatalf("GetCityBySlug: %+v, %v", bySlug, err)
	}
	if _, err := GetCityBySlug(ctx, db, "atlantis"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Unique name constraint.
	if _, err := CreateCity(ctx, db, "Пермь", "perm-2"); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}

	if _, err := CreateCity(ctx, db, "Омск", "omsk"); err != nil {
		t.Fatalf("CreateCity 2: %v", err)
	}
	list, err := ListCities(ctx, db)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListCities: %d, %v", len(list), err)
	}
	// Ordered by name.
	if list[0].Name > list[1].Name {
		t.Fatalf("cities not name-ordered: %+v", list)
	}
}

func TestCategoryRepo_CreateLookupList(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	c, err := CreateCategory(ctx, db, "Электроника", "electronics", "Техника, гаджеты, компьютеры")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	got, err := GetCategoryBySlug(ctx, db, "electronics")
	if err != nil || got.ID != c.ID || got.Description == "" {
		t.Fatalf("GetCategoryBySlug: %+v, %v", got, err)
	}
	byID, err := GetCategory(ctx, db, c.ID)
	if err != nil || byID.Slug != "electronics" {
		t.Fatalf("GetCategory: %+v, %v", byID, err)
	}
	if _, err := GetCategory(ctx, db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := ListCategories(ctx, db)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListCategories: %d, %v", len(list), err)
	}
}

func TestTagRepo_CreateLookupList(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	tag, err := CreateTag(ctx, db, "торг", "torg", "#ff8800")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	bySlug, err := GetTagBySlug(ctx, db, "torg")
	if err != nil || bySlug.ID != tag.ID || bySlug.Color != "#ff8800" {
		t.Fatalf("GetTagBySlug: %+v, %v", bySlug, err)
	}
	byName, err := GetTagByName(ctx, db, "торг")
	if err != nil || byName.ID != tag.ID {
		t.Fatalf("GetTagByName: %+v, %v", byName, err)
	}

	// Duplicate name rejected by unique index.
	if _, err := CreateTag(ctx, db, "торг", "torg-1", "#000000"); err == nil {
		t.Fatalf("expected duplicate tag name to fail")
	}

	loaded, err := GetTagsByIDs(ctx, db, []uint{tag.ID, 424242})
	if err != nil || len(loaded) != 1 {
		t.Fatalf("GetTagsByIDs: %d, %v", len(loaded), err)
	}
	empty, err := GetTagsByIDs(ctx, db, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("GetTagsByIDs(nil): %d, %v", len(empty), err)
	}
}

func TestDeleteCityAndCategory_Restricted(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()
	city, cat, _ := seedTaxonomy(t, db)

	seedAd(t, db, domain.Advertisement{
		Title: "T", Slug: "t", Description: "d", Price: 1,
		CityID: city.ID, CategoryID: cat.ID, AuthorID: "u",
	}, time.Now().UTC())

	// Counts reflect the dependent ad; services use them to refuse deletion.
	n, err := CountAdsByCity(ctx, db, city.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountAdsByCity = %d, %v; want 1", n, err)
	}
	n, err = CountAdsByCategory(ctx, db, cat.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountAdsByCategory = %d, %v; want 1", n, err)
	}

	// Unreferenced rows delete cleanly.
	spare, err := CreateCity(ctx, db, "Тула", "tula")
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if err := DeleteCity(ctx, db, spare.ID); err != nil {
		t.Fatalf("DeleteCity: %v", err)
	}
	if err := DeleteCity(ctx, db, spare.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on re-delete, got %v", err)
	}

	spareCat, err := CreateCategory(ctx, db, "Прочее", "misc", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := DeleteCategory(ctx, db, spareCat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := DeleteCategory(ctx, db, spareCat.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on re-delete, got %v", err)
	}
}
