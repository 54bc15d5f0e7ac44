package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkarpov/go-ads-backend/internal/repo"
	"github.com/mkarpov/go-ads-backend/internal/storage"
)

func TestAdService_Create_DerivesSlugAndLoadsRelations(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	ad, err := svc.Create(ctx, "alice", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ad.Slug != "velosiped" {
		t.Fatalf("slug = %q; want velosiped", ad.Slug)
	}
	if ad.AuthorID != "alice" || ad.City.Slug != "moscow" || ad.Category.Slug != "furniture" {
		t.Fatalf("relations not loaded: %+v", ad)
	}
	if len(ad.Tags) != 2 {
		t.Fatalf("tags = %d; want 2", len(ad.Tags))
	}

	// Same title again: slug gets a numeric suffix.
	again, err := svc.Create(ctx, "bob", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create duplicate title: %v", err)
	}
	if again.Slug != "velosiped-1" {
		t.Fatalf("slug = %q; want velosiped-1", again.Slug)
	}
}

func TestAdService_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*AdInput)
		want   error
	}{
		{"blank title", func(in *AdInput) { in.Title = "   " }, ErrEmptyTitle},
		{"unsluggable title", func(in *AdInput) { in.Title = "???" }, ErrEmptyTitle},
		{"blank description", func(in *AdInput) { in.Description = "" }, ErrEmptyDescription},
		{"negative price", func(in *AdInput) { in.Price = -1 }, ErrNegativePrice},
		{"both city fields", func(in *AdInput) { in.NewCityName = "Калуга" }, ErrCityChoice},
		{"no city fields", func(in *AdInput) { in.CityID = 0 }, ErrCityChoice},
		{"unknown city", func(in *AdInput) { in.CityID = 999 }, ErrCityNotFound},
		{"unknown category", func(in *AdInput) { in.CategoryID = 999 }, ErrCategoryNotFound},
		{"unknown tag", func(in *AdInput) { in.TagIDs = []uint{999} }, ErrTagNotFound},
	}
	for _, tc := range cases {
		in := validInput(city, cat, tags)
		tc.mutate(&in)
		if _, err := svc.Create(ctx, "alice", in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestAdService_Create_NewCityReusedOrCreated(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	// Typing the name of an existing city reuses it.
	in := validInput(city, cat, tags)
	in.CityID = 0
	in.NewCityName = "Москва"
	ad, err := svc.Create(ctx, "alice", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ad.CityID != city.ID {
		t.Fatalf("existing city not reused: got city %d, want %d", ad.CityID, city.ID)
	}

	// A genuinely new name creates the city with its own slug.
	in = validInput(city, cat, tags)
	in.Title = "Шкаф"
	in.CityID = 0
	in.NewCityName = "Калуга"
	ad, err = svc.Create(ctx, "alice", in)
	if err != nil {
		t.Fatalf("Create with new city: %v", err)
	}
	if ad.City.Name != "Калуга" || ad.City.Slug != "kaluga" {
		t.Fatalf("new city wrong: %+v", ad.City)
	}
}

func TestAdService_Get_CountsViews(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	ad, err := svc.Create(ctx, "alice", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, ad.Slug, true)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("views = %d; want 1", got.Views)
	}

	// A read without counting leaves the counter alone.
	got, err = svc.Get(ctx, ad.Slug, false)
	if err != nil || got.Views != 1 {
		t.Fatalf("views = %d, %v; want 1", got.Views, err)
	}

	if _, err := svc.Get(ctx, "missing", true); !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound, got %v", err)
	}
}

func TestAdService_List_Paginates(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := validInput(city, cat, tags)
		in.Title = "Стол " + strings.Repeat("x", i+1)
		if _, err := svc.Create(ctx, "alice", in); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	ads, total, err := svc.List(ctx, repo.AdFilter{}, 1, 2)
	if err != nil || total != 3 || len(ads) != 2 {
		t.Fatalf("page 1: %d ads, total %d, %v", len(ads), total, err)
	}
	ads, total, err = svc.List(ctx, repo.AdFilter{}, 2, 2)
	if err != nil || total != 3 || len(ads) != 1 {
		t.Fatalf("page 2: %d ads, total %d, %v", len(ads), total, err)
	}
	// Beyond the last page: empty, not an error.
	ads, _, err = svc.List(ctx, repo.AdFilter{}, 7, 2)
	if err != nil || len(ads) != 0 {
		t.Fatalf("page 7: %d ads, %v", len(ads), err)
	}
	// page 0 is clamped to the first page.
	ads, _, err = svc.List(ctx, repo.AdFilter{}, 0, 2)
	if err != nil || len(ads) != 2 {
		t.Fatalf("page 0: %d ads, %v", len(ads), err)
	}
}

func TestAdService_Update_OwnershipAndStableSlug(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	ad, err := svc.Create(ctx, "alice", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput(city, cat, tags)
	in.Title = "Совсем другой заголовок"
	in.Price = 9000
	in.TagIDs = in.TagIDs[:1]

	if _, err := svc.Update(ctx, "mallory", ad.Slug, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	updated, err := svc.Update(ctx, "alice", ad.Slug, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != ad.Slug {
		t.Fatalf("slug changed on update: %q -> %q", ad.Slug, updated.Slug)
	}
	if updated.Title != in.Title || updated.Price != 9000 || len(updated.Tags) != 1 {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(ctx, "alice", "missing", in); !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound, got %v", err)
	}
}

func TestAdService_Delete_OwnershipAndCoverCleanup(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	svc := &AdService{DB: db, Covers: store}
	ctx := context.Background()

	ad, err := svc.Create(ctx, "alice", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	path, err := svc.SetCover(ctx, "alice", ad.Slug, "bike.jpg", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("SetCover: %v", err)
	}

	if err := svc.Delete(ctx, "mallory", ad.Slug); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "alice", ad.Slug); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, ad.Slug, false); !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("ad still readable after delete: %v", err)
	}
	// The stored cover file went with it.
	if _, err := os.Stat(filepath.Join(store.Root(), path)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("cover not cleaned up: %v", err)
	}
	if err := svc.Delete(ctx, "alice", ad.Slug); !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound on re-delete, got %v", err)
	}
}

func TestAdService_SetCover_ReplacesPrevious(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	svc := &AdService{DB: db, Covers: store}
	ctx := context.Background()

	ad, err := svc.Create(ctx, "alice", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.SetCover(ctx, "mallory", ad.Slug, "a.png", strings.NewReader("x")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	p1, err := svc.SetCover(ctx, "alice", ad.Slug, "a.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("SetCover 1: %v", err)
	}
	p2, err := svc.SetCover(ctx, "alice", ad.Slug, "b.png", strings.NewReader("y"))
	if err != nil {
		t.Fatalf("SetCover 2: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("replacement produced same path %q", p1)
	}
	got, err := svc.Get(ctx, ad.Slug, false)
	if err != nil || got.CoverPath != p2 {
		t.Fatalf("cover path = %q, %v; want %q", got.CoverPath, err, p2)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), p1)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("replaced cover still on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), p2)); err != nil {
		t.Fatalf("current cover missing: %v", err)
	}

	// No store wired: uploads fail cleanly.
	bare := &AdService{DB: db}
	if _, err := bare.SetCover(ctx, "alice", ad.Slug, "c.png", strings.NewReader("z")); !errors.Is(err, ErrNoCover) {
		t.Fatalf("expected ErrNoCover, got %v", err)
	}
}

func TestAdService_Similar(t *testing.T) {
	db := newTestDB(t)
	city, cat, tags := seedTaxonomy(t, db)
	svc := &AdService{DB: db}
	ctx := context.Background()

	subject, err := svc.Create(ctx, "alice", validInput(city, cat, tags))
	if err != nil {
		t.Fatalf("Create subject: %v", err)
	}
	// Six more in the same category: the similar block caps at four.
	for i := 0; i < 6; i++ {
		in := validInput(city, cat, tags)
		in.Title = "Похожий " + strings.Repeat("я", i+1)
		in.TagIDs = nil
		if _, err := svc.Create(ctx, "bob", in); err != nil {
			t.Fatalf("Create sibling %d: %v", i, err)
		}
	}

	similar, err := svc.Similar(ctx, subject.Slug)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(similar) != SimilarLimit {
		t.Fatalf("similar = %d; want %d", len(similar), SimilarLimit)
	}
	for _, sim := range similar {
		if sim.ID == subject.ID {
			t.Fatalf("similar block contains the ad itself")
		}
	}

	if _, err := svc.Similar(ctx, "missing"); !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound, got %v", err)
	}
}
