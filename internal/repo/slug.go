// Package repo – slug uniqueness.
//
// Every slug-bearing entity (City, Category, Tag, Advertisement) runs its
// candidate slug through the same collision loop. Keeping the loop here, next
// to the storage it queries, means no entity can accidentally skip it.
package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// UniqueSlug returns base unchanged when no other row of model holds it,
// otherwise the first of base-1, base-2, … that is free. excludeID exempts
// the record's own row so idempotent re-saves keep their slug. model must be
// a pointer to a slug-bearing domain struct.
func UniqueSlug(ctx context.Context, db *gorm.DB, model any, base string, excludeID uint) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		var cnt int64
		q := db.WithContext(ctx).Model(model).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&cnt).Error; err != nil {
			return "", err
		}
		if cnt == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
