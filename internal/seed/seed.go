// Package seed loads the initial reference data a fresh deployment needs:
// the base category set and the major cities. Loading is idempotent at the
// table level: a table that already has rows is left untouched, so restarts
// never duplicate or overwrite operator edits.
package seed

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/domain"
	"github.com/mkarpov/go-ads-backend/internal/repo"
)

type fixture struct {
	name        string
	slug        string
	description string
}

var categories = []fixture{
	{"Электроника", "electronics", "Техника, гаджеты, компьютеры"},
	{"Одежда", "clothing", "Мужская и женская одежда, обувь"},
	{"Мебель", "furniture", "Мебель для дома и офиса"},
	{"Транспорт", "transport", "Автомобили, мотоциклы, велосипеды"},
	{"Недвижимость", "real-estate", "Квартиры, дома, участки"},
	{"Работа", "jobs", "Вакансии и резюме"},
	{"Услуги", "services", "Ремонт, доставка, обучение"},
}

var cities = []fixture{
	{"Москва", "moscow", ""},
	{"Санкт-Петербург", "saint-petersburg", ""},
	{"Новосибирск", "novosibirsk", ""},
	{"Екатеринбург", "ekaterinburg", ""},
	{"Казань", "kazan", ""},
	{"Нижний Новгород", "nizhny-novgorod", ""},
	{"Челябинск", "chelyabinsk", ""},
	{"Самара", "samara", ""},
	{"Омск", "omsk", ""},
	{"Ростов-на-Дону", "rostov-on-don", ""},
	{"Уфа", "ufa", ""},
	{"Красноярск", "krasnoyarsk", ""},
	{"Воронеж", "voronezh", ""},
	{"Пермь", "perm", ""},
	{"Волгоград", "volgograd", ""},
	{"Краснодар", "krasnodar", ""},
	{"Саратов", "saratov", ""},
	{"Тюмень", "tyumen", ""},
	{"Тольятти", "tolyatti", ""},
	{"Ижевск", "izhevsk", ""},
}

// Load inserts the category and city fixtures into empty tables. Tables with
// existing rows are skipped wholesale so operator-managed data survives
// redeploys.
func Load(ctx context.Context, db *gorm.DB) error {
	if err := loadCategories(ctx, db); err != nil {
		return err
	}
	return loadCities(ctx, db)
}

func loadCategories(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Category{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Debug().Int64("existing", n).Msg("seed: categories present, skipping")
		return nil
	}
	for _, f := range categories {
		if _, err := repo.CreateCategory(ctx, db, f.name, f.slug, f.description); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(categories)).Msg("seed: categories loaded")
	return nil
}

func loadCities(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.City{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Debug().Int64("existing", n).Msg("seed: cities present, skipping")
		return nil
	}
	for _, f := range cities {
		if _, err := repo.CreateCity(ctx, db, f.name, f.slug); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(cities)).Msg("seed: cities loaded")
	return nil
}
