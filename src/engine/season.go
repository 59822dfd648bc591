package engine

import (
	"fmt"
	"time"

	"crs/src/models"
	"crs/src/types"

	"gorm.io/gorm"
)

// ResolveSeasonFrom picks the season in effect on a date. The first
// non-default season whose recurring window contains the date wins; when
// none matches the default season is returned. Configuration should never
// produce overlapping non-default windows, but if it does the match order
// is the stable load order.
func ResolveSeasonFrom(property types.Property, seasons []models.Season, date time.Time) (*models.Season, error) {
	for i := range seasons {
		s := &seasons[i]
		if s.IsDefault {
			continue
		}
		if WindowOf(s).Contains(date) {
			return s, nil
		}
	}
	for i := range seasons {
		if seasons[i].IsDefault {
			return &seasons[i], nil
		}
	}
	return nil, fmt.Errorf("%w: property=%s", ErrNoSeasonConfigured, property)
}

// PropertySeasons loads a property's seasons through the config cache.
func PropertySeasons(tx *gorm.DB, property types.Property) ([]models.Season, error) {
	key := SeasonsCacheKey(property)
	if v, ok := Cache.Get(key); ok {
		return v.([]models.Season), nil
	}
	var seasons []models.Season
	err := tx.
		Model(&models.Season{}).
		Where(&models.Season{Property: property}).
		Order("id asc").
		Find(&seasons).
		Error
	if err != nil {
		return nil, err
	}
	Cache.Put(key, seasons)
	return seasons, nil
}

func ResolveSeason(tx *gorm.DB, property types.Property, date time.Time) (*models.Season, error) {
	seasons, err := PropertySeasons(tx, property)
	if err != nil {
		return nil, err
	}
	return ResolveSeasonFrom(property, seasons, date)
}
