package engine

import (
	"testing"
	"time"

	"crs/src/models"
	"crs/src/types"

	"github.com/stretchr/testify/assert"
)

func tahoeSeasons() []models.Season {
	return []models.Season{
		{
			ID:        1,
			Property:  types.PROPERTY_TAHOE,
			Name:      "summer",
			StartsOn:  date(2020, time.May, 1),
			EndsOn:    date(2020, time.October, 31),
			IsDefault: false,
		},
		{
			ID:        2,
			Property:  types.PROPERTY_TAHOE,
			Name:      "winter",
			StartsOn:  date(2020, time.November, 1),
			EndsOn:    date(2021, time.April, 30),
			IsDefault: false,
		},
		{
			ID:        3,
			Property:  types.PROPERTY_TAHOE,
			Name:      "off-season",
			IsDefault: true,
		},
	}
}

func TestResolveSeasonFrom(t *testing.T) {
	seasons := tahoeSeasons()

	s, err := ResolveSeasonFrom(types.PROPERTY_TAHOE, seasons, date(2026, time.July, 4))
	assert.Nil(t, err)
	assert.Equal(t, "summer", s.Name)

	s, err = ResolveSeasonFrom(types.PROPERTY_TAHOE, seasons, date(2027, time.January, 15))
	assert.Nil(t, err)
	assert.Equal(t, "winter", s.Name)
}

func TestResolveSeasonFallsBackToDefault(t *testing.T) {
	// Only a summer window configured; winter dates land on the default.
	seasons := []models.Season{
		{
			ID:       1,
			Name:     "summer",
			StartsOn: date(2020, time.May, 1),
			EndsOn:   date(2020, time.October, 31),
		},
		{ID: 2, Name: "base", IsDefault: true},
	}
	s, err := ResolveSeasonFrom(types.PROPERTY_TAHOE, seasons, date(2026, time.December, 25))
	assert.Nil(t, err)
	assert.Equal(t, "base", s.Name)
}

func TestResolveSeasonPrefersNonDefaultMatch(t *testing.T) {
	// The default also "contains" every date; a matching non-default window
	// must win over it.
	seasons := tahoeSeasons()
	s, err := ResolveSeasonFrom(types.PROPERTY_TAHOE, seasons, date(2026, time.June, 1))
	assert.Nil(t, err)
	assert.False(t, s.IsDefault)
}

func TestResolveSeasonNoDefaultConfigured(t *testing.T) {
	seasons := []models.Season{
		{
			ID:       1,
			Name:     "summer",
			StartsOn: date(2020, time.May, 1),
			EndsOn:   date(2020, time.October, 31),
		},
	}
	_, err := ResolveSeasonFrom(types.PROPERTY_CLEARLAKE, seasons, date(2026, time.December, 25))
	assert.ErrorIs(t, err, ErrNoSeasonConfigured)
}
