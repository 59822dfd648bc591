package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	aIn := date(2026, time.September, 10)
	aOut := date(2026, time.September, 13)

	// mid-stay overlap
	assert.True(t, Overlaps(aIn, aOut, date(2026, time.September, 11), date(2026, time.September, 12)))
	// fully containing
	assert.True(t, Overlaps(aIn, aOut, date(2026, time.September, 9), date(2026, time.September, 14)))
	// leading edge
	assert.True(t, Overlaps(aIn, aOut, date(2026, time.September, 8), date(2026, time.September, 11)))
}

func TestOverlapsSameDayTurnover(t *testing.T) {
	// [10,13) then [13,15): checkout equals checkin, never a conflict.
	assert.False(t, Overlaps(
		date(2026, time.September, 10), date(2026, time.September, 13),
		date(2026, time.September, 13), date(2026, time.September, 15),
	))
	assert.False(t, Overlaps(
		date(2026, time.September, 13), date(2026, time.September, 15),
		date(2026, time.September, 10), date(2026, time.September, 13),
	))
}

func TestOverlapsDisjoint(t *testing.T) {
	assert.False(t, Overlaps(
		date(2026, time.September, 1), date(2026, time.September, 3),
		date(2026, time.September, 20), date(2026, time.September, 22),
	))
}
