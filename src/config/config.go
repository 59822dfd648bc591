package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"crs/src/types"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

// DefaultCurrency is the single currency the club operates in. Cross-currency
// arithmetic anywhere in the engine is a bug, not user input.
const DefaultCurrency = "USD"

// BookingTxRetries is how many times the create-booking transaction is
// retried on a serialization failure before surfacing a conflict.
func BookingTxRetries() int {
	return envInt("BOOKING_TX_RETRIES", 3)
}

// ConfigCacheTTL bounds how stale cached season/pricing/policy reads may be.
func ConfigCacheTTL() time.Duration {
	return time.Duration(envInt("CONFIG_CACHE_TTL_SECONDS", 300)) * time.Second
}

// Guest floors and ceilings for the modes that are not room-scoped.
func ModeGuestBounds(mode types.BookingMode) (min uint, max uint) {
	switch mode {
	case types.MODE_DAY:
		return uint(envInt("DAY_MIN_GUESTS", 1)), uint(envInt("DAY_MAX_GUESTS", 40))
	case types.MODE_BUYOUT:
		return uint(envInt("BUYOUT_MIN_GUESTS", 8)), uint(envInt("BUYOUT_MAX_GUESTS", 30))
	}
	return 1, 0
}

// PropertyLocation returns the calendar timezone for a property. Days-before-
// checkin math runs in this location, not wall-clock UTC.
func PropertyLocation(p types.Property) *time.Location {
	name := os.Getenv("PROPERTY_TIMEZONE")
	if name == "" {
		name = "America/Los_Angeles"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
