package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"INPUT_PATH", "PRICE_MIN", "PRICE_MAX", "MIN_NIGHTS_MAX", "ROOM_TYPES", "POSTGRES_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "data/raw/AB_NYC_2019.csv", cfg.InputPath)
	assert.Equal(t, 100.0, cfg.PriceMin)
	assert.Equal(t, 2000.0, cfg.PriceMax)
	assert.Equal(t, 1, cfg.MinNightsMin)
	assert.Equal(t, 365, cfg.MinNightsMax)
	assert.Empty(t, cfg.RoomTypes)
	assert.False(t, cfg.PostgresEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PRICE_MIN", "50.5")
	t.Setenv("MIN_NIGHTS_MAX", "30")
	t.Setenv("ROOM_TYPES", "Private room, Entire home/apt ,,")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := Load()
	assert.Equal(t, 50.5, cfg.PriceMin)
	assert.Equal(t, 30, cfg.MinNightsMax)
	assert.Equal(t, []string{"Private room", "Entire home/apt"}, cfg.RoomTypes)
	assert.True(t, cfg.PostgresEnabled)
	assert.Equal(t, 3, cfg.MaxRetries, "unparseable value falls back to default")
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "rental", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=rental sslmode=disable", cfg.DSN())
}
