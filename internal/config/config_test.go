package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://store.steampowered.com", cfg.Steam.StoreBaseURL)
	assert.Equal(t, "fr", cfg.Steam.Country)
	assert.Equal(t, 50, cfg.Steam.GamesPerPage)
	assert.Equal(t, time.Second, cfg.Steam.PagePause)

	assert.Equal(t, "https://www.goclecd.fr", cfg.Marketplace.BaseURL)
	assert.Equal(t, "EUR", cfg.Marketplace.Currency)
	assert.Equal(t, 25*time.Second, cfg.Marketplace.OfferWait)
	assert.Equal(t, 400*time.Millisecond, cfg.Marketplace.GamePause)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "fr-FR", cfg.Browser.Locale)

	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STEAM_GAMES_PER_PAGE", "25")
	t.Setenv("MARKETPLACE_OFFER_WAIT", "10s")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("MARKETPLACE_BASE_URL", "https://example.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Steam.GamesPerPage)
	assert.Equal(t, 10*time.Second, cfg.Marketplace.OfferWait)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "https://example.test", cfg.Marketplace.BaseURL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("STEAM_GAMES_PER_PAGE", "lots")
	t.Setenv("MARKETPLACE_OFFER_WAIT", "soon")
	t.Setenv("BROWSER_HEADLESS", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Steam.GamesPerPage)
	assert.Equal(t, 25*time.Second, cfg.Marketplace.OfferWait)
	assert.True(t, cfg.Browser.Headless)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Steam.GamesPerPage = 0
	assert.Error(t, cfg.Validate())

	cfg.Steam.GamesPerPage = 50
	cfg.Marketplace.OfferWait = 0
	assert.Error(t, cfg.Validate())

	cfg.Marketplace.OfferWait = time.Second
	cfg.Marketplace.LinkWait = -time.Second
	assert.Error(t, cfg.Validate())
}
