package steam

import (
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmarchal/game-price-comparator/internal/ratelimit"
)

const defaultUserAgent = "Mozilla/5.0"

// Config points the client at the Steam storefront and controls paging
// and pacing of the listing requests.
type Config struct {
	StoreBaseURL   string
	Country        string
	Language       string
	GamesPerPage   int
	PagePause      time.Duration
	RequestTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.StoreBaseURL == "" {
		c.StoreBaseURL = "https://store.steampowered.com"
	}
	if c.Country == "" {
		c.Country = "fr"
	}
	if c.Language == "" {
		c.Language = "fr"
	}
	if c.GamesPerPage < 1 {
		c.GamesPerPage = 50
	}
	if c.PagePause <= 0 {
		c.PagePause = time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 15 * time.Second
	}
}

// Client talks to the Steam storefront: the top-sellers search listing
// for the catalog and the appdetails endpoint for reference prices.
type Client struct {
	http   *resty.Client
	cfg    Config
	pacer  ratelimit.Limiter
	logger *slog.Logger
}

func NewClient(cfg Config) *Client {
	cfg.applyDefaults()

	http := resty.New().
		SetBaseURL(cfg.StoreBaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("User-Agent", defaultUserAgent)

	return &Client{
		http: http,
		cfg:  cfg,
		// Jitter up to +50% so listing requests do not tick like a clock.
		pacer:  ratelimit.NewPacer(cfg.PagePause, cfg.PagePause+cfg.PagePause/2),
		logger: slog.Default().With("component", "steam"),
	}
}
