package marketplace

import (
	"errors"
	"time"
)

var (
	// ErrTimeout means an expected DOM structure never reached the
	// required state within the wait budget.
	ErrTimeout = errors.New("timed out waiting for page content")
	// ErrNotFound means the page rendered but held no usable result.
	ErrNotFound = errors.New("no matching result on page")
)

// MerchantUnknown is the sentinel merchant name used when the merchant
// cell is missing from the offer table.
const MerchantUnknown = "unknown"

// Selectors for the GoCleCD offer table and results grid. The grid
// link is located structurally rather than by text because result
// titles are free-form and locale dependent.
const (
	offerTableSelector    = "table#offerTable"
	offerRowSelector      = "table#offerTable tbody tr"
	offerPriceSelector    = "table#offerTable tbody tr td.offers-price a span"
	firstPriceSelector    = "table#offerTable tbody tr:nth-child(1) td.offers-price a span"
	firstMerchantSelector = "table#offerTable tbody tr:nth-child(1) td.offers-merchant a"
	resultsGridLink       = "//div[contains(@class,'grid-view')]//div[1]/a"
)

// Config carries the marketplace endpoint and the wait budgets for the
// extraction pipeline. Zero values fall back to the defaults below.
type Config struct {
	BaseURL        string
	Currency       string
	OfferWait      time.Duration
	LinkWait       time.Duration
	ConsentTimeout time.Duration
	RetryPause     time.Duration
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.goclecd.fr"
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	if c.OfferWait <= 0 {
		c.OfferWait = 25 * time.Second
	}
	if c.LinkWait <= 0 {
		c.LinkWait = 10 * time.Second
	}
	if c.ConsentTimeout <= 0 {
		c.ConsentTimeout = time.Second
	}
	if c.RetryPause <= 0 {
		c.RetryPause = time.Second
	}
}
