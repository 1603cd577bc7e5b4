package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/dmarchal/game-price-comparator/internal/models"
)

// SessionFactory hands out one isolated page per extraction together
// with a release function that closes the page and its context.
type SessionFactory interface {
	NewSession() (playwright.Page, func() error, error)
}

// Extractor drives the marketplace extraction pipeline for one game at
// a time: search navigation, product link resolution, product
// navigation and first-offer extraction. The flow is strictly linear
// with two early exits (no result link, navigation failure) and the
// session is released on every path.
type Extractor struct {
	sessions SessionFactory
	cfg      Config
	logger   *slog.Logger
}

func NewExtractor(sessions SessionFactory, cfg Config) *Extractor {
	cfg.applyDefaults()

	return &Extractor{
		sessions: sessions,
		cfg:      cfg,
		logger:   slog.Default().With("component", "marketplace"),
	}
}

// FetchQuote looks up the marketplace price for a game title. It
// returns nil without error when the search yields no product link,
// and an error when navigation itself fails. An offer table that never
// renders still produces a quote, with a nil amount and the unknown
// merchant sentinel, so the caller can emit a complete row.
func (e *Extractor) FetchQuote(ctx context.Context, title string) (*models.PriceQuote, error) {
	page, release, err := e.sessions.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			e.logger.Warn("failed to release session", "title", title, "error", err)
		}
	}()

	searchURL := e.searchURL(title)
	e.logger.Debug("navigating to search page", "url", searchURL)

	if err := e.navigate(page, searchURL); err != nil {
		return nil, fmt.Errorf("search navigation failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	productURL, err := resolveFirstLink(page, e.cfg.LinkWait, e.cfg.RetryPause)
	if err != nil {
		e.logger.Info("no product link found", "title", title)
		return nil, nil
	}

	if strings.HasPrefix(productURL, "/") {
		productURL = e.cfg.BaseURL + productURL
	}

	e.logger.Debug("navigating to product page", "url", productURL)

	if err := e.navigate(page, productURL); err != nil {
		return nil, fmt.Errorf("product navigation failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	price, merchant := extractFirstOffer(page, e.cfg.OfferWait, e.cfg.RetryPause)

	return &models.PriceQuote{
		Amount:    price,
		Currency:  e.cfg.Currency,
		Merchant:  merchant,
		SourceURL: productURL,
	}, nil
}

// navigate loads a URL up to DOM construction, dismisses any consent
// banner, then waits for network quiescence before extraction starts.
func (e *Extractor) navigate(page playwright.Page, url string) error {
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}

	dismissConsent(page, e.cfg.ConsentTimeout)

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("page never reached quiescence: %w", err)
	}

	return nil
}

func (e *Extractor) searchURL(title string) string {
	return fmt.Sprintf("%s/produits/?search_name=%s", e.cfg.BaseURL, strings.ReplaceAll(title, " ", "+"))
}
