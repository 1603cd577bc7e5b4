package compare

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmarchal/game-price-comparator/internal/marketplace"
	"github.com/dmarchal/game-price-comparator/internal/models"
)

// ReferenceSource yields the structured storefront price for an app id.
type ReferenceSource interface {
	ReferencePrice(ctx context.Context, appID int) (models.ReferencePrice, error)
}

// QuoteSource yields the marketplace quote for a game title. A nil
// quote without error means the title had no marketplace listing.
type QuoteSource interface {
	FetchQuote(ctx context.Context, title string) (*models.PriceQuote, error)
}

// QuoteCache is an optional read-through cache in front of the quote
// source. Lookups and stores are best effort.
type QuoteCache interface {
	Get(ctx context.Context, title string) (*models.PriceQuote, bool)
	Set(ctx context.Context, title string, quote *models.PriceQuote)
}

// Runner processes a catalog strictly sequentially: one game at a
// time, reference price then marketplace quote, a fixed pause between
// games. No per-game failure aborts the run; every game produces a
// row, with absent amounts when data could not be resolved.
type Runner struct {
	references ReferenceSource
	quotes     QuoteSource
	cache      QuoteCache
	gamePause  time.Duration
	currency   string
	logger     *slog.Logger
}

type RunnerOption func(*Runner)

// WithQuoteCache installs a best-effort quote cache.
func WithQuoteCache(cache QuoteCache) RunnerOption {
	return func(r *Runner) {
		r.cache = cache
	}
}

// WithGamePause overrides the fixed inter-game pause.
func WithGamePause(pause time.Duration) RunnerOption {
	return func(r *Runner) {
		r.gamePause = pause
	}
}

// WithCurrency sets the currency tag used for rows whose quote could
// not be resolved at all.
func WithCurrency(currency string) RunnerOption {
	return func(r *Runner) {
		r.currency = currency
	}
}

func NewRunner(references ReferenceSource, quotes QuoteSource, opts ...RunnerOption) *Runner {
	r := &Runner{
		references: references,
		quotes:     quotes,
		gamePause:  400 * time.Millisecond,
		currency:   "EUR",
		logger:     slog.Default().With("component", "runner"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run compares every game in order and returns one row per game. It
// stops early only when the context is cancelled, returning the rows
// collected so far together with the context error.
func (r *Runner) Run(ctx context.Context, games []models.GameIdentity) ([]models.ComparisonRow, error) {
	rows := make([]models.ComparisonRow, 0, len(games))

	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		row := r.compareGame(ctx, game)
		rows = append(rows, row)

		if row.Savings.Defined() {
			r.logger.Info("game compared",
				"title", game.Title,
				"reference", *row.Reference.Amount,
				"quote", *row.Quote.Amount,
				"merchant", row.Quote.Merchant,
				"saving_percent", *row.Savings.Percent)
		} else {
			r.logger.Info("game compared with incomplete data", "title", game.Title)
		}

		if i < len(games)-1 {
			select {
			case <-ctx.Done():
				return rows, ctx.Err()
			case <-time.After(r.gamePause):
			}
		}
	}

	return rows, nil
}

func (r *Runner) compareGame(ctx context.Context, game models.GameIdentity) models.ComparisonRow {
	row := models.ComparisonRow{
		Game:      game,
		CheckedAt: time.Now().UTC(),
	}

	reference, err := r.references.ReferencePrice(ctx, game.AppID)
	if err != nil {
		r.logger.Warn("reference price lookup failed", "title", game.Title, "app_id", game.AppID, "error", err)
	}
	row.Reference = reference

	quote := r.lookupQuote(ctx, game.Title)
	if quote == nil {
		// Still a full row: absent amount, unknown merchant.
		quote = &models.PriceQuote{
			Currency: r.currency,
			Merchant: marketplace.MerchantUnknown,
		}
	}
	row.Quote = *quote

	row.Savings = Savings(row.Reference.Amount, row.Quote.Amount)

	return row
}

func (r *Runner) lookupQuote(ctx context.Context, title string) *models.PriceQuote {
	if r.cache != nil {
		if quote, ok := r.cache.Get(ctx, title); ok {
			r.logger.Debug("quote served from cache", "title", title)
			return quote
		}
	}

	quote, err := r.quotes.FetchQuote(ctx, title)
	if err != nil {
		r.logger.Warn("marketplace quote failed", "title", title, "error", err)
		return nil
	}

	if quote != nil && r.cache != nil {
		r.cache.Set(ctx, title, quote)
	}

	return quote
}
