package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmarchal/game-price-comparator/internal/models"
)

type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		PriceOverview *struct {
			Final    int    `json:"final"`
			Currency string `json:"currency"`
		} `json:"price_overview"`
	} `json:"data"`
}

// ReferencePrice queries the appdetails endpoint for one app id. An
// unsuccessful lookup or a missing price_overview field yields an
// absent amount, which is distinct from a true zero price. Transport
// failures are returned as errors so the caller can log them.
func (c *Client) ReferencePrice(ctx context.Context, appID int) (models.ReferencePrice, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appids": strconv.Itoa(appID),
			"cc":     c.cfg.Country,
			"l":      c.cfg.Language,
		}).
		Get("/api/appdetails")
	if err != nil {
		return models.ReferencePrice{}, fmt.Errorf("failed to fetch app details for %d: %w", appID, err)
	}

	if res.StatusCode() != 200 {
		return models.ReferencePrice{}, fmt.Errorf("app details for %d returned status %d", appID, res.StatusCode())
	}

	var payload map[string]appDetailsEntry
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return models.ReferencePrice{}, fmt.Errorf("failed to decode app details for %d: %w", appID, err)
	}

	entry, ok := payload[strconv.Itoa(appID)]
	if !ok || !entry.Success || entry.Data.PriceOverview == nil {
		return models.ReferencePrice{}, nil
	}

	// The API reports prices in cents.
	amount := float64(entry.Data.PriceOverview.Final) / 100

	return models.ReferencePrice{Amount: &amount}, nil
}
