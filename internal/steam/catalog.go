package steam

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmarchal/game-price-comparator/internal/models"
)

// TopSellers pages through the top-sellers search listing until
// maxGames identities are collected or the listing is exhausted. The
// listing is server-rendered HTML; each result row is an anchor
// carrying the app id as a data attribute. A non-success response or
// an empty page ends the paging early without error.
func (c *Client) TopSellers(ctx context.Context, maxGames int) ([]models.GameIdentity, error) {
	games := make([]models.GameIdentity, 0, maxGames)

	for page := 0; len(games) < maxGames; page++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return games, err
		}

		start := page * c.cfg.GamesPerPage

		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"filter": "topsellers",
				"start":  strconv.Itoa(start),
				"count":  strconv.Itoa(c.cfg.GamesPerPage),
			}).
			Get("/search/")
		if err != nil {
			return games, fmt.Errorf("failed to fetch top sellers page %d: %w", page, err)
		}

		if res.StatusCode() != 200 {
			c.logger.Warn("top sellers listing returned non-success status", "page", page, "status", res.StatusCode())
			break
		}

		pageGames, err := parseSearchResults(res.Body())
		if err != nil {
			return games, fmt.Errorf("failed to parse top sellers page %d: %w", page, err)
		}

		if len(pageGames) == 0 {
			break
		}

		for _, game := range pageGames {
			games = append(games, game)
			if len(games) >= maxGames {
				break
			}
		}
	}

	c.logger.Info("collected top sellers", "count", len(games))
	return games, nil
}

func parseSearchResults(body []byte) ([]models.GameIdentity, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	var games []models.GameIdentity

	doc.Find("a.search_result_row").Each(func(i int, row *goquery.Selection) {
		appIDAttr, ok := row.Attr("data-ds-appid")
		if !ok {
			return
		}

		// Bundles carry comma-separated ids; the first one is the game.
		if idx := strings.IndexByte(appIDAttr, ','); idx >= 0 {
			appIDAttr = appIDAttr[:idx]
		}

		appID, err := strconv.Atoi(appIDAttr)
		if err != nil {
			return
		}

		title := strings.TrimSpace(row.Find("span.title").Text())
		if title == "" {
			title = "N/A"
		}

		games = append(games, models.GameIdentity{AppID: appID, Title: title})
	})

	return games, nil
}
