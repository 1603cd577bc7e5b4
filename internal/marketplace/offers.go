package marketplace

import (
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/dmarchal/game-price-comparator/internal/parser"
)

// extractFirstOffer reads the price and merchant from the first row of
// the offer table. The wait is retried once after a short pause; after
// the second failure the offer is reported as unresolved (nil price,
// MerchantUnknown). Price and merchant cells are read independently so
// a missing merchant never loses the price.
func extractFirstOffer(page playwright.Page, offerWait, retryPause time.Duration) (*float64, string) {
	if _, err := waitForOffers(page, offerWait); err != nil {
		time.Sleep(retryPause)
		if _, err := waitForOffers(page, offerWait); err != nil {
			return nil, MerchantUnknown
		}
	}

	var price *float64
	if priceEl, err := page.QuerySelector(firstPriceSelector); err == nil && priceEl != nil {
		if text, err := priceEl.TextContent(); err == nil {
			price = parser.ParsePrice(strings.TrimSpace(text))
		}
	}

	merchant := MerchantUnknown
	if merchantEl, err := page.QuerySelector(firstMerchantSelector); err == nil && merchantEl != nil {
		if text, err := merchantEl.TextContent(); err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				merchant = trimmed
			}
		}
	}

	return price, merchant
}
