package marketplace

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// waitForOffers blocks until the first row of the offer table has a
// visibly rendered price cell, or fails with ErrTimeout. The protocol
// is ordered: table attached, at least one row attached, scroll to a
// third of page height to trigger lazy rendering, then price cell
// visible. Each step is bounded by the same timeout value.
func waitForOffers(page playwright.Page, timeout time.Duration) (playwright.ElementHandle, error) {
	budget := playwright.Float(float64(timeout.Milliseconds()))

	if _, err := page.WaitForSelector(offerTableSelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: budget,
	}); err != nil {
		return nil, fmt.Errorf("offer table not attached: %w", ErrTimeout)
	}

	if _, err := page.WaitForSelector(offerRowSelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: budget,
	}); err != nil {
		return nil, fmt.Errorf("offer rows not attached: %w", ErrTimeout)
	}

	// Below-the-fold rows only render once scrolled near.
	if _, err := page.Evaluate(`window.scrollTo(0, document.body.scrollHeight/3)`); err != nil {
		return nil, fmt.Errorf("failed to scroll page: %w", err)
	}

	priceCell, err := page.WaitForSelector(offerPriceSelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: budget,
	})
	if err != nil {
		return nil, fmt.Errorf("price cell not visible: %w", ErrTimeout)
	}

	return priceCell, nil
}
