package marketplace

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Consent banner affectations seen on the marketplace, in priority
// order. "Ok" is a bare text button some French sites use.
var consentSelectors = []string{
	"button#onetrust-accept-btn-handler",
	"button:has-text('Accepter')",
	"button:has-text('Accept')",
	"text=Ok",
}

// dismissConsent clicks the first known consent button present on the
// page. It is advisory: every failure is swallowed and the call never
// blocks longer than one click timeout per selector. A missing banner
// is the common case, not an error.
func dismissConsent(page playwright.Page, timeout time.Duration) {
	for _, selector := range consentSelectors {
		button := page.Locator(selector).First()

		count, err := button.Count()
		if err != nil || count == 0 {
			continue
		}

		if err := button.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(float64(timeout.Milliseconds())),
		}); err != nil {
			continue
		}

		return
	}
}
