package marketplace

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// resolveFirstLink locates the first product link inside the results
// grid and returns its href. The locator is structural (first child
// anchor of the grid) rather than textual. A wait timeout is not
// terminal by itself: the grid may lazy-render, so one extra fixed
// pause is granted before the final count check. ErrNotFound is
// returned when no link or no href exists after the grace period.
func resolveFirstLink(page playwright.Page, wait, gracePause time.Duration) (string, error) {
	links := page.Locator(resultsGridLink)
	first := links.First()

	if err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(wait.Milliseconds())),
	}); err != nil {
		time.Sleep(gracePause)
	}

	count, err := links.Count()
	if err != nil || count == 0 {
		return "", ErrNotFound
	}

	href, err := first.GetAttribute("href")
	if err != nil || href == "" {
		return "", ErrNotFound
	}

	return href, nil
}
