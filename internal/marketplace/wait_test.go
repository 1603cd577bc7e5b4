package marketplace

import (
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSelectorTimeout = errors.New("timeout exceeded while waiting")

func TestWaitForOffersSucceedsWhenTableRenders(t *testing.T) {
	var waited []string
	var scrolled bool

	priceCell := &fakeElement{text: "12,50 €"}

	page := &fakePage{
		waitForSelector: func(sel string, opts ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
			waited = append(waited, sel)
			// Rendering settles well inside the budget.
			time.Sleep(5 * time.Millisecond)
			if sel == offerPriceSelector {
				return priceCell, nil
			}
			return &fakeElement{}, nil
		},
		evaluate: func(expr string, args ...interface{}) (interface{}, error) {
			scrolled = true
			return nil, nil
		},
	}

	cell, err := waitForOffers(page, time.Second)
	require.NoError(t, err)
	assert.Same(t, priceCell, cell)
	assert.True(t, scrolled, "expected a lazy-render scroll before the visibility wait")
	assert.Equal(t, []string{offerTableSelector, offerRowSelector, offerPriceSelector}, waited)
}

func TestWaitForOffersTimesOutWhenTableNeverAttaches(t *testing.T) {
	page := &fakePage{
		waitForSelector: func(sel string, opts ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
			return nil, errSelectorTimeout
		},
	}

	cell, err := waitForOffers(page, 50*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Nil(t, cell)
}

func TestWaitForOffersTimesOutWhenPriceNeverVisible(t *testing.T) {
	var waited []string

	page := &fakePage{
		waitForSelector: func(sel string, opts ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
			waited = append(waited, sel)
			if sel == offerPriceSelector {
				return nil, errSelectorTimeout
			}
			return &fakeElement{}, nil
		},
	}

	_, err := waitForOffers(page, 50*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	// The earlier steps must have run before the failing visibility wait.
	assert.Equal(t, []string{offerTableSelector, offerRowSelector, offerPriceSelector}, waited)
}
