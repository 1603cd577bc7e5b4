package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		StoreBaseURL: baseURL,
		Country:      "fr",
		Language:     "fr",
		GamesPerPage: 2,
		PagePause:    time.Millisecond,
	})
}

func listingHTML(rows string) string {
	return fmt.Sprintf(`<html><body><div id="search_resultsRows">%s</div></body></html>`, rows)
}

func resultRow(appID, title string) string {
	return fmt.Sprintf(`<a class="search_result_row" data-ds-appid="%s" href="#"><span class="title">%s</span></a>`, appID, title)
}

func TestTopSellersCollectsRequestedCount(t *testing.T) {
	var starts []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/", r.URL.Path)
		require.Equal(t, "topsellers", r.URL.Query().Get("filter"))
		starts = append(starts, r.URL.Query().Get("start"))

		switch r.URL.Query().Get("start") {
		case "0":
			fmt.Fprint(w, listingHTML(resultRow("730", "Counter-Strike 2")+resultRow("1245620", "ELDEN RING")))
		default:
			fmt.Fprint(w, listingHTML(resultRow("2358720", "Black Myth: Wukong")))
		}
	}))
	defer server.Close()

	games, err := newTestClient(server.URL).TopSellers(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, games, 3)

	assert.Equal(t, 730, games[0].AppID)
	assert.Equal(t, "Counter-Strike 2", games[0].Title)
	assert.Equal(t, 1245620, games[1].AppID)
	assert.Equal(t, 2358720, games[2].AppID)
	assert.Equal(t, []string{"0", "2"}, starts)
}

func TestTopSellersStopsOnEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") == "0" {
			fmt.Fprint(w, listingHTML(resultRow("730", "Counter-Strike 2")))
			return
		}
		fmt.Fprint(w, listingHTML(""))
	}))
	defer server.Close()

	games, err := newTestClient(server.URL).TopSellers(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestTopSellersStopsOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") == "0" {
			fmt.Fprint(w, listingHTML(resultRow("730", "Counter-Strike 2")))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	games, err := newTestClient(server.URL).TopSellers(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestTopSellersSkipsRowsWithoutAppID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "0" {
			fmt.Fprint(w, listingHTML(""))
			return
		}
		rows := `<a class="search_result_row" href="#"><span class="title">No ID</span></a>` +
			resultRow("570", "Dota 2")
		fmt.Fprint(w, listingHTML(rows))
	}))
	defer server.Close()

	games, err := newTestClient(server.URL).TopSellers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 570, games[0].AppID)
}

func TestTopSellersHandlesBundleAppIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "0" {
			fmt.Fprint(w, listingHTML(""))
			return
		}
		fmt.Fprint(w, listingHTML(resultRow("105600,12345", "Terraria Bundle")))
	}))
	defer server.Close()

	games, err := newTestClient(server.URL).TopSellers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 105600, games[0].AppID)
}

func TestReferencePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/appdetails", r.URL.Path)
		require.Equal(t, "1245620", r.URL.Query().Get("appids"))
		require.Equal(t, "fr", r.URL.Query().Get("cc"))

		fmt.Fprint(w, `{"1245620":{"success":true,"data":{"price_overview":{"final":5999,"currency":"EUR"}}}}`)
	}))
	defer server.Close()

	price, err := newTestClient(server.URL).ReferencePrice(context.Background(), 1245620)
	require.NoError(t, err)
	require.NotNil(t, price.Amount)
	assert.InDelta(t, 59.99, *price.Amount, 1e-9)
}

func TestReferencePriceUnsuccessfulLookupIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"99999":{"success":false}}`)
	}))
	defer server.Close()

	price, err := newTestClient(server.URL).ReferencePrice(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, price.Amount)
}

func TestReferencePriceMissingOverviewIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"440":{"success":true,"data":{}}}`)
	}))
	defer server.Close()

	price, err := newTestClient(server.URL).ReferencePrice(context.Background(), 440)
	require.NoError(t, err)
	assert.Nil(t, price.Amount, "free-to-play without price_overview must be absent, not zero")
}

func TestReferencePriceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ReferencePrice(context.Background(), 730)
	assert.Error(t, err)
}
