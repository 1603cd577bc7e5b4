package models

import (
	"time"
)

// GameIdentity is one catalog entry from the Steam top-sellers listing.
type GameIdentity struct {
	AppID int    `json:"app_id"`
	Title string `json:"title"`
}

// PriceQuote is a price/merchant/source tuple read from the marketplace
// for one game. A nil Amount means the quote could not be resolved,
// which is distinct from a quote of zero.
type PriceQuote struct {
	Amount    *float64 `json:"amount,omitempty"`
	Currency  string   `json:"currency"`
	Merchant  string   `json:"merchant"`
	SourceURL string   `json:"source_url"`
}

// ReferencePrice is the structured-API price for a game. Nil Amount
// means the API reported no price, distinct from a free game at zero.
type ReferencePrice struct {
	Amount *float64 `json:"amount,omitempty"`
}

// SavingsResult holds the absolute and percentage difference between a
// reference price and a quote. Both fields are nil whenever either
// input amount is absent or the reference is exactly zero.
type SavingsResult struct {
	Absolute *float64 `json:"absolute,omitempty"`
	Percent  *float64 `json:"percent,omitempty"`
}

// Defined reports whether the savings could be computed.
func (s SavingsResult) Defined() bool {
	return s.Absolute != nil && s.Percent != nil
}

// ComparisonRow is the unit written to the report: one game with its
// reference price, marketplace quote and derived savings.
type ComparisonRow struct {
	Game      GameIdentity   `json:"game"`
	Reference ReferencePrice `json:"reference"`
	Quote     PriceQuote     `json:"quote"`
	Savings   SavingsResult  `json:"savings"`
	CheckedAt time.Time      `json:"checked_at"`
}

// Float returns a pointer to v. Convenience for building optional amounts.
func Float(v float64) *float64 {
	return &v
}
