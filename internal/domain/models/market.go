package models

import "time"

// Quote is a point-in-time price for a stock or cryptocurrency.
type Quote struct {
	Symbol    string
	Price     float64
	PrevClose float64
	Source    string // provider that produced the quote
	FetchedAt time.Time
}

// Profile is the detailed snapshot behind a "stock info" request.
type Profile struct {
	Symbol       string
	Price        float64
	PrevClose    float64
	MarketCap    float64
	Volume       int64
	FiftyTwoHigh float64
	FiftyTwoLow  float64
	Source       string
}

// PricePoint is one daily (or coarser) close in a historical series.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string
	Snippet string
}
