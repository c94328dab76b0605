package intent

import (
	"regexp"
	"strings"
)

type symbolAlias struct {
	name   string
	ticker string
}

// symbolDict maps known company and coin names to canonical tickers.
// Scan order is significant: first alias found as a substring wins, so
// specific names sit before the bare tickers they map to. Keep META late
// enough that FACEBOOK resolves through its own entry first.
var symbolDict = []symbolAlias{
	{"APPLE", "AAPL"}, {"AAPL", "AAPL"},
	{"TESLA", "TSLA"}, {"TSLA", "TSLA"},
	{"MICROSOFT", "MSFT"}, {"MSFT", "MSFT"},
	{"GOOGLE", "GOOGL"}, {"GOOGL", "GOOGL"},
	{"AMAZON", "AMZN"}, {"AMZN", "AMZN"},
	{"FACEBOOK", "META"}, {"META", "META"},
	{"NETFLIX", "NFLX"}, {"NFLX", "NFLX"},
	{"NVIDIA", "NVDA"}, {"NVDA", "NVDA"},
	{"BITCOIN", "BTC"}, {"BTC", "BTC"},
	{"ETHEREUM", "ETH"}, {"ETH", "ETH"},
}

// tickerToken matches bare uppercase runs shaped like tickers.
var tickerToken = regexp.MustCompile(`\b[A-Z]{3,5}\b`)

// stopWords are common English words that pass the ticker-token shape but
// never name a security.
var stopWords = map[string]struct{}{
	"THE": {}, "AND": {}, "FOR": {}, "ARE": {}, "BUT": {}, "NOT": {},
	"YOU": {}, "ALL": {}, "CAN": {}, "HAD": {}, "HER": {}, "WAS": {},
	"ONE": {}, "OUR": {}, "OUT": {}, "DAY": {}, "GET": {}, "HAS": {},
	"HIM": {}, "HIS": {}, "HOW": {}, "ITS": {}, "MAY": {}, "NEW": {},
	"NOW": {}, "OLD": {}, "SEE": {}, "TWO": {}, "WAY": {}, "WHO": {},
	"BOY": {}, "DID": {}, "MAN": {}, "MEN": {}, "PUT": {}, "SAY": {},
	"SHE": {}, "TOO": {}, "USE": {},
}

// ResolveSymbol extracts a canonical ticker from free text. Dictionary
// names are tried first, case-insensitively and in declared order; failing
// that, tokens the caller already wrote in uppercase are scanned against
// the ticker shape with the stopword filter. Pure and total: never errors,
// same input always yields the same ticker.
func ResolveSymbol(message string) (string, bool) {
	upper := strings.ToUpper(message)

	for _, a := range symbolDict {
		if strings.Contains(upper, a.name) {
			return a.ticker, true
		}
	}

	for _, tok := range tickerToken.FindAllString(message, -1) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		return tok, true
	}

	return "", false
}
