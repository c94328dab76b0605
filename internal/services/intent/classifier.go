package intent

import (
	"regexp"
	"strings"
)

// Rule cascade for mapping free text to a capability. Stages are tried in
// a fixed order and the first stage with any match wins; later stages are
// never consulted. The order is load-bearing: arithmetic runs first because
// numeric expressions may incidentally contain keywords of later stages.
var (
	mathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s*[+\-*/]\s*\d+`),           // basic binary op
		regexp.MustCompile(`\d+\s*%\s*of\s*\d+`),            // percentage of
		regexp.MustCompile(`sqrt\s*\(`),                     // square root
		regexp.MustCompile(`sin\s*\(|cos\s*\(|tan\s*\(`),    // trig calls
	}

	mathWords = []string{"sqrt", "sin", "cos", "tan", "log"}

	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`precio|price|cotización|cuesta|cost|valor|value`),
		regexp.MustCompile(`cuánto cuesta|how much|what.*price`),
		regexp.MustCompile(`precio actual|current price`),
	}

	cryptoWords = []string{"bitcoin", "btc", "ethereum", "eth", "crypto", "criptomoneda"}

	infoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`información|info|detalles|details|market cap|volumen|volume`),
		regexp.MustCompile(`capitalización|capitalization|52.*week|high|low`),
	}

	historyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`histórico|historical|ayer|yesterday|cambio|change|trend`),
		regexp.MustCompile(`último|last|semana|week|mes|month|año|year`),
	}

	averagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`promedio|average|media|mean`),
		regexp.MustCompile(`última semana|last week|últimos días|last days`),
	}

	searchPatterns = []*regexp.Regexp{
		regexp.MustCompile(`buscar|search|noticias|news|encontrar|find`),
		regexp.MustCompile(`últimas noticias|latest news|información sobre`),
	}
)

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func anyContains(words []string, s string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Classify maps a message to a capability. The second return is false when
// no rule matched and the message should go to the completion provider.
// Deterministic and total: same text always yields the same answer.
func Classify(message string) (Capability, bool) {
	m := strings.ToLower(message)

	// Arithmetic shapes have top priority.
	if anyMatch(mathPatterns, m) {
		return CapCalculation, true
	}

	// Second arithmetic net: bare operators or function-name substrings.
	if strings.ContainsAny(m, "+-*/%=") || anyContains(mathWords, m) {
		return CapCalculation, true
	}

	if anyMatch(pricePatterns, m) {
		// Crypto mentions reroute the price intent.
		if anyContains(cryptoWords, m) {
			return CapCryptoPrice, true
		}
		return CapStockPrice, true
	}

	if anyMatch(infoPatterns, m) {
		return CapStockInfo, true
	}

	if anyMatch(historyPatterns, m) {
		return CapHistory, true
	}

	if anyMatch(averagePatterns, m) {
		return CapAverage, true
	}

	if anyMatch(searchPatterns, m) {
		return CapWebSearch, true
	}

	// A recognizable ticker with no keyword still defaults to a price check.
	if _, ok := ResolveSymbol(message); ok {
		return CapStockPrice, true
	}

	return 0, false
}
