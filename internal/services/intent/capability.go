package intent

// Capability is one discrete action the agent can perform. The set is
// closed: every routing decision lands on one of these or on "no match",
// which is expressed as the bool returned by Classify.
type Capability uint8

const (
	CapStockPrice Capability = iota
	CapStockInfo
	CapHistory
	CapAverage
	CapCryptoPrice
	CapWebSearch
	CapCalculation
)

// Arity describes which argument a capability needs extracted from the
// message before its adapter can be invoked.
type Arity uint8

const (
	AritySymbol Arity = iota
	AritySymbolPeriod
	AritySymbolWindow
	ArityFreeText
	ArityExpression
)

func (c Capability) String() string {
	switch c {
	case CapStockPrice:
		return "stock_price"
	case CapStockInfo:
		return "stock_info"
	case CapHistory:
		return "historical_data"
	case CapAverage:
		return "average_price"
	case CapCryptoPrice:
		return "crypto_price"
	case CapWebSearch:
		return "web_search"
	case CapCalculation:
		return "calculation"
	default:
		return "unknown"
	}
}

// Arity returns the argument shape for the capability.
func (c Capability) Arity() Arity {
	switch c {
	case CapHistory:
		return AritySymbolPeriod
	case CapAverage:
		return AritySymbolWindow
	case CapWebSearch:
		return ArityFreeText
	case CapCalculation:
		return ArityExpression
	default:
		return AritySymbol
	}
}

// Description is display-only text for capability listings.
func (c Capability) Description() string {
	switch c {
	case CapStockPrice:
		return "Current stock price for a symbol (e.g. AAPL, TSLA, MSFT)"
	case CapStockInfo:
		return "Detailed stock information: price, market cap, volume, 52-week range"
	case CapHistory:
		return "Historical stock data for a symbol and period (1d through max)"
	case CapAverage:
		return "Average stock price over a number of days"
	case CapCryptoPrice:
		return "Current cryptocurrency price (e.g. BTC, ETH)"
	case CapWebSearch:
		return "Web search for market news and general information"
	case CapCalculation:
		return "Arithmetic: basic operators, percentages, sqrt and trig functions"
	default:
		return ""
	}
}

// All lists every capability in registry order, for display endpoints.
func All() []Capability {
	return []Capability{
		CapStockPrice, CapStockInfo, CapHistory, CapAverage,
		CapCryptoPrice, CapWebSearch, CapCalculation,
	}
}
