package repository

import "strconv"

// Period is a requested history span, in the primary provider's notation.
type Period string

const (
	P1d  Period = "1d"
	P5d  Period = "5d"
	P1mo Period = "1mo"
	P3mo Period = "3mo"
	P6mo Period = "6mo"
	P1y  Period = "1y"
	P2y  Period = "2y"
	P5y  Period = "5y"
	P10y Period = "10y"
	PYtd Period = "ytd"
	PMax Period = "max"
)

// Granularity is the fallback provider's closest supported series shape.
type Granularity string

const (
	GranIntraday Granularity = "intraday"
	GranDaily    Granularity = "daily"
	GranMonthly  Granularity = "monthly"
)

// IsValidPeriod returns true if p is a supported history period.
func IsValidPeriod(p Period) bool {
	switch p {
	case P1d, P5d, P1mo, P3mo, P6mo, P1y, P2y, P5y, P10y, PYtd, PMax:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default history period.
func DefaultPeriod() Period { return P1mo }

// NormalizePeriod converts a raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// FallbackGranularity maps a period to the fallback provider's nearest
// supported series. Anything coarser than a week collapses to monthly.
// Day-count windows such as "7d" (the averaging window) use the daily
// series so the last N closes line up with calendar days.
func FallbackGranularity(p Period) Granularity {
	switch p {
	case P1d, P5d:
		return GranIntraday
	}
	if isDayCount(string(p)) {
		return GranDaily
	}
	return GranMonthly
}

// DayWindow builds the period for an N-day averaging window.
func DayWindow(days int) Period {
	if days <= 0 {
		days = 7
	}
	return Period(strconv.Itoa(days) + "d")
}

func isDayCount(s string) bool {
	if len(s) < 2 || s[len(s)-1] != 'd' {
		return false
	}
	for _, r := range s[:len(s)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
