package repository

import "testing"

func TestNormalizePeriodDefault(t *testing.T) {
	if got := NormalizePeriod(""); got != P1mo {
		t.Fatalf("expected 1mo default, got %s", got)
	}
	if got := NormalizePeriod("2w"); got != P1mo {
		t.Fatalf("expected 1mo for unknown period, got %s", got)
	}
}

func TestNormalizePeriodValid(t *testing.T) {
	for _, p := range []string{"1d", "5d", "1mo", "1y", "ytd", "max"} {
		if got := NormalizePeriod(p); got != Period(p) {
			t.Fatalf("expected %s, got %s", p, got)
		}
	}
}

func TestFallbackGranularity(t *testing.T) {
	if g := FallbackGranularity(P1d); g != GranIntraday {
		t.Fatalf("1d should map to intraday, got %s", g)
	}
	if g := FallbackGranularity(P5d); g != GranIntraday {
		t.Fatalf("5d should map to intraday, got %s", g)
	}
	for _, p := range []Period{P1mo, P6mo, P1y, P10y, PYtd, PMax} {
		if g := FallbackGranularity(p); g != GranMonthly {
			t.Fatalf("%s should map to monthly, got %s", p, g)
		}
	}
	if g := FallbackGranularity(DayWindow(7)); g != GranDaily {
		t.Fatalf("7d window should map to daily, got %s", g)
	}
}

func TestDayWindow(t *testing.T) {
	if p := DayWindow(7); p != Period("7d") {
		t.Fatalf("got %s, want 7d", p)
	}
	if p := DayWindow(0); p != Period("7d") {
		t.Fatalf("non-positive window should default to 7d, got %s", p)
	}
}
