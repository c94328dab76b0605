package intent

import "testing"

func TestExtractBinaryOp(t *testing.T) {
	got, ok := ExtractExpression("what is 2+2?")
	if !ok || got != "2+2" {
		t.Fatalf("expected 2+2, got %q %v", got, ok)
	}
}

func TestExtractPercentOf(t *testing.T) {
	got, ok := ExtractExpression("What's 15% of 250?")
	if !ok || got != "15% of 250" {
		t.Fatalf("expected percent form, got %q %v", got, ok)
	}
}

func TestExtractSqrt(t *testing.T) {
	got, ok := ExtractExpression("please compute sqrt(16) for me")
	if !ok || got != "sqrt(16)" {
		t.Fatalf("expected sqrt(16), got %q %v", got, ok)
	}
}

func TestExtractLongestOfFirstPattern(t *testing.T) {
	// Both candidates match the binary-op pattern; the longer one wins.
	got, ok := ExtractExpression("2+2 or maybe 123 * 4567")
	if !ok || got != "123 * 4567" {
		t.Fatalf("expected longest match, got %q %v", got, ok)
	}
}

func TestExtractEarlierPatternWins(t *testing.T) {
	// The binary-op pattern matches, so the percent form is never consulted
	// even though its match would be longer.
	got, ok := ExtractExpression("1+1 and 15% of 250")
	if !ok || got != "1+1" {
		t.Fatalf("expected first-pattern match, got %q %v", got, ok)
	}
}

func TestExtractNone(t *testing.T) {
	if got, ok := ExtractExpression("hello there"); ok {
		t.Fatalf("expected none, got %q", got)
	}
}
