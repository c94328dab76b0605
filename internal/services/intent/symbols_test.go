package intent

import "testing"

func TestResolveSymbolDictionary(t *testing.T) {
	cases := map[string]string{
		"What's the current price of Apple stock?": "AAPL",
		"precio de tesla":                          "TSLA",
		"is microsoft up today":                    "MSFT",
		"bitcoin please":                           "BTC",
		"Ethereum outlook":                         "ETH",
		"how is facebook doing":                    "META",
	}
	for msg, want := range cases {
		got, ok := ResolveSymbol(msg)
		if !ok {
			t.Fatalf("%q: expected a symbol", msg)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", msg, want, got)
		}
	}
}

func TestResolveSymbolDictionaryOrder(t *testing.T) {
	// FACEBOOK must resolve through its own alias, not via a token scan.
	got, ok := ResolveSymbol("FACEBOOK earnings")
	if !ok || got != "META" {
		t.Fatalf("expected META, got %q %v", got, ok)
	}
	// BITCOIN maps to BTC before any bare-token interpretation.
	got, ok = ResolveSymbol("BITCOIN")
	if !ok || got != "BTC" {
		t.Fatalf("expected BTC, got %q %v", got, ok)
	}
}

func TestResolveSymbolTokenScan(t *testing.T) {
	got, ok := ResolveSymbol("quote for AMD please")
	if !ok || got != "AMD" {
		t.Fatalf("expected AMD, got %q %v", got, ok)
	}
}

func TestResolveSymbolStopwords(t *testing.T) {
	if got, ok := ResolveSymbol("What is the day"); ok {
		t.Fatalf("expected none for stopword-only message, got %q", got)
	}
	if got, ok := ResolveSymbol("THE AND FOR NOW"); ok {
		t.Fatalf("expected none, stoplist should filter all tokens, got %q", got)
	}
}

func TestResolveSymbolNone(t *testing.T) {
	if got, ok := ResolveSymbol("tell me a story"); ok {
		t.Fatalf("expected none, got %q", got)
	}
	// Substring aliasing: "something" contains ETH, so the dictionary hits.
	// This mirrors the documented first-substring-wins behavior.
	if got, ok := ResolveSymbol("tell me something"); !ok || got != "ETH" {
		t.Fatalf("expected ETH via substring alias, got %q %v", got, ok)
	}
	if _, ok := ResolveSymbol(""); ok {
		t.Fatalf("expected none for empty message")
	}
}

func TestResolveSymbolPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, ok := ResolveSymbol("Apple at the open")
		if !ok || got != "AAPL" {
			t.Fatalf("resolve not stable on repeat call: %q %v", got, ok)
		}
	}
}
