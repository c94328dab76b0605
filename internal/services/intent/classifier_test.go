package intent

import "testing"

func TestClassifyArithmeticBeatsPrice(t *testing.T) {
	// Numeric expressions must win even when price keywords are present.
	cases := []string{
		"2+2",
		"what is 2 + 2",
		"15% of 250",
		"what's the value of sqrt(16)",
		"cost of 3 * 4",
	}
	for _, msg := range cases {
		cap, ok := Classify(msg)
		if !ok {
			t.Fatalf("%q: expected a match", msg)
		}
		if cap != CapCalculation {
			t.Fatalf("%q: expected calculation, got %s", msg, cap)
		}
	}
}

func TestClassifyOperatorScan(t *testing.T) {
	cap, ok := Classify("compute sqrt of something")
	if !ok || cap != CapCalculation {
		t.Fatalf("expected calculation via operator scan, got %v %v", cap, ok)
	}
}

func TestClassifyPrice(t *testing.T) {
	for _, msg := range []string{
		"What's the current price of Apple stock?",
		"cuánto cuesta Tesla",
		"how much is MSFT worth",
	} {
		cap, ok := Classify(msg)
		if !ok || cap != CapStockPrice {
			t.Fatalf("%q: expected stock_price, got %v %v", msg, cap, ok)
		}
	}
}

func TestClassifyCryptoBranch(t *testing.T) {
	for _, msg := range []string{
		"What is the price of bitcoin?",
		"precio de ethereum",
		"how much does one btc cost",
	} {
		cap, ok := Classify(msg)
		if !ok || cap != CapCryptoPrice {
			t.Fatalf("%q: expected crypto_price, got %v %v", msg, cap, ok)
		}
	}
}

func TestClassifyInfo(t *testing.T) {
	cap, ok := Classify("give me detailed info on Apple")
	if !ok || cap != CapStockInfo {
		t.Fatalf("expected stock_info, got %v %v", cap, ok)
	}
	cap, ok = Classify("what is the market cap of Tesla")
	if !ok || cap != CapStockInfo {
		t.Fatalf("expected stock_info for market cap, got %v %v", cap, ok)
	}
}

func TestClassifyHistory(t *testing.T) {
	// "yesterday" lands in the history stage unless price keywords fire first.
	cap, ok := Classify("show historical data of Netflix trend")
	if !ok || cap != CapHistory {
		t.Fatalf("expected historical_data, got %v %v", cap, ok)
	}
}

func TestClassifyPriceBeatsHistory(t *testing.T) {
	// Price patterns are a higher stage than history, so "price yesterday"
	// routes to price; with a crypto mention it routes to crypto.
	cap, ok := Classify("What was Bitcoin's price yesterday?")
	if !ok || cap != CapCryptoPrice {
		t.Fatalf("expected crypto_price, got %v %v", cap, ok)
	}
}

func TestClassifyAverage(t *testing.T) {
	cap, ok := Classify("average of Tesla stock")
	if !ok || cap != CapAverage {
		t.Fatalf("expected average_price, got %v %v", cap, ok)
	}
}

func TestClassifySearch(t *testing.T) {
	cap, ok := Classify("search for market commentary")
	if !ok || cap != CapWebSearch {
		t.Fatalf("expected web_search, got %v %v", cap, ok)
	}
}

func TestClassifySymbolFallback(t *testing.T) {
	cap, ok := Classify("NVDA")
	if !ok || cap != CapStockPrice {
		t.Fatalf("expected stock_price via symbol fallback, got %v %v", cap, ok)
	}
}

func TestClassifyNone(t *testing.T) {
	if _, ok := Classify("Tell me a joke"); ok {
		t.Fatalf("expected no match")
	}
}

func TestClassifyPure(t *testing.T) {
	msg := "What's the current price of Apple stock?"
	first, ok1 := Classify(msg)
	second, ok2 := Classify(msg)
	if ok1 != ok2 || first != second {
		t.Fatalf("classify not deterministic: %v/%v vs %v/%v", first, ok1, second, ok2)
	}
}
