package usecase

import (
	"context"
	"strconv"
	"time"

	drepo "MarketChat/internal/domain/repository"
	"MarketChat/internal/services/intent"
	"MarketChat/internal/services/mathexpr"
	"MarketChat/pkg/logger"
)

// Prompts returned when a matched capability is missing its argument.
// Kept verbatim from the product copy.
const (
	promptSymbolOrCrypto = "Por favor especifica el símbolo de la acción o criptomoneda (ej: Apple, Tesla, Bitcoin, AAPL, TSLA)"
	promptSymbol         = "Por favor especifica el símbolo de la acción (ej: Apple, Tesla, AAPL, TSLA)"
	promptExpression     = "Por favor proporciona una expresión matemática válida (ej: 2+2, 15% of 250)"
)

// ChatAgent routes one message to a capability and renders the reply.
// It never returns an error: anything that goes wrong becomes text, so
// the conversation surface stays total.
type ChatAgent struct {
	tools   *MarketTools
	llm     drepo.Completer
	metrics drepo.Metrics
	log     *logger.Logger

	historyPeriod drepo.Period
	averageDays   int
}

// NewChatAgent creates the orchestrator. historyPeriod and averageDays
// are the fixed argument defaults (there is no NL duration parsing).
func NewChatAgent(
	tools *MarketTools,
	llm drepo.Completer,
	metrics drepo.Metrics,
	log *logger.Logger,
	historyPeriod string,
	averageDays int,
) *ChatAgent {
	if averageDays <= 0 {
		averageDays = 7
	}
	return &ChatAgent{
		tools:         tools,
		llm:           llm,
		metrics:       metrics,
		log:           log,
		historyPeriod: drepo.NormalizePeriod(historyPeriod),
		averageDays:   averageDays,
	}
}

// Chat processes one user message and returns the reply plus the label
// of the capability that produced it ("llm" when none matched).
func (a *ChatAgent) Chat(ctx context.Context, message string) (reply, capability string) {
	start := time.Now()
	defer func() {
		a.metrics.RecordChatLatency(time.Since(start).Seconds())
	}()

	c, ok := intent.Classify(message)
	if !ok {
		return a.completeFallback(ctx, message), "llm"
	}

	a.metrics.RecordInvocation(c.String())
	a.log.Debug("capability matched", logger.String("capability", c.String()))

	switch c.Arity() {
	case intent.AritySymbol:
		symbol, ok := intent.ResolveSymbol(message)
		if !ok {
			return promptSymbolOrCrypto, c.String()
		}
		switch c {
		case intent.CapStockInfo:
			return a.tools.StockInfo(ctx, symbol), c.String()
		case intent.CapCryptoPrice:
			return a.tools.CryptoPrice(ctx, symbol), c.String()
		default:
			return a.tools.StockPrice(ctx, symbol), c.String()
		}

	case intent.AritySymbolPeriod:
		symbol, ok := intent.ResolveSymbol(message)
		if !ok {
			return promptSymbol, c.String()
		}
		return a.tools.HistoricalData(ctx, symbol, a.historyPeriod), c.String()

	case intent.AritySymbolWindow:
		symbol, ok := intent.ResolveSymbol(message)
		if !ok {
			return promptSymbol, c.String()
		}
		return a.tools.AveragePrice(ctx, symbol, a.averageDays), c.String()

	case intent.ArityFreeText:
		return a.tools.WebSearch(ctx, message), c.String()

	default: // ArityExpression
		expr, ok := intent.ExtractExpression(message)
		if !ok {
			return promptExpression, c.String()
		}
		return calculate(expr), c.String()
	}
}

func calculate(expr string) string {
	v, err := mathexpr.Eval(expr)
	if err != nil {
		return "Error in calculation: " + err.Error()
	}
	return "Result: " + strconv.FormatFloat(v, 'g', -1, 64)
}

// completeFallback hands an unmatched message to the hosted model
// verbatim. Its failure is the one error the user sees undecorated.
func (a *ChatAgent) completeFallback(ctx context.Context, message string) string {
	out, err := a.llm.Complete(ctx, message)
	if err != nil {
		a.metrics.RecordProviderError("groq", "completion")
		a.log.Warn("completion failed", logger.Error(err))
		return "Error processing your request: " + err.Error()
	}
	return out
}
