package mathexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Evaluator for a fixed arithmetic grammar. Supports numbers, + - * / %,
// parentheses, unary sign, the "N% of M" form, the constants pi and e,
// and a whitelisted function set. Nothing outside the grammar evaluates,
// so an imperfectly extracted substring can fail but never do harm.

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp    // + - * / %
	tokLParen
	tokRParen
	tokComma
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type parser struct {
	toks []token
	pos  int
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var unaryFuncs = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"log":   math.Log,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"round": math.Round,
}

// variadicFuncs need at least one argument.
var variadicFuncs = map[string]func([]float64) float64{
	"min": func(args []float64) float64 {
		v := args[0]
		for _, a := range args[1:] {
			v = math.Min(v, a)
		}
		return v
	},
	"max": func(args []float64) float64 {
		v := args[0]
		for _, a := range args[1:] {
			v = math.Max(v, a)
		}
		return v
	},
	"sum": func(args []float64) float64 {
		var v float64
		for _, a := range args {
			v += a
		}
		return v
	},
}

// Eval parses and evaluates expr.
func Eval(expr string) (float64, error) {
	toks, err := lex(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, fmt.Errorf("unexpected %q", p.peek().text)
	}
	return v, nil
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				j++
			}
			n, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", s[i:j])
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], num: n})
			i = j
		case unicode.IsLetter(c):
			j := i
			for j < len(s) && unicode.IsLetter(rune(s[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: strings.ToLower(s[i:j])})
			i = j
		case strings.ContainsRune("+-*/%", c):
			toks = append(toks, token{kind: tokOp, text: string(c)})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ","})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}
	toks = append(toks, token{kind: tokEOF, text: "end of expression"})
	return toks, nil
}

func (p *parser) peek() token     { return p.toks[p.pos] }
func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *parser) next() token { t := p.toks[p.pos]; p.pos++; return t }

// parseExpr handles the lowest-precedence "N% of M" form on top of the
// usual additive chain.
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return 0, err
	}
	if p.peek().kind == tokOp && p.peek().text == "%" &&
		p.peekAt(1).kind == tokIdent && p.peekAt(1).text == "of" {
		p.next() // %
		p.next() // of
		right, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		return left / 100 * right, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (float64, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return 0, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text
		right, err := p.parseMultiplicative()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for p.peek().kind == tokOp {
		op := p.peek().text
		if op != "*" && op != "/" && op != "%" {
			break
		}
		// "% of" belongs to parseExpr, not to modulo.
		if op == "%" && p.peekAt(1).kind == tokIdent && p.peekAt(1).text == "of" {
			break
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (float64, error) {
	if p.peek().kind == tokOp && (p.peek().text == "-" || p.peek().text == "+") {
		op := p.next().text
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "-" {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek().kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.next()
		return v, nil
	case tokIdent:
		if c, ok := constants[t.text]; ok {
			return c, nil
		}
		if p.peek().kind == tokLParen {
			return p.parseCall(t.text)
		}
		return 0, fmt.Errorf("unknown identifier %q", t.text)
	default:
		return 0, fmt.Errorf("unexpected %q", t.text)
	}
}

func (p *parser) parseCall(name string) (float64, error) {
	p.next() // (
	var args []float64
	if p.peek().kind != tokRParen {
		for {
			v, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			args = append(args, v)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if p.peek().kind != tokRParen {
		return 0, fmt.Errorf("missing closing parenthesis")
	}
	p.next()

	if f, ok := unaryFuncs[name]; ok {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s expects one argument", name)
		}
		return f(args[0]), nil
	}
	if f, ok := variadicFuncs[name]; ok {
		if len(args) == 0 {
			return 0, fmt.Errorf("%s expects at least one argument", name)
		}
		return f(args), nil
	}
	return 0, fmt.Errorf("unknown function %q", name)
}
