package calc

import "strconv"

// expression = primary { op expression }
// primary = '+' primary | '-' primary | '(' expression ')' | '_' | num
//
// An operator continues an expression when its precedence is at least the
// expression's minimum. The right operand of ^ is parsed at the precedence of
// ^ itself, making it right-associative; the right operand of any other
// operator is parsed at one more, making it left-associative.

// parser evaluates a token sequence directly while parsing it. Nothing in the
// parser fails: each problem is recorded and replaced by a value.
type parser struct {
	toks []Token
	// i is the index of the next unconsumed token.
	i int
	// end is the column just past the last token.
	end int

	ev *Evaluator
	// depth is the current nesting depth, limited to max.
	depth, max int
	// abort is the error that ended the parse early, if any. Once it is set,
	// every parse function returns NaN without consuming tokens.
	abort InputError
	// errs is the list of problems found so far.
	errs []InputError
}

func newParser(ev *Evaluator, toks []Token) *parser {
	end := 1
	if len(toks) != 0 {
		last := toks[len(toks)-1]
		end = last.Pos + len(last.Text)
	}
	lim := ev.max
	if lim == 0 {
		lim = DefaultMaxDepth
	}
	return &parser{toks: toks, end: end, ev: ev, max: lim}
}

// parse evaluates the entire token sequence.
func (p *parser) parse() float64 {
	r := p.parseExpr(exprprec)
	if p.abort != nil {
		return nan
	}
	if p.i < len(p.toks) {
		rest := append([]Token(nil), p.toks[p.i:]...)
		p.report(&TrailingError{Col: rest[0].Pos, Tokens: rest})
	}
	return r
}

// parseExpr parses and evaluates an expression whose operators all have at
// least the given precedence.
func (p *parser) parseExpr(min int8) float64 {
	if !p.enter() {
		return nan
	}
	defer p.leave()
	lhs := p.parsePrimary()
	for p.abort == nil && p.i < len(p.toks) {
		tok := p.toks[p.i]
		if tok.Kind != TokenOp {
			break
		}
		op := binop(tok.Text)
		if !op.binds(min) {
			break
		}
		p.i++
		rhs := p.parseExpr(op.next())
		if p.abort != nil {
			return nan
		}
		lhs = p.apply(tok, lhs, rhs)
	}
	return lhs
}

// parsePrimary parses and evaluates a single operand, including any unary
// operators before it.
func (p *parser) parsePrimary() float64 {
	if p.i >= len(p.toks) {
		p.report(&EndError{Col: p.end})
		return nan
	}
	if !p.enter() {
		return nan
	}
	defer p.leave()
	tok := p.toks[p.i]
	p.i++
	switch tok.Kind {
	case TokenNum:
		return tok.Num
	case TokenOp:
		switch tok.Text {
		case "+":
			return p.parsePrimary()
		case "-":
			return -p.parsePrimary()
		}
	case TokenLParen:
		r := p.parseExpr(exprprec)
		if p.abort != nil {
			return nan
		}
		if p.i < len(p.toks) && p.toks[p.i].Kind == TokenRParen {
			p.i++
			return r
		}
		p.fail(&BracketError{Col: tok.Pos})
		return nan
	case TokenPrev:
		if !p.ev.hasPrev {
			p.report(&PreviousError{Col: tok.Pos})
			return 0
		}
		return p.ev.prev
	case TokenRParen:
		// handled below
	default:
		panic("calc: unknown token: " + tok.String())
	}
	p.report(&TokenError{Col: tok.Pos, Token: tok.Text})
	return nan
}

// apply applies the binary operator in tok.
func (p *parser) apply(tok Token, l, r float64) float64 {
	v, ok := apply(tok.Text[0], l, r)
	if !ok {
		p.report(&OperatorError{Col: tok.Pos, Operator: tok.Text})
		return v
	}
	if p.ev.report != nil {
		p.ev.emit(LevelDebug, "apply "+fmtnum(l)+" "+tok.Text+" "+fmtnum(r)+" = "+fmtnum(v), nil)
	}
	return v
}

// enter increases the nesting depth. If that exceeds the evaluator's limit,
// then the parse aborts and enter returns false.
func (p *parser) enter() bool {
	if p.abort != nil {
		return false
	}
	p.depth++
	if p.depth > p.max {
		p.depth--
		col := p.end
		if p.i < len(p.toks) {
			col = p.toks[p.i].Pos
		}
		p.fail(&DepthError{Col: col, Max: p.max})
		return false
	}
	return true
}

func (p *parser) leave() {
	p.depth--
}

// report records a problem that the parser recovers from.
func (p *parser) report(err InputError) {
	p.errs = append(p.errs, err)
	p.ev.emit(Severity(err), err.Error(), err)
}

// fail records a problem that ends the parse.
func (p *parser) fail(err InputError) {
	p.abort = err
	p.report(err)
}

// fmtnum formats a number the way diagnostics show it.
func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
