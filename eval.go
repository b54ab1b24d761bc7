package calc

import "strconv"

// DefaultMaxDepth is the nesting limit of an evaluator created without the
// MaxDepth option.
const DefaultMaxDepth = 1024

// Evaluator evaluates expressions and remembers the result of the last one
// for use as _ in the next. It is not safe to use an Evaluator concurrently.
type Evaluator struct {
	prev    float64
	hasPrev bool
	report  func(Diagnostic)
	max     int
}

// Option is an option used when creating an evaluator.
type Option interface {
	evalOption()
}

type (
	reportopt func(Diagnostic)
	depthopt  int
	prevopt   float64
)

func (reportopt) evalOption() {}
func (depthopt) evalOption()  {}
func (prevopt) evalOption()   {}

// Report sets a function to receive diagnostics from every evaluation. The
// function is called synchronously during Calculate and Evaluate.
func Report(fn func(Diagnostic)) Option {
	return reportopt(fn)
}

// MaxDepth limits the nesting of expressions. Each operand and each
// subexpression counts toward the depth, so an expression in n parentheses
// needs a depth of about 2n. Panics if n is not positive.
func MaxDepth(n int) Option {
	if n <= 0 {
		panic("calc: max depth must be positive, not " + strconv.Itoa(n))
	}
	return depthopt(n)
}

// SetPrevious sets the initial previous result.
func SetPrevious(x float64) Option {
	return prevopt(x)
}

// NewEvaluator creates a new evaluator with no previous result.
func NewEvaluator(opts ...Option) *Evaluator {
	ev := Evaluator{max: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case reportopt:
			ev.report = opt
		case depthopt:
			ev.max = int(opt)
		case prevopt:
			ev.prev, ev.hasPrev = float64(opt), true
		default:
			panic("calc: unknown option type")
		}
	}
	return &ev
}

// Calculate evaluates an expression and returns its result. The result becomes
// the previous result for later calls, unless the input contains nothing to
// evaluate, in which case the result is 0. Calculate never fails; problems in
// the input give NaN or partial results as Evaluate describes.
func (ev *Evaluator) Calculate(s string) float64 {
	r, _ := ev.Evaluate(s)
	return r
}

// Evaluate is like Calculate but also returns the problems it found in the
// input, in the order found.
//
// An operand that is missing or replaced by an unexpected token is NaN. An
// unclosed parenthesis or an expression nested too deeply makes the whole
// result NaN. Using _ with no previous result gives 0. Tokens left over after
// a complete expression are ignored.
func (ev *Evaluator) Evaluate(s string) (float64, []InputError) {
	ev.emit(LevelInfo, "calculate "+strconv.Quote(s), nil)
	expr := Normalize(s)
	if expr == "" {
		return 0, ev.empty(s)
	}
	toks, lexerrs := tokenize(expr)
	p := newParser(ev, toks)
	for _, err := range lexerrs {
		p.report(err)
	}
	if ev.report != nil {
		ev.emit(LevelDebug, "tokens "+fmttoks(toks), nil)
	}
	if len(toks) == 0 {
		return 0, append(p.errs, ev.empty(s)...)
	}
	r := p.parse()
	ev.prev, ev.hasPrev = r, true
	ev.emit(LevelInfo, "result "+fmtnum(r), nil)
	return r, p.errs
}

// empty reports input with nothing to evaluate.
func (ev *Evaluator) empty(s string) []InputError {
	err := &EmptyExpressionError{Input: s}
	ev.emit(Severity(err), err.Error(), err)
	return []InputError{err}
}

// Previous returns the previous result and whether there is one.
func (ev *Evaluator) Previous() (float64, bool) {
	return ev.prev, ev.hasPrev
}

// Reset forgets the previous result.
func (ev *Evaluator) Reset() {
	ev.prev, ev.hasPrev = 0, false
}

// emit sends a diagnostic to the evaluator's reporter, if it has one.
func (ev *Evaluator) emit(lvl Level, msg string, err error) {
	if ev.report == nil {
		return
	}
	ev.report(Diagnostic{Level: lvl, Msg: msg, Err: err})
}

// Calculate is a shortcut to evaluate an expression with a new evaluator.
func Calculate(s string) float64 {
	return NewEvaluator().Calculate(s)
}

func fmttoks(toks []Token) string {
	b := []byte{'['}
	for i, tok := range toks {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, tok.Text...)
	}
	return string(append(b, ']'))
}
