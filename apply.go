package calc

import "math"

var (
	inf = math.Inf(1)
	nan = math.NaN()
)

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator rune, or 0 if there is no such operator.
	op byte
}

// binds reports whether p is binding enough to continue an expression parsed
// at minimum precedence min.
func (p operator) binds(min int8) bool {
	return p.op != 0 && p.prec >= min
}

// next is the minimum precedence for parsing the right operand of p.
func (p operator) next() int8 {
	if p.right {
		return p.prec
	}
	return p.prec + 1
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of 0.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, '+'}
	case "-":
		return operator{1, false, '-'}
	case "*":
		return operator{2, false, '*'}
	case "/":
		return operator{2, false, '/'}
	case "^":
		return operator{3, true, '^'}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
const exprprec int8 = 1

// apply computes l op r. The second result is false if op has no application,
// in which case the value is NaN.
func apply(op byte, l, r float64) (float64, bool) {
	switch op {
	case '+':
		return l + r, true
	case '-':
		return l - r, true
	case '*':
		return l * r, true
	case '/':
		if r != 0 {
			return l / r, true
		}
		// Division by zero is decided by the sign of the dividend alone, so
		// that the sign of a zero divisor doesn't matter.
		switch {
		case l > 0:
			return inf, true
		case l < 0:
			return -inf, true
		default:
			return nan, true
		}
	case '^':
		if l == 0 && r < 0 {
			return inf, true
		}
		v := math.Pow(l, r)
		// A finite power too large for float64 has no value, not an infinite one.
		if math.IsInf(v, 0) && !math.IsInf(l, 0) && !math.IsInf(r, 0) {
			return nan, true
		}
		return v, true
	default:
		return nan, false
	}
}
