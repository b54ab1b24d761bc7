package calc

import (
	"strconv"
	"strings"
)

// Level is the importance of a diagnostic. The values match those of
// log/slog so that a Level converts directly to a slog.Level.
type Level int8

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// Diagnostic is a record of something that happened during an evaluation.
type Diagnostic struct {
	Level Level
	// Msg is a short description of the event. For a degradation it is the
	// error text.
	Msg string
	// Err is the condition that degraded the result, if any. It is always an
	// InputError when non-nil.
	Err error
}

// InputError is a condition with position information that degraded the
// result of an evaluation. None of them stop Calculate from returning a
// number; they describe why that number may not be what the input meant.
type InputError interface {
	error
	// Pos returns the column of the start of the input that caused the
	// condition, counting runes of the normalized input from 1.
	Pos() int
}

// Severity returns the level at which an evaluator reports err.
func Severity(err error) Level {
	switch err.(type) {
	case *LexError, *PreviousError, *TrailingError, *EmptyExpressionError:
		return LevelWarn
	default:
		return LevelError
	}
}

// LexError indicates input that forms no token. The tokenizer drops it.
type LexError struct {
	// Text is the dropped input.
	Text string
	// Col is the column of the first dropped rune.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "ignored input "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// TokenError indicates a token where an operand was expected. The operand
// evaluates to NaN.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the token's text.
	Token string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// BracketError indicates an open parenthesis with no matching close. The
// whole evaluation results in NaN.
type BracketError struct {
	// Col is the position of the open parenthesis.
	Col int
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "open bracket ( with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EndError indicates that the input ended where an operand was expected. The
// operand evaluates to NaN.
type EndError struct {
	// Col is the position just past the last token.
	Col int
}

func (err *EndError) Error() string {
	return errpos(err.Col, "unexpected end of expression")
}

func (err *EndError) Pos() int {
	return err.Col
}

// PreviousError indicates a use of _ before any result exists. It evaluates
// to 0.
type PreviousError struct {
	Col int
}

func (err *PreviousError) Error() string {
	return errpos(err.Col, "no previous result")
}

func (err *PreviousError) Pos() int {
	return err.Col
}

// TrailingError indicates tokens left over after a complete expression. The
// result of the expression before them is kept.
type TrailingError struct {
	// Col is the position of the first leftover token.
	Col int
	// Tokens is the leftover tokens.
	Tokens []Token
}

func (err *TrailingError) Error() string {
	v := make([]string, len(err.Tokens))
	for i, tok := range err.Tokens {
		v[i] = tok.Text
	}
	return errpos(err.Col, "ignored tokens "+strconv.Quote(strings.Join(v, " ")))
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// EmptyExpressionError indicates input with nothing to evaluate. The result is
// 0 and the previous result is unchanged.
type EmptyExpressionError struct {
	// Input is the raw input, which may contain only whitespace or dropped
	// runes.
	Input string
}

func (err *EmptyExpressionError) Error() string {
	if strings.TrimSpace(err.Input) == "" {
		return errpos(1, "no expression")
	}
	return errpos(1, "no tokens in "+strconv.Quote(err.Input))
}

func (err *EmptyExpressionError) Pos() int {
	return 1
}

// DepthError indicates an expression nested more deeply than the evaluator
// allows. The whole evaluation results in NaN.
type DepthError struct {
	// Col is the position of the token at which the limit was exceeded.
	Col int
	// Max is the evaluator's depth limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression too complex: nesting exceeds "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// OperatorError indicates an operator with no defined application. The
// application evaluates to NaN.
type OperatorError struct {
	Col      int
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EndError)(nil)
	_ InputError = (*PreviousError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*OperatorError)(nil)
)
