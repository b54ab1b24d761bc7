package calc

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the token's class.
	Kind TokenKind
	// Text is the token as it appears in the input. For operators it is the
	// single operator rune.
	Text string
	// Num is the value of a TokenNum.
	Num float64
	// Pos is the column of the token's first rune, counting from 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the class of a token.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenNum is a decimal literal, inf, or nan.
	TokenNum
	// TokenOp is one of the binary or unary operators.
	TokenOp
	// TokenLParen is an open parenthesis.
	TokenLParen
	// TokenRParen is a close parenthesis.
	TokenRParen
	// TokenPrev is the previous result placeholder, _.
	TokenPrev
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token
//go:generate go mod tidy

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// Normalize removes all whitespace from s and folds it to lower case. Calls
// to Evaluator.Calculate normalize their input before tokenizing it.
func Normalize(s string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

// Tokenize splits a normalized expression into tokens. Input that doesn't
// form any token is dropped. The result is empty if nothing is recognized.
func Tokenize(expr string) []Token {
	toks, _ := tokenize(expr)
	return toks
}

// tokenize scans all tokens from expr along with an error for each run of
// dropped input.
func tokenize(expr string) ([]Token, []*LexError) {
	var (
		toks []Token
		errs []*LexError
	)
	scan := lex(expr)
	for {
		tok, err := scan.next()
		switch {
		case err == io.EOF:
			return toks, errs
		case err != nil:
			errs = append(errs, err.(*LexError))
		default:
			toks = append(toks, tok)
		}
	}
}

type lexer struct {
	src string
	// off is the byte offset of the next rune in src.
	off int
	// col is the column of the next rune in src.
	col int
}

func lex(src string) *lexer {
	return &lexer{src: src, col: 1}
}

// next scans the next token from the input. When the next runes do not begin
// any token, the result is an empty token with a *LexError covering the whole
// run of them. At the end of input, the error is io.EOF.
func (l *lexer) next() (Token, error) {
	if l.off >= len(l.src) {
		return Token{}, io.EOF
	}
	start, col := l.off, l.col
	if tok, ok := l.scan(); ok {
		return tok, nil
	}
	for l.off < len(l.src) {
		// Peek by scanning from a copy so that a recognized token stays unread.
		m := *l
		if _, ok := m.scan(); ok {
			break
		}
		l.off, l.col = m.off, m.col
	}
	return Token{}, &LexError{Text: l.src[start:l.off], Col: col}
}

// scan tries to scan a single token at the current position. If there is
// none, then scan consumes exactly one rune and reports false.
func (l *lexer) scan() (Token, bool) {
	tok := Token{Pos: l.col}
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	switch {
	case '0' <= r && r <= '9':
		return l.scanNum(tok), true
	case r == '.':
		if l.off+1 < len(l.src) && isDigit(l.src[l.off+1]) {
			return l.scanNum(tok), true
		}
	case r == '_':
		tok.Kind = TokenPrev
	case r == '(':
		tok.Kind = TokenLParen
	case r == ')':
		tok.Kind = TokenRParen
	case strings.ContainsRune(Operators, r):
		tok.Kind = TokenOp
	case r == 'i', r == 'I':
		if l.word("inf") {
			tok.Kind, tok.Text, tok.Num = TokenNum, "inf", inf
			return tok, true
		}
	case r == 'n', r == 'N':
		if l.word("nan") {
			tok.Kind, tok.Text, tok.Num = TokenNum, "nan", nan
			return tok, true
		}
	}
	l.off += sz
	l.col++
	if tok.Kind == TokenNone {
		return tok, false
	}
	tok.Text = string(r)
	return tok, true
}

// scanNum scans a decimal literal: digits with an optional fraction, or a
// fraction alone.
func (l *lexer) scanNum(tok Token) Token {
	start := l.off
	l.digits()
	if l.off < len(l.src) && l.src[l.off] == '.' {
		l.off++
		l.col++
		l.digits()
	}
	tok.Kind = TokenNum
	tok.Text = l.src[start:l.off]
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		// ParseFloat still returns ±Inf for out of range literals. Any other
		// error means scanNum accepted something it shouldn't have.
		if ne, _ := err.(*strconv.NumError); ne == nil || ne.Err != strconv.ErrRange {
			panic("calc: invalid number: " + tok.Text + " (" + err.Error() + ")")
		}
	}
	tok.Num = v
	return tok
}

func (l *lexer) digits() {
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
		l.col++
	}
}

// word consumes w if the input continues with it in any case.
func (l *lexer) word(w string) bool {
	if len(l.src)-l.off < len(w) || !strings.EqualFold(l.src[l.off:l.off+len(w)], w) {
		return false
	}
	l.off += len(w)
	l.col += len(w)
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
