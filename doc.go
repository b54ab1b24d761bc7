// Package calc implements a floating-point calculator with a memory of one.
//
// Expressions are the usual infix arithmetic on float64: "+", "-", "*", "/",
// and "^" for exponentiation, with unary "+" and "-", parentheses, decimal
// numbers, and the words "inf" and "nan". "^" is right-associative, so
// "2^3^2" is "2^(3^2)", and unary operators bind tighter than any binary
// operator, so "-5^2" is 25. Whitespace and case don't matter.
//
// An Evaluator remembers the result of each evaluation, and "_" in the next
// expression stands for it. Evaluation never fails. Division by zero gives an
// infinity or NaN, and malformed input gives NaN or a partial result along
// with diagnostics describing what was wrong.
package calc
