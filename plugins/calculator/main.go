// Command calculator is an extism plugin that evaluates arithmetic
// expressions.
//
// Input is {"expression": "2*_", "previous": 21}, with previous optional.
// Output is {"result": 42, "warnings": []}. JSON has no infinities or NaN, so
// those results are the strings "inf", "-inf", and "nan".
package main

import (
	"encoding/json"
	"math"

	"github.com/zephyrtronium/calc"
)

type calcInput struct {
	Expression string   `json:"expression"`
	Previous   *float64 `json:"previous,omitempty"`
}

type calcOutput struct {
	Result   any      `json:"result"`
	Warnings []string `json:"warnings"`
}

type calcError struct {
	Error string `json:"error"`
}

// calculate evaluates a request. It fails only when the input is not a
// valid request.
func calculate(input []byte) ([]byte, error) {
	var req calcInput
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, err
	}
	var opts []calc.Option
	if req.Previous != nil {
		opts = append(opts, calc.SetPrevious(*req.Previous))
	}
	r, errs := calc.NewEvaluator(opts...).Evaluate(req.Expression)
	out := calcOutput{Result: jsonNumber(r), Warnings: []string{}}
	for _, err := range errs {
		out.Warnings = append(out.Warnings, err.Error())
	}
	return json.Marshal(out)
}

func jsonNumber(x float64) any {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return x
}

func main() {}
