//go:build wasm

package main

import (
	"encoding/json"

	"github.com/extism/go-pdk"
)

//export handle
func handle() int32 {
	out, err := calculate(pdk.Input())
	if err != nil {
		return outputError("invalid input: " + err.Error())
	}
	pdk.Output(out)
	return 0
}

func outputError(msg string) int32 {
	out, _ := json.Marshal(calcError{Error: msg})
	pdk.Output(out)
	return 1
}
