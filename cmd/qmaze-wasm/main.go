//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall/js"

	"qmaze/internal/engine"
	"qmaze/internal/mazefile"
)

var (
	registerOnce sync.Once
	handlerMu    sync.Mutex
	onCycle      js.Value
)

func main() {
	registerCallbacks()
	// Prevent the program from exiting.
	select {}
}

func registerCallbacks() {
	registerOnce.Do(func() {
		js.Global().Set("qmazeRegisterCycleHandler", js.FuncOf(registerCycleHandler))
		js.Global().Set("qmazeSolve", js.FuncOf(solve))
	})
}

func registerCycleHandler(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 || args[0].Type() != js.TypeFunction {
		fmt.Println("qmazeRegisterCycleHandler requires a function argument")
		return nil
	}
	handlerMu.Lock()
	onCycle = args[0]
	handlerMu.Unlock()
	return nil
}

// solve takes a maze JSON document and an optional trainer config JSON string.
func solve(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 || args[0].Type() != js.TypeString {
		return errorToJS(errors.New("qmazeSolve requires a maze JSON string"))
	}
	env, err := mazefile.Decode(strings.NewReader(args[0].String()), mazefile.FormatJSON)
	if err != nil {
		return errorToJS(err)
	}
	cfg := engine.DefaultConfig()
	if len(args) > 1 && args[1].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[1].String()), &cfg); err != nil {
			return errorToJS(fmt.Errorf("invalid config: %w", err))
		}
	}

	handlerMu.Lock()
	handler := onCycle
	handlerMu.Unlock()
	var opts []engine.SolveOption
	if handler.Type() == js.TypeFunction {
		opts = append(opts, engine.WithCycleObserver(func(report engine.CycleReport) {
			handler.Invoke(reportToJS(report))
		}))
	}

	result, err := engine.Solve(env, cfg, opts...)
	if result == nil {
		return errorToJS(err)
	}
	return resultToJS(result, err)
}

func reportToJS(report engine.CycleReport) js.Value {
	return js.ValueOf(map[string]interface{}{
		"cycle":     report.Cycle,
		"maxDelta":  report.MaxDelta,
		"meanValue": report.MeanValue,
	})
}

func resultToJS(result *engine.Result, err error) js.Value {
	path := make([]interface{}, len(result.Path))
	for i, a := range result.Path {
		path[i] = a.String()
	}
	values := result.Table.StateValues()
	valueMap := make([]interface{}, len(values))
	for i, row := range values {
		rowCopy := make([]interface{}, len(row))
		for j, v := range row {
			rowCopy[j] = v
		}
		valueMap[i] = rowCopy
	}
	payload := map[string]interface{}{
		"path":    path,
		"symbols": result.Path.String(),
		"steps":   len(result.Path),
		"reached": map[string]interface{}{
			"x": result.Reached.X,
			"y": result.Reached.Y,
		},
		"valueMap": valueMap,
		"cycles":   result.Config.Cycles,
		"error":    nil,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	return js.ValueOf(payload)
}

func errorToJS(err error) js.Value {
	return js.ValueOf(map[string]interface{}{
		"path":    []interface{}{},
		"symbols": "",
		"error":   err.Error(),
	})
}
