//go:build js && wasm

// Command cfgexplorer-wasm exposes the explorer to a browser page.
//
// The page calls createExplorer(canvasId, contextId) once the DOM is ready
// and drives the returned object from its own event listeners:
//
//	const res = createExplorer("cfg", "context");
//	if (!res.success) throw new Error(res.error);
//	const ex = res.explorer;
//	ex.load(await (await fetch("crate.json")).text());
//	window.addEventListener("keydown", e => { if (ex.handle_key(e.key)) e.preventDefault(); });
//	canvas.addEventListener("click", e => ex.handle_click(e.offsetX, e.offsetY));
package main

import (
	"os"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cfgexplorer/pkg/buildinfo"
	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/explorer"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "cfgexplorer", Level: log.InfoLevel})

	js.Global().Set("createExplorer", js.FuncOf(func(this js.Value, args []js.Value) any {
		return create(logger, args)
	}))
	js.Global().Set("cfgexplorerVersion", buildinfo.Version)
	logger.Info("wasm host ready", "version", buildinfo.Version)
	<-make(chan struct{})
}

func create(logger *log.Logger, args []js.Value) any {
	if len(args) < 2 {
		return failure(errors.New(errors.ErrCodeInitialization,
			"expected (canvasId: string, contextId: string)"))
	}

	doc := js.Global().Get("document")
	canvas, err := newCanvas(doc, args[0].String())
	if err != nil {
		return failure(err)
	}
	panel, err := newDOMPanel(doc, args[1].String())
	if err != nil {
		return failure(err)
	}

	ex, err := explorer.New(canvas, panel, explorer.WithLogger(logger))
	if err != nil {
		return failure(err)
	}
	return map[string]any{
		"success":  true,
		"explorer": bind(ex),
	}
}

func failure(err error) map[string]any {
	return map[string]any{
		"success": false,
		"code":    string(errors.GetCode(err)),
		"error":   errors.UserMessage(err),
	}
}

// =============================================================================
// Controller binding
// =============================================================================

// bind wraps every controller operation as a method on a plain JS object.
// Numeric arguments that are missing read as -1, which every navigation
// command treats as out of range.
func bind(ex *explorer.Explorer) map[string]any {
	return map[string]any{
		"load": fn(func(args []js.Value) any {
			if err := ex.Load([]byte(str(args, 0))); err != nil {
				return failure(err)
			}
			return map[string]any{"success": true}
		}),
		"function_count": fn(func([]js.Value) any { return ex.FunctionCount() }),
		"function_name": fn(func(args []js.Value) any {
			return optional(ex.FunctionName(num(args, 0)))
		}),
		"crate_name": fn(func([]js.Value) any { return optional(ex.CrateName()) }),

		"select_function":  fn(func(args []js.Value) any { ex.SelectFunction(num(args, 0)); return nil }),
		"go_to_block":      fn(func(args []js.Value) any { ex.GoToBlock(num(args, 0)); return nil }),
		"go_back":          fn(func([]js.Value) any { ex.GoBack(); return nil }),
		"reset":            fn(func([]js.Value) any { ex.Reset(); return nil }),
		"follow_edge":      fn(func(args []js.Value) any { ex.FollowEdge(num(args, 0)); return nil }),
		"select_next_edge": fn(func([]js.Value) any { ex.SelectNextEdge(); return nil }),
		"select_prev_edge": fn(func([]js.Value) any { ex.SelectPrevEdge(); return nil }),

		"handle_key": fn(func(args []js.Value) any {
			key := str(args, 0)
			if errors.ValidateKeyName(key) != nil {
				return false
			}
			return ex.HandleKey(key)
		}),
		"handle_wheel": fn(func(args []js.Value) any {
			ex.HandleWheel(float(args, 0), float(args, 1), float(args, 2))
			return nil
		}),
		"handle_drag": fn(func(args []js.Value) any {
			ex.HandleDrag(float(args, 0), float(args, 1))
			return nil
		}),
		"handle_click": fn(func(args []js.Value) any {
			return ex.HandleClick(float(args, 0), float(args, 1))
		}),
		"fit_to_view": fn(func([]js.Value) any { ex.FitToView(); return nil }),
		"render":      fn(func([]js.Value) any { ex.Render(); return nil }),

		"get_block_info_json": fn(func([]js.Value) any { return optional(ex.BlockInfoJSON()) }),
		"get_locals_json":     fn(func([]js.Value) any { return optional(ex.LocalsJSON()) }),
	}
}

func fn(f func(args []js.Value) any) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any { return f(args) })
}

// optional maps a missing value to JS null.
func optional(s string, ok bool) any {
	if !ok {
		return nil
	}
	return s
}

func str(args []js.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i].String()
}

func num(args []js.Value, i int) int {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return -1
	}
	return args[i].Int()
}

func float(args []js.Value, i int) float64 {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 0
	}
	return args[i].Float()
}
