// Package js exposes a document to scripts through the goja JavaScript
// engine (pure Go ES5.1+ implementation).
package js

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dop251/goja"

	"github.com/lacewing/lacewing/css"
	"github.com/lacewing/lacewing/dom"
)

// Engine wraps a goja runtime bound to one document. All document
// access from script goes through the engine; the engine is not safe
// for concurrent use.
type Engine struct {
	vm  *goja.Runtime
	doc *dom.Document
	out io.Writer

	// Wrapper objects are minted once per handle so scripts can compare
	// nodes with ===.
	wrappers map[dom.NodeHandle]*goja.Object
	handles  map[*goja.Object]dom.NodeHandle
}

// NewEngine creates an engine bound to doc, with console output going
// to stdout.
func NewEngine(doc *dom.Document) *Engine {
	e := &Engine{
		vm:       goja.New(),
		doc:      doc,
		out:      os.Stdout,
		wrappers: make(map[dom.NodeHandle]*goja.Object),
		handles:  make(map[*goja.Object]dom.NodeHandle),
	}
	e.setupConsole()
	e.setupDocument()
	return e
}

// SetOutput redirects console output, primarily for tests.
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Execute runs a script and returns its completion value.
func (e *Engine) Execute(src string) (result goja.Value, err error) {
	// Recover from panics in the goja parser/runtime.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
		}
	}()
	return e.vm.RunString(src)
}

func (e *Engine) setupConsole() {
	console := e.vm.NewObject()
	write := func(level string) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, a := range call.Arguments {
				parts[i] = a.String()
			}
			if level == "" {
				fmt.Fprintln(e.out, strings.Join(parts, " "))
			} else {
				fmt.Fprintln(e.out, level+": "+strings.Join(parts, " "))
			}
			return goja.Undefined()
		}
	}
	console.Set("log", write(""))
	console.Set("warn", write("warn"))
	console.Set("error", write("error"))
	e.vm.Set("console", console)
}

func (e *Engine) setupDocument() {
	document := e.vm.NewObject()

	document.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return e.wrap(e.doc.ElementByID(call.Argument(0).String()))
	})

	document.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		list := css.ParseSelectorList(call.Argument(0).String())
		if len(list) == 0 {
			return goja.Null()
		}
		return e.wrap(e.firstMatch(list))
	})

	document.Set("createElement", func(call goja.FunctionCall) goja.Value {
		h := e.doc.Insert(dom.NewElement(call.Argument(0).String()))
		return e.wrap(h)
	})

	document.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		parent, ok1 := e.handleOf(call.Argument(0))
		child, ok2 := e.handleOf(call.Argument(1))
		if ok1 && ok2 {
			e.doc.AppendChild(parent, child)
		}
		return goja.Undefined()
	})

	document.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		parent, ok1 := e.handleOf(call.Argument(0))
		child, ok2 := e.handleOf(call.Argument(1))
		if ok1 && ok2 {
			e.doc.RemoveChild(parent, child)
		}
		return goja.Undefined()
	})

	document.Set("removeNode", func(call goja.FunctionCall) goja.Value {
		if h, ok := e.handleOf(call.Argument(0)); ok {
			e.doc.Remove(h)
		}
		return goja.Undefined()
	})

	e.vm.Set("document", document)
}

// firstMatch returns the first element in document order matching any
// selector alternative, or the zero handle.
func (e *Engine) firstMatch(list []*css.ComplexSelector) dom.NodeHandle {
	var walk func(h dom.NodeHandle) dom.NodeHandle
	walk = func(h dom.NodeHandle) dom.NodeHandle {
		for _, sel := range list {
			if css.Matches(sel, h, e.doc) {
				return h
			}
		}
		for c := e.doc.FirstChildOf(h); !c.IsZero(); c = e.doc.NextSiblingOf(c) {
			if found := walk(c); !found.IsZero() {
				return found
			}
		}
		return dom.NodeHandle{}
	}
	return walk(e.doc.Root())
}

// wrap returns the script-facing object for a handle, minting it on
// first use. Dead or zero handles wrap to null.
func (e *Engine) wrap(h dom.NodeHandle) goja.Value {
	n := e.doc.Node(h)
	if n == nil {
		return goja.Null()
	}
	if obj, ok := e.wrappers[h]; ok {
		return obj
	}

	obj := e.vm.NewObject()
	obj.Set("tagName", n.Tag)

	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if v, ok := e.doc.GetAttribute(h, call.Argument(0).String()); ok {
			return e.vm.ToValue(v)
		}
		return goja.Null()
	})
	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		e.doc.SetAttribute(h, call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		e.doc.RemoveAttribute(h, call.Argument(0).String())
		return goja.Undefined()
	})
	obj.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		if child, ok := e.handleOf(call.Argument(0)); ok {
			e.doc.AppendChild(h, child)
		}
		return goja.Undefined()
	})
	obj.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		if child, ok := e.handleOf(call.Argument(0)); ok {
			e.doc.RemoveChild(h, child)
		}
		return goja.Undefined()
	})

	e.wrappers[h] = obj
	e.handles[obj] = h
	return obj
}

// handleOf recovers the handle behind a wrapper object passed back in
// from script. Only engine-minted wrappers resolve.
func (e *Engine) handleOf(v goja.Value) (dom.NodeHandle, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return dom.NodeHandle{}, false
	}
	h, ok := e.handles[obj]
	return h, ok
}
