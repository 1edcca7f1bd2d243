// Package queuedrawcheck flags UI update patterns that deadlock tview or
// re-enter the image store.
package queuedrawcheck

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports two patterns:
//
//   - QueueUpdate or QueueUpdateDraw called inside another queued callback.
//     The outer callback runs on the event loop and the inner call waits for
//     that same loop.
//   - QueueUpdate, QueueUpdateDraw or a store action called directly inside
//     a Subscribe callback. Observers run synchronously in the notifier, so
//     the first blocks whenever the action came from the event loop and the
//     second notifies again from inside the notification.
var Analyzer = &analysis.Analyzer{
	Name: "queuedrawcheck",
	Doc:  "reports blocking UI updates and store actions inside queued and Subscribe callbacks",
	Run:  run,
}

var queueMethods = map[string]bool{
	"QueueUpdate":     true,
	"QueueUpdateDraw": true,
}

var storeActions = map[string]bool{
	"BeginLoad":        true,
	"ReceiveImages":    true,
	"ReceiveError":     true,
	"RemoveImagesByID": true,
	"Load":             true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || len(call.Args) == 0 {
				return true
			}

			fnLit, ok := call.Args[0].(*ast.FuncLit)
			if !ok {
				return true
			}

			switch name := methodName(call); {
			case queueMethods[name]:
				inspectCallback(fnLit, func(inner *ast.CallExpr, innerName string) {
					if queueMethods[innerName] {
						pass.Reportf(inner.Pos(), "nested %s inside %s callback can deadlock tview", innerName, name)
					}
				})
			case name == "Subscribe":
				inspectCallback(fnLit, func(inner *ast.CallExpr, innerName string) {
					switch {
					case queueMethods[innerName]:
						pass.Reportf(inner.Pos(), "%s inside a Subscribe callback blocks the notifier; hand the state off without waiting", innerName)
					case storeActions[innerName]:
						pass.Reportf(inner.Pos(), "store action %s inside a Subscribe callback re-enters notification", innerName)
					}
				})
			}

			return true
		})
	}

	return nil, nil
}

// inspectCallback calls report for every method call in fn's body. Nested
// function literals are skipped; they run in their own context (usually a
// goroutine) and are checked at their own call sites.
func inspectCallback(fn *ast.FuncLit, report func(call *ast.CallExpr, name string)) {
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}

		if call, ok := n.(*ast.CallExpr); ok {
			if name := methodName(call); name != "" {
				report(call, name)
			}
		}

		return true
	})
}

func methodName(call *ast.CallExpr) string {
	selector, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || selector.Sel == nil {
		return ""
	}

	return selector.Sel.Name
}
