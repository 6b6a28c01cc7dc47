// Package middleware provides composable wrappers around a document manager.
package middleware

import "github.com/stepbook/flownote/pkg/ports"

// Middleware allows wrapping a DocumentManager to add behavior.
type Middleware func(ports.DocumentManager) ports.DocumentManager

// Chain applies middlewares to a manager in order; the first listed is the
// outermost wrapper.
func Chain(manager ports.DocumentManager, middlewares ...Middleware) ports.DocumentManager {
	for i := len(middlewares) - 1; i >= 0; i-- {
		manager = middlewares[i](manager)
	}
	return manager
}
