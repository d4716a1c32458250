// Package env implements the lexically-nested binding store consumed
// by procedures: define, set, get and child scope creation.
package env

import (
	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/value"
)

// Environment is the contract built-ins and the evaluator depend on.
// MapEnvironment is the one standard implementation this module ships.
type Environment[R constraints.Float] interface {
	Define(name string, v value.Value[R])
	Set(name string, v value.Value[R]) error
	Get(name string) (value.Value[R], error)
	Child() Environment[R]
}

// MapEnvironment is a map-backed Environment with a pointer to its
// enclosing scope, giving standard lexical shadowing: Get/Set walk
// outward through Parent until a binding is found.
type MapEnvironment[R constraints.Float] struct {
	bindings map[string]value.Value[R]
	parent   *MapEnvironment[R]
}

// NewStandardEnv builds a fresh top-level environment with no parent.
func NewStandardEnv[R constraints.Float]() *MapEnvironment[R] {
	return &MapEnvironment[R]{bindings: make(map[string]value.Value[R])}
}

// Define introduces or rebinds name in this scope only (shadowing any
// binding of the same name in an enclosing scope).
func (e *MapEnvironment[R]) Define(name string, v value.Value[R]) {
	e.bindings[name] = v
}

// Set mutates an existing binding, searching outward through enclosing
// scopes; it fails if name is unbound anywhere in the chain.
func (e *MapEnvironment[R]) Set(name string, v value.Value[R]) error {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.bindings[name]; ok {
			scope.bindings[name] = v
			return nil
		}
	}
	return goerrors.NewLogic("unbound variable: %s", name)
}

// Get looks up name, searching outward through enclosing scopes.
func (e *MapEnvironment[R]) Get(name string) (value.Value[R], error) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.bindings[name]; ok {
			return v, nil
		}
	}
	return value.Value[R]{}, goerrors.NewLogic("unbound variable: %s", name)
}

// Child creates a new nested scope whose enclosing scope is e.
func (e *MapEnvironment[R]) Child() Environment[R] {
	return &MapEnvironment[R]{bindings: make(map[string]value.Value[R]), parent: e}
}
