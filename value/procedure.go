package value

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/ast"
)

// BuiltinFunc is the Go shape of a pure built-in: it receives the
// already-evaluated argument sequence and returns a Value or a
// goerrors.SchemeError (via the error interface).
type BuiltinFunc[R constraints.Float] func(arguments []Value[R]) (Value[R], error)

// Procedure is the tagged union of callable values: Builtin wraps a Go
// function registered under a name, Compound is a user lambda closing
// over its defining environment. Env is declared as `any` here to
// avoid an import cycle with the env package, which depends on Value;
// callers type-assert it back to env.Environment[R].
type Procedure[R constraints.Float] interface {
	fmt.Stringer
	Name() string
	Formals() ast.ParameterFormals
	procedureNode()
}

// Builtin is a Procedure backed by a Go function.
type Builtin[R constraints.Float] struct {
	name    string
	formals ast.ParameterFormals
	impl    BuiltinFunc[R]
}

func NewBuiltin[R constraints.Float](name string, formals ast.ParameterFormals, impl BuiltinFunc[R]) Builtin[R] {
	return Builtin[R]{name: name, formals: formals, impl: impl}
}

func (b Builtin[R]) Name() string                 { return b.name }
func (b Builtin[R]) Formals() ast.ParameterFormals { return b.formals }
func (b Builtin[R]) String() string               { return fmt.Sprintf("#<builtin %s>", b.name) }
func (Builtin[R]) procedureNode()                  {}

// Call invokes the wrapped Go function.
func (b Builtin[R]) Call(arguments []Value[R]) (Value[R], error) {
	return b.impl(arguments)
}

// Compound is a user-defined lambda. Env is an opaque closure
// reference (the env package's Environment[R]); it is typed as `any`
// here purely to avoid a value<->env import cycle.
type Compound[R constraints.Float] struct {
	name        string
	Formals_    ast.ParameterFormals
	Definitions []ast.Definition
	Expressions []ast.Expression
	Env         any
}

func NewCompound[R constraints.Float](name string, formals ast.ParameterFormals, defs []ast.Definition, exprs []ast.Expression, env any) Compound[R] {
	return Compound[R]{name: name, Formals_: formals, Definitions: defs, Expressions: exprs, Env: env}
}

func (c Compound[R]) Name() string                 { return c.name }
func (c Compound[R]) Formals() ast.ParameterFormals { return c.Formals_ }
func (c Compound[R]) String() string               { return fmt.Sprintf("(lambda %s)", c.Formals_) }
func (Compound[R]) procedureNode()                  {}
