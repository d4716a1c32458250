// Package eval implements a small tree-walking evaluator so that
// cmd/goschem run produces real output end-to-end. The parser and
// built-in library are usable without it.
package eval

import (
	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/ast"
	"github.com/cwbudde/goschem/env"
	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/value"
)

// Eval evaluates one top-level statement against e, returning the
// resulting Value. Definitions and import declarations evaluate to
// Void.
func Eval[R constraints.Float](stmt ast.Statement, e env.Environment[R]) (value.Value[R], error) {
	if def, ok := ast.AsDefinition(stmt); ok {
		v, err := EvalExpr[R](def.Data.Value, e)
		if err != nil {
			return value.Value[R]{}, err
		}
		e.Define(def.Data.Name, v)
		return value.Void[R](), nil
	}
	if expr, ok := ast.AsExpression(stmt); ok {
		return EvalExpr[R](expr, e)
	}
	if _, ok := stmt.(*ast.ImportDeclaration); ok {
		// No module system: accepted and ignored.
		return value.Void[R](), nil
	}
	return value.Value[R]{}, goerrors.NewLogic("cannot evaluate statement")
}

// EvalExpr evaluates a single expression.
func EvalExpr[R constraints.Float](expr ast.Expression, e env.Environment[R]) (value.Value[R], error) {
	switch d := expr.Data.(type) {
	case ast.IntegerExpr, ast.RationalExpr, ast.RealExpr, ast.BooleanExpr, ast.CharacterExpr, ast.StringExpr:
		return value.QuoteToValue[R](expr)
	case ast.IdentifierExpr:
		v, err := e.Get(d.Name)
		if err != nil {
			return value.Value[R]{}, err
		}
		return v, nil
	case ast.QuoteExpr:
		return value.QuoteToValue[R](d.Datum)
	case ast.AssignmentExpr:
		v, err := EvalExpr[R](d.Value, e)
		if err != nil {
			return value.Value[R]{}, err
		}
		if err := e.Set(d.Name, v); err != nil {
			return value.Value[R]{}, err
		}
		return value.Void[R](), nil
	case ast.ConditionalExpr:
		test, err := EvalExpr[R](d.Test, e)
		if err != nil {
			return value.Value[R]{}, err
		}
		if isTruthy(test) {
			return EvalExpr[R](d.Consequent, e)
		}
		if d.Alternative != nil {
			return EvalExpr[R](*d.Alternative, e)
		}
		return value.Void[R](), nil
	case ast.ProcedureExpr:
		return value.Proc[R](value.NewCompound[R]("", d.Procedure.Formals, d.Procedure.Definitions, d.Procedure.Expressions, e)), nil
	case ast.ProcedureCallExpr:
		return evalCall[R](d, e)
	case ast.ListExpr, ast.VectorExpr:
		return value.QuoteToValue[R](expr)
	default:
		return value.Value[R]{}, goerrors.NewLogic("cannot evaluate %s", expr.Data)
	}
}

func isTruthy[R constraints.Float](v value.Value[R]) bool {
	b, ok := v.AsBoolean()
	return !ok || b // everything but #f is truthy
}

func evalCall[R constraints.Float](call ast.ProcedureCallExpr, e env.Environment[R]) (value.Value[R], error) {
	opVal, err := EvalExpr[R](call.Operator, e)
	if err != nil {
		return value.Value[R]{}, err
	}
	proc, ok := opVal.AsProcedure()
	if !ok {
		return value.Value[R]{}, goerrors.NewLogic("cannot apply a non-procedure: %s", opVal)
	}
	args := make([]value.Value[R], len(call.Arguments))
	for i, a := range call.Arguments {
		v, err := EvalExpr[R](a, e)
		if err != nil {
			return value.Value[R]{}, err
		}
		args[i] = v
	}
	return Apply[R](proc, args)
}

// Apply invokes a Builtin directly or binds a Compound's formals in a
// fresh child scope and evaluates its body.
func Apply[R constraints.Float](proc value.Procedure[R], args []value.Value[R]) (value.Value[R], error) {
	switch p := proc.(type) {
	case value.Builtin[R]:
		return p.Call(args)
	case value.Compound[R]:
		closure, ok := p.Env.(env.Environment[R])
		if !ok {
			return value.Value[R]{}, goerrors.NewLogic("invalid closure environment")
		}
		scope := closure.Child()
		formals := p.Formals_
		if len(args) < len(formals.Fixed) || (formals.Variadic == nil && len(args) != len(formals.Fixed)) {
			return value.Value[R]{}, goerrors.NewLogic("wrong number of arguments to procedure")
		}
		for i, name := range formals.Fixed {
			scope.Define(name, args[i])
		}
		if formals.Variadic != nil {
			// Rest arguments are bound as a Vector, not as a cons list.
			rest := args[len(formals.Fixed):]
			scope.Define(*formals.Variadic, value.Vector(rest))
		}
		for _, def := range p.Definitions {
			v, err := EvalExpr[R](def.Data.Value, scope)
			if err != nil {
				return value.Value[R]{}, err
			}
			scope.Define(def.Data.Name, v)
		}
		var result value.Value[R]
		for _, expr := range p.Expressions {
			v, err := EvalExpr[R](expr, scope)
			if err != nil {
				return value.Value[R]{}, err
			}
			result = v
		}
		return result, nil
	default:
		return value.Value[R]{}, goerrors.NewLogic("unknown procedure kind")
	}
}
