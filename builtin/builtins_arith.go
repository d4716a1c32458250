// Package builtin implements the "base" built-in procedure library:
// arithmetic, comparison, vector access and I/O primitives, each a
// pure function from an already-evaluated argument slice to a Value.
package builtin

import (
	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/number"
	"github.com/cwbudde/goschem/value"
)

func numberArg[R constraints.Float](v value.Value[R]) (number.Number[R], error) {
	n, ok := v.AsNumber()
	if !ok {
		return number.Number[R]{}, goerrors.NewLogic("expect a number, got %s", v)
	}
	return n, nil
}

// add implements variadic `+`, folding from Integer(0).
func add[R constraints.Float](arguments []value.Value[R]) (value.Value[R], error) {
	acc := number.Int[R](0)
	for _, arg := range arguments {
		n, err := numberArg(arg)
		if err != nil {
			return value.Value[R]{}, err
		}
		acc = number.Add(acc, n)
	}
	return value.Num(acc), nil
}

// sub implements `-`: unary negation with one argument, left-fold
// subtraction with two or more.
func sub[R constraints.Float](arguments []value.Value[R]) (value.Value[R], error) {
	if len(arguments) == 0 {
		return value.Value[R]{}, goerrors.NewLogic("'-' needs at least one argument")
	}
	first, err := numberArg(arguments[0])
	if err != nil {
		return value.Value[R]{}, err
	}
	if len(arguments) == 1 {
		return value.Num(number.Neg(first)), nil
	}
	acc := first
	for _, arg := range arguments[1:] {
		n, err := numberArg(arg)
		if err != nil {
			return value.Value[R]{}, err
		}
		acc = number.Sub(acc, n)
	}
	return value.Num(acc), nil
}

// mul implements variadic `*`, folding from Integer(1).
func mul[R constraints.Float](arguments []value.Value[R]) (value.Value[R], error) {
	acc := number.Int[R](1)
	for _, arg := range arguments {
		n, err := numberArg(arg)
		if err != nil {
			return value.Value[R]{}, err
		}
		acc = number.Mul(acc, n)
	}
	return value.Num(acc), nil
}

// div implements `/`: reciprocal with one argument, left-fold division
// with two or more.
func div[R constraints.Float](arguments []value.Value[R]) (value.Value[R], error) {
	if len(arguments) == 0 {
		return value.Value[R]{}, goerrors.NewLogic("'/' needs at least one argument")
	}
	first, err := numberArg(arguments[0])
	if err != nil {
		return value.Value[R]{}, err
	}
	if len(arguments) == 1 {
		result, err := number.Div(number.Int[R](1), first)
		if err != nil {
			return value.Value[R]{}, err
		}
		return value.Num(result), nil
	}
	acc := first
	for _, arg := range arguments[1:] {
		n, err := numberArg(arg)
		if err != nil {
			return value.Value[R]{}, err
		}
		acc, err = number.Div(acc, n)
		if err != nil {
			return value.Value[R]{}, err
		}
	}
	return value.Num(acc), nil
}
