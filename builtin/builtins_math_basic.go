package builtin

import (
	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/number"
	"github.com/cwbudde/goschem/value"
)

// numericOneArgument builds a unary numeric built-in: `name` must
// receive exactly one Number argument.
func numericOneArgument[R constraints.Float](name string, fn func(number.Number[R]) number.Number[R]) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) != 1 {
			return value.Value[R]{}, goerrors.NewLogic("%s takes exactly one argument", name)
		}
		n, ok := arguments[0].AsNumber()
		if !ok {
			return value.Value[R]{}, goerrors.NewLogic("%s requires a number, got %s", name, arguments[0].DebugString())
		}
		return value.Num(fn(n)), nil
	}
}

// numericOneArgumentErr is numericOneArgument for operations that can
// themselves fail (exact).
func numericOneArgumentErr[R constraints.Float](name string, fn func(number.Number[R]) (number.Number[R], error)) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) != 1 {
			return value.Value[R]{}, goerrors.NewLogic("%s takes exactly one argument", name)
		}
		n, ok := arguments[0].AsNumber()
		if !ok {
			return value.Value[R]{}, goerrors.NewLogic("%s requires a number, got %s", name, arguments[0].DebugString())
		}
		result, err := fn(n)
		if err != nil {
			return value.Value[R]{}, err
		}
		return value.Num(result), nil
	}
}

func sqrtBuiltin[R constraints.Float]() value.BuiltinFunc[R] {
	return numericOneArgument("sqrt", number.Sqrt[R])
}

func floorBuiltin[R constraints.Float]() value.BuiltinFunc[R] {
	return numericOneArgument("floor", number.Floor[R])
}

func ceilingBuiltin[R constraints.Float]() value.BuiltinFunc[R] {
	return numericOneArgument("ceiling", number.Ceiling[R])
}

func exactBuiltin[R constraints.Float]() value.BuiltinFunc[R] {
	return numericOneArgumentErr("exact", number.Exact[R])
}

// numericTwoArguments builds a binary numeric built-in that can fail
// (floor-quotient, floor-remainder: division by zero).
func numericTwoArguments[R constraints.Float](name string, fn func(a, b number.Number[R]) (number.Number[R], error)) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) != 2 {
			return value.Value[R]{}, goerrors.NewLogic("%s takes exactly two arguments", name)
		}
		a, ok := arguments[0].AsNumber()
		if !ok {
			return value.Value[R]{}, goerrors.NewLogic("expect a number!")
		}
		b, ok := arguments[1].AsNumber()
		if !ok {
			return value.Value[R]{}, goerrors.NewLogic("expect a number!")
		}
		result, err := fn(a, b)
		if err != nil {
			return value.Value[R]{}, err
		}
		return value.Num(result), nil
	}
}

func floorQuotientBuiltin[R constraints.Float]() value.BuiltinFunc[R] {
	return numericTwoArguments("floor-quotient", number.FloorQuotient[R])
}

func floorRemainderBuiltin[R constraints.Float]() value.BuiltinFunc[R] {
	return numericTwoArguments("floor-remainder", number.FloorRemainder[R])
}
