package builtin

import (
	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/number"
	"github.com/cwbudde/goschem/value"
)

// comparison builds a chained comparison predicate (`=`, `<`, `<=`,
// `>`, `>=`): vacuously true on 0 or 1 arguments, otherwise every
// adjacent pair must satisfy pred.
func comparison[R constraints.Float](name string, pred func(a, b number.Number[R]) bool) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) == 0 {
			return value.Bool[R](true), nil
		}
		last, err := numberArg(arguments[0])
		if err != nil {
			return value.Value[R]{}, goerrors.NewLogic("%s comparision can only between numbers!", name)
		}
		for _, arg := range arguments[1:] {
			current, err := numberArg(arg)
			if err != nil {
				return value.Value[R]{}, goerrors.NewLogic("%s comparision can only between numbers!", name)
			}
			if !pred(last, current) {
				return value.Bool[R](false), nil
			}
			last = current
		}
		return value.Bool[R](true), nil
	}
}

func equalsBuiltin[R constraints.Float]() value.BuiltinFunc[R]       { return comparison("==", number.Eq[R]) }
func lessBuiltin[R constraints.Float]() value.BuiltinFunc[R]         { return comparison("<", number.Less[R]) }
func lessEqualBuiltin[R constraints.Float]() value.BuiltinFunc[R]    { return comparison("<=", number.LessEq[R]) }
func greaterBuiltin[R constraints.Float]() value.BuiltinFunc[R]      { return comparison(">", number.Greater[R]) }
func greaterEqualBuiltin[R constraints.Float]() value.BuiltinFunc[R] { return comparison(">=", number.GreaterEq[R]) }

// firstOfOrder builds `min`/`max`: folds over arguments keeping
// whichever original (pre-promotion) operand wins cmp, so that e.g.
// min(1, 1.0) reports the exact Integer 1, not its Real promotion.
func firstOfOrder[R constraints.Float](name string, cmp func(a, b number.Number[R]) bool) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) == 0 {
			return value.Value[R]{}, goerrors.NewLogic("%s requires at least one argument!", name)
		}
		acc, err := numberArg(arguments[0])
		if err != nil {
			return value.Value[R]{}, goerrors.NewLogic("expect a number, got %s", arguments[0])
		}
		for _, arg := range arguments[1:] {
			n, err := numberArg(arg)
			if err != nil {
				return value.Value[R]{}, goerrors.NewLogic("expect a number, got %s", arg)
			}
			pair := number.Upcast(acc, n)
			if cmp(n, acc) {
				acc = pair.Rhs()
			} else {
				acc = pair.Lhs()
			}
		}
		return value.Num(acc), nil
	}
}

func maxBuiltin[R constraints.Float]() value.BuiltinFunc[R] { return firstOfOrder("max", number.Greater[R]) }
func minBuiltin[R constraints.Float]() value.BuiltinFunc[R] { return firstOfOrder("min", number.Less[R]) }
