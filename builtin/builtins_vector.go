package builtin

import (
	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/value"
)

// vectorBuiltin implements `vector`: variadic constructor collecting
// its arguments in order.
func vectorBuiltin[R constraints.Float](arguments []value.Value[R]) (value.Value[R], error) {
	elems := make([]value.Value[R], len(arguments))
	copy(elems, arguments)
	return value.Vector(elems), nil
}

// vectorRefBuiltin implements `vector-ref`: (vector, index) -> element.
func vectorRefBuiltin[R constraints.Float](arguments []value.Value[R]) (value.Value[R], error) {
	if len(arguments) != 2 {
		return value.Value[R]{}, goerrors.NewLogic("vector_ref requires exactly two argument")
	}
	vec, ok := arguments[0].AsVector()
	if !ok {
		return value.Value[R]{}, goerrors.NewLogic("expect a vector!")
	}
	idxNum, ok := arguments[1].AsNumber()
	if !ok {
		return value.Value[R]{}, goerrors.NewLogic("expect a integer!")
	}
	idx, ok := idxNum.AsInt32()
	if !ok {
		return value.Value[R]{}, goerrors.NewLogic("expect a integer!")
	}
	if idx < 0 || int(idx) >= len(vec) {
		return value.Value[R]{}, goerrors.NewLogic("vector index out of bound")
	}
	return vec[idx], nil
}
