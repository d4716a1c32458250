package builtin

import (
	"fmt"
	"io"

	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/value"
)

// IO is the output sink display and newline write to. The CLI passes
// os.Stdout; tests pass a buffer. It is bound into the builtins at
// registration time, so a registered library holds no shared state.
type IO struct {
	Out io.Writer
}

func displayBuiltin[R constraints.Float](out io.Writer) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) != 1 {
			return value.Value[R]{}, goerrors.NewLogic("display takes exactly one argument")
		}
		fmt.Fprint(out, arguments[0].String())
		return value.Void[R](), nil
	}
}

// newlineBuiltin rejects extra arguments; nothing depends on the
// exact wording of the message.
func newlineBuiltin[R constraints.Float](out io.Writer) value.BuiltinFunc[R] {
	return func(arguments []value.Value[R]) (value.Value[R], error) {
		if len(arguments) != 0 {
			return value.Value[R]{}, goerrors.NewLogic("newline takes no arguments")
		}
		fmt.Fprintln(out)
		return value.Void[R](), nil
	}
}
