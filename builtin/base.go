package builtin

import (
	"os"

	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/ast"
	"github.com/cwbudde/goschem/value"
)

func fixed(names ...string) ast.ParameterFormals {
	return ast.ParameterFormals{Fixed: names}
}

func variadic(rest string) ast.ParameterFormals {
	return ast.ParameterFormals{Variadic: &rest}
}

// BaseLibrary builds the standard top-level bindings: arithmetic,
// comparison, vector access and minimal I/O. The ParameterFormals
// recorded per entry is advisory; each implementation still validates
// its own arity. Output builtins write to sink.Out, defaulting to
// os.Stdout when unset.
func BaseLibrary[R constraints.Float](sink IO) map[string]value.Value[R] {
	if sink.Out == nil {
		sink.Out = os.Stdout
	}
	entries := []struct {
		name    string
		formals ast.ParameterFormals
		impl    value.BuiltinFunc[R]
	}{
		{"+", variadic("x"), add[R]},
		{"-", variadic("x"), sub[R]},
		{"*", variadic("x"), mul[R]},
		{"/", variadic("x"), div[R]},
		{"=", variadic("x"), equalsBuiltin[R]()},
		{"<", variadic("x"), lessBuiltin[R]()},
		{"<=", variadic("x"), lessEqualBuiltin[R]()},
		{">", variadic("x"), greaterBuiltin[R]()},
		{">=", variadic("x"), greaterEqualBuiltin[R]()},
		{"min", variadic("x"), minBuiltin[R]()},
		{"max", variadic("x"), maxBuiltin[R]()},
		{"sqrt", fixed("x"), sqrtBuiltin[R]()},
		{"floor", fixed("x"), floorBuiltin[R]()},
		{"ceiling", fixed("x"), ceilingBuiltin[R]()},
		{"exact", fixed("x"), exactBuiltin[R]()},
		{"floor-quotient", fixed("n1", "n2"), floorQuotientBuiltin[R]()},
		{"floor-remainder", fixed("n1", "n2"), floorRemainderBuiltin[R]()},
		{"display", fixed("value"), displayBuiltin[R](sink.Out)},
		{"newline", ast.NewParameterFormals(), newlineBuiltin[R](sink.Out)},
		{"vector", ast.NewParameterFormals(), vectorBuiltin[R]},
		{"vector-ref", fixed("vector", "k"), vectorRefBuiltin[R]},
	}

	library := make(map[string]value.Value[R], len(entries))
	for _, e := range entries {
		library[e.name] = value.Proc[R](value.NewBuiltin(e.name, e.formals, e.impl))
	}
	return library
}
