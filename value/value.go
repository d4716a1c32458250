// Package value implements the tagged-union runtime Value: the result
// of evaluating an expression, and the argument/return type of every
// built-in procedure.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/ast"
	"github.com/cwbudde/goschem/goerrors"
	"github.com/cwbudde/goschem/number"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	NumberKind Kind = iota
	BooleanKind
	CharacterKind
	StringKind
	SymbolKind
	VectorKind
	ProcedureKind
	VoidKind
	EmptyListKind
	PairKind
)

// Value is the runtime representation of every Scheme datum this
// module's core evaluates or manipulates. R parameterizes the
// floating-point type backing Number, matching number.Number[R].
type Value[R constraints.Float] struct {
	kind      Kind
	num       number.Number[R]
	boolean   bool
	char      rune
	str       string // also backs Symbol
	vector    []Value[R]
	procedure Procedure[R]
	pair      *PairData[R]
}

// PairData is the two cells of a cons pair.
type PairData[R constraints.Float] struct {
	Car Value[R]
	Cdr Value[R]
}

func Num[R constraints.Float](n number.Number[R]) Value[R] { return Value[R]{kind: NumberKind, num: n} }
func Bool[R constraints.Float](b bool) Value[R]            { return Value[R]{kind: BooleanKind, boolean: b} }
func Char[R constraints.Float](c rune) Value[R]            { return Value[R]{kind: CharacterKind, char: c} }
func Str[R constraints.Float](s string) Value[R]           { return Value[R]{kind: StringKind, str: s} }
func Symbol[R constraints.Float](s string) Value[R]        { return Value[R]{kind: SymbolKind, str: s} }
func Vector[R constraints.Float](v []Value[R]) Value[R]    { return Value[R]{kind: VectorKind, vector: v} }
func Proc[R constraints.Float](p Procedure[R]) Value[R]    { return Value[R]{kind: ProcedureKind, procedure: p} }
func Void[R constraints.Float]() Value[R]                  { return Value[R]{kind: VoidKind} }
func EmptyList[R constraints.Float]() Value[R]              { return Value[R]{kind: EmptyListKind} }
func Pair[R constraints.Float](car, cdr Value[R]) Value[R] {
	return Value[R]{kind: PairKind, pair: &PairData[R]{Car: car, Cdr: cdr}}
}

func (v Value[R]) Kind() Kind { return v.kind }

// AsNumber returns the held Number and true, or the zero Number and
// false when v is not a NumberKind.
func (v Value[R]) AsNumber() (number.Number[R], bool) {
	if v.kind != NumberKind {
		return number.Number[R]{}, false
	}
	return v.num, true
}

func (v Value[R]) AsBoolean() (bool, bool) {
	if v.kind != BooleanKind {
		return false, false
	}
	return v.boolean, true
}

func (v Value[R]) AsCharacter() (rune, bool) {
	if v.kind != CharacterKind {
		return 0, false
	}
	return v.char, true
}

func (v Value[R]) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.str, true
}

func (v Value[R]) AsSymbol() (string, bool) {
	if v.kind != SymbolKind {
		return "", false
	}
	return v.str, true
}

func (v Value[R]) AsVector() ([]Value[R], bool) {
	if v.kind != VectorKind {
		return nil, false
	}
	return v.vector, true
}

func (v Value[R]) AsProcedure() (Procedure[R], bool) {
	if v.kind != ProcedureKind {
		return nil, false
	}
	return v.procedure, true
}

func (v Value[R]) AsPair() (*PairData[R], bool) {
	if v.kind != PairKind {
		return nil, false
	}
	return v.pair, true
}

// TypeName returns the variant tag used in Logic error messages.
func (v Value[R]) TypeName() string {
	switch v.kind {
	case NumberKind:
		return "Number"
	case BooleanKind:
		return "Boolean"
	case CharacterKind:
		return "Character"
	case StringKind:
		return "String"
	case SymbolKind:
		return "Symbol"
	case VectorKind:
		return "Vector"
	case ProcedureKind:
		return "Procedure"
	case VoidKind:
		return "Void"
	case EmptyListKind:
		return "EmptyList"
	case PairKind:
		return "Pair"
	default:
		return "Unknown"
	}
}

// String renders the external (Display) representation of v.
func (v Value[R]) String() string {
	switch v.kind {
	case NumberKind:
		return v.num.String()
	case BooleanKind:
		if v.boolean {
			return "#t"
		}
		return "#f"
	case CharacterKind:
		return fmt.Sprintf("#\\%c", v.char)
	case StringKind:
		return fmt.Sprintf("%q", v.str)
	case SymbolKind:
		return v.str
	case VectorKind:
		parts := make([]string, len(v.vector))
		for i, e := range v.vector {
			parts[i] = e.String()
		}
		return fmt.Sprintf("#(%s)", strings.Join(parts, " "))
	case ProcedureKind:
		return v.procedure.String()
	case VoidKind:
		return ""
	case EmptyListKind:
		return "()"
	case PairKind:
		return fmt.Sprintf("(%s . %s)", v.pair.Car, v.pair.Cdr)
	default:
		return "<invalid value>"
	}
}

// DebugString renders v in the variant-tagged form Logic error
// messages use to name an offending value, e.g. String("foo").
func (v Value[R]) DebugString() string {
	switch v.kind {
	case NumberKind:
		return fmt.Sprintf("Number(%s)", v.num.DebugString())
	case BooleanKind:
		return fmt.Sprintf("Boolean(%t)", v.boolean)
	case CharacterKind:
		return fmt.Sprintf("Character(%q)", v.char)
	case StringKind:
		return fmt.Sprintf("String(%q)", v.str)
	case SymbolKind:
		return fmt.Sprintf("Symbol(%q)", v.str)
	case VectorKind:
		parts := make([]string, len(v.vector))
		for i, e := range v.vector {
			parts[i] = e.DebugString()
		}
		return fmt.Sprintf("Vector([%s])", strings.Join(parts, ", "))
	case ProcedureKind:
		return fmt.Sprintf("Procedure(%s)", v.procedure.Name())
	case VoidKind:
		return "Void"
	case EmptyListKind:
		return "EmptyList"
	case PairKind:
		return fmt.Sprintf("Pair(%s, %s)", v.pair.Car.DebugString(), v.pair.Cdr.DebugString())
	default:
		return "Unknown"
	}
}

// Equal compares two values: numbers compare by numeric value across
// exactness (matching number.Eq's IEEE semantics); every other kind
// compares structurally.
func Equal[R constraints.Float](a, b Value[R]) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NumberKind:
		return number.Eq(a.num, b.num)
	case BooleanKind:
		return a.boolean == b.boolean
	case CharacterKind:
		return a.char == b.char
	case StringKind, SymbolKind:
		return a.str == b.str
	case VectorKind:
		if len(a.vector) != len(b.vector) {
			return false
		}
		for i := range a.vector {
			if !Equal(a.vector[i], b.vector[i]) {
				return false
			}
		}
		return true
	case VoidKind, EmptyListKind:
		return true
	case PairKind:
		return Equal(a.pair.Car, b.pair.Car) && Equal(a.pair.Cdr, b.pair.Cdr)
	case ProcedureKind:
		return false // procedures never compare equal
	default:
		return false
	}
}

// QuoteToValue converts a parsed datum expression into a runtime
// Value without evaluation, used by `quote`. Self-evaluating literals
// map directly; List builds a proper list out of Pair/EmptyList.
func QuoteToValue[R constraints.Float](expr ast.Expression) (Value[R], error) {
	switch d := expr.Data.(type) {
	case ast.IntegerExpr:
		return Num(number.Int[R](d.Value)), nil
	case ast.RationalExpr:
		return Num(number.Rat[R](d.Num, d.Denom)), nil
	case ast.RealExpr:
		f, err := strconv.ParseFloat(d.Text, 64)
		if err != nil {
			return Value[R]{}, goerrors.NewLogic("invalid real literal %q", d.Text)
		}
		return Num(number.Flo(R(f))), nil
	case ast.BooleanExpr:
		return Bool[R](d.Value), nil
	case ast.CharacterExpr:
		return Char[R](d.Value), nil
	case ast.StringExpr:
		return Str[R](d.Value), nil
	case ast.IdentifierExpr:
		return Symbol[R](d.Name), nil
	case ast.ListExpr:
		result := EmptyList[R]()
		for i := len(d.Elements) - 1; i >= 0; i-- {
			elem, err := QuoteToValue[R](d.Elements[i])
			if err != nil {
				return Value[R]{}, err
			}
			result = Pair(elem, result)
		}
		return result, nil
	case ast.VectorExpr:
		elems := make([]Value[R], len(d.Elements))
		for i, e := range d.Elements {
			v, err := QuoteToValue[R](e)
			if err != nil {
				return Value[R]{}, err
			}
			elems[i] = v
		}
		return Vector(elems), nil
	default:
		return Value[R]{}, goerrors.NewLogic("cannot quote %s", expr.Data)
	}
}
