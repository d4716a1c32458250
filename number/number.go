// Package number implements the exact/inexact numeric tower used by
// Scheme values: Integer and Rational are exact, Real is inexact.
// Arithmetic between different variants promotes to the least common
// variant on the exactness lattice Integer ⊂ Rational ⊂ Real.
package number

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/cwbudde/goschem/goerrors"
)

// Kind tags which variant a Number currently holds.
type Kind int

const (
	IntegerKind Kind = iota
	RationalKind
	RealKind
)

// Number is the generic numeric value. R is the floating-point type
// backing the Real variant; the CLI instantiates Number[float64], and
// the test suite also exercises Number[float32].
type Number[R constraints.Float] struct {
	kind  Kind
	i     int32
	num   int32
	denom uint32
	r     R
}

// Int constructs an exact Integer.
func Int[R constraints.Float](v int32) Number[R] {
	return Number[R]{kind: IntegerKind, i: v}
}

// Rat constructs an exact Rational, reducing it to canonical form
// (gcd-reduced, sign on the numerator, denominator >= 1) and collapsing
// to Integer when the denominator reduces to 1.
func Rat[R constraints.Float](num int32, denom uint32) Number[R] {
	if denom == 0 {
		// Callers are expected to reject zero denominators before
		// constructing a Rational; a zero denominator is stored as
		// given, without reduction.
		return Number[R]{kind: RationalKind, num: num, denom: 0}
	}
	n, d := normalizeRational(int64(num), uint64(denom))
	if d == 1 {
		return Int[R](int32(n))
	}
	return Number[R]{kind: RationalKind, num: int32(n), denom: uint32(d)}
}

// Flo constructs an inexact Real.
func Flo[R constraints.Float](v R) Number[R] {
	return Number[R]{kind: RealKind, r: v}
}

func normalizeRational(num int64, denom uint64) (int64, uint64) {
	sign := int64(1)
	if num < 0 {
		sign = -1
		num = -num
	}
	g := gcd(uint64(num), denom)
	if g == 0 {
		g = 1
	}
	n := (num / int64(g)) * sign
	d := denom / g
	return n, d
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Kind reports the variant currently held.
func (n Number[R]) Kind() Kind { return n.kind }

// IsExact reports whether n is Integer or Rational.
func (n Number[R]) IsExact() bool { return n.kind != RealKind }

// AsInt32 returns n's value and true when n is an Integer; otherwise
// it returns (0, false).
func (n Number[R]) AsInt32() (int32, bool) {
	if n.kind != IntegerKind {
		return 0, false
	}
	return n.i, true
}

func (n Number[R]) String() string {
	switch n.kind {
	case IntegerKind:
		return fmt.Sprintf("%d", n.i)
	case RationalKind:
		return fmt.Sprintf("%d/%d", n.num, n.denom)
	case RealKind:
		return formatReal(n.r)
	default:
		return "<invalid number>"
	}
}

// formatReal prints the shortest decimal that round-trips at R's own
// precision, so a float32-backed Real never leaks float64 noise digits.
func formatReal[R constraints.Float](v R) string {
	if _, ok := any(v).(float32); ok {
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// DebugString renders the variant-tagged form used by Logic error
// messages that name an offending value, e.g. Integer(5).
func (n Number[R]) DebugString() string {
	switch n.kind {
	case IntegerKind:
		return fmt.Sprintf("Integer(%d)", n.i)
	case RationalKind:
		return fmt.Sprintf("Rational(%d, %d)", n.num, n.denom)
	default:
		return fmt.Sprintf("Real(%s)", formatReal(n.r))
	}
}

// asRational returns (numerator, denominator) for Integer or Rational
// numbers; it is never called on Real.
func (n Number[R]) asRational() (int64, uint64) {
	switch n.kind {
	case IntegerKind:
		return int64(n.i), 1
	case RationalKind:
		return int64(n.num), uint64(n.denom)
	default:
		panic("number: asRational called on a Real value")
	}
}

func (n Number[R]) toReal() R {
	switch n.kind {
	case IntegerKind:
		return R(n.i)
	case RationalKind:
		return R(float64(n.num) / float64(n.denom))
	default:
		return n.r
	}
}

// Pair preserves operand identity across a promotion: Lhs/Rhs return the
// ORIGINAL (pre-promotion) operands, while the promotion itself is only
// used internally to perform the comparison/arithmetic. This lets min/max
// report the exact winning operand instead of its upcast form.
type Pair[R constraints.Float] struct {
	lhs, rhs           Number[R]
	lhsPromo, rhsPromo Number[R]
}

func (p Pair[R]) Lhs() Number[R] { return p.lhs }
func (p Pair[R]) Rhs() Number[R] { return p.rhs }

// Upcast exposes upcastOperands for callers (such as min/max) that
// need to report the original, pre-promotion winning operand.
func Upcast[R constraints.Float](lhs, rhs Number[R]) Pair[R] {
	return upcastOperands(lhs, rhs)
}

// upcastOperands promotes lhs and rhs to their least common variant,
// preserving which original operand fed which promoted side.
func upcastOperands[R constraints.Float](lhs, rhs Number[R]) Pair[R] {
	target := lhs.kind
	if rhs.kind > target {
		target = rhs.kind
	}
	return Pair[R]{
		lhs:      lhs,
		rhs:      rhs,
		lhsPromo: promote(lhs, target),
		rhsPromo: promote(rhs, target),
	}
}

func promote[R constraints.Float](n Number[R], target Kind) Number[R] {
	if n.kind == target {
		return n
	}
	switch target {
	case RationalKind:
		// Built directly rather than via Rat, which would collapse an
		// Integer straight back to IntegerKind.
		num, denom := n.asRational()
		return Number[R]{kind: RationalKind, num: int32(num), denom: uint32(denom)}
	case RealKind:
		return Flo(n.toReal())
	default:
		return n
	}
}

// Add implements +.
func Add[R constraints.Float](a, b Number[R]) Number[R] {
	p := upcastOperands(a, b)
	switch p.lhsPromo.kind {
	case IntegerKind:
		return Int[R](p.lhsPromo.i + p.rhsPromo.i)
	case RationalKind:
		an, ad := p.lhsPromo.asRational()
		bn, bd := p.rhsPromo.asRational()
		return Rat[R](int32(an*int64(bd)+bn*int64(ad)), uint32(ad*bd))
	default:
		return Flo(p.lhsPromo.r + p.rhsPromo.r)
	}
}

// Sub implements binary -.
func Sub[R constraints.Float](a, b Number[R]) Number[R] {
	p := upcastOperands(a, b)
	switch p.lhsPromo.kind {
	case IntegerKind:
		return Int[R](p.lhsPromo.i - p.rhsPromo.i)
	case RationalKind:
		an, ad := p.lhsPromo.asRational()
		bn, bd := p.rhsPromo.asRational()
		return Rat[R](int32(an*int64(bd)-bn*int64(ad)), uint32(ad*bd))
	default:
		return Flo(p.lhsPromo.r - p.rhsPromo.r)
	}
}

// Neg implements unary -.
func Neg[R constraints.Float](a Number[R]) Number[R] {
	return Sub(Int[R](0), a)
}

// Mul implements *.
func Mul[R constraints.Float](a, b Number[R]) Number[R] {
	p := upcastOperands(a, b)
	switch p.lhsPromo.kind {
	case IntegerKind:
		return Int[R](p.lhsPromo.i * p.rhsPromo.i)
	case RationalKind:
		an, ad := p.lhsPromo.asRational()
		bn, bd := p.rhsPromo.asRational()
		return Rat[R](int32(an*bn), uint32(ad*bd))
	default:
		return Flo(p.lhsPromo.r * p.rhsPromo.r)
	}
}

// Div implements binary /. Fails with a Logic error on division by an
// exact zero; inexact division by zero follows IEEE-754 (producing
// +Inf/-Inf/NaN).
func Div[R constraints.Float](a, b Number[R]) (Number[R], error) {
	p := upcastOperands(a, b)
	switch p.lhsPromo.kind {
	case IntegerKind, RationalKind:
		an, ad := p.lhsPromo.asRational()
		bn, bd := p.rhsPromo.asRational()
		num, denom, err := divRational(an, int64(ad), bn, int64(bd))
		if err != nil {
			return Number[R]{}, err
		}
		return Rat[R](int32(num), uint32(denom)), nil
	default:
		return Flo(p.lhsPromo.r / p.rhsPromo.r), nil
	}
}

// divRational computes (an/ad) / (bn/bd) as a normalized (numerator,
// positive denominator) pair.
func divRational(an, ad, bn, bd int64) (int64, int64, error) {
	if bn == 0 {
		return 0, 0, goerrors.NewLogic("division by zero")
	}
	num := an * bd
	denom := ad * bn
	if denom < 0 {
		num, denom = -num, -denom
	}
	return num, denom, nil
}

// Less, LessEq, Greater, GreaterEq, Eq implement the ordering predicates
// used by comparison built-ins and by min/max.
func Less[R constraints.Float](a, b Number[R]) bool {
	p := upcastOperands(a, b)
	return compare(p.lhsPromo, p.rhsPromo) < 0
}

func LessEq[R constraints.Float](a, b Number[R]) bool {
	p := upcastOperands(a, b)
	return compare(p.lhsPromo, p.rhsPromo) <= 0
}

func Greater[R constraints.Float](a, b Number[R]) bool {
	p := upcastOperands(a, b)
	return compare(p.lhsPromo, p.rhsPromo) > 0
}

func GreaterEq[R constraints.Float](a, b Number[R]) bool {
	p := upcastOperands(a, b)
	return compare(p.lhsPromo, p.rhsPromo) >= 0
}

func Eq[R constraints.Float](a, b Number[R]) bool {
	p := upcastOperands(a, b)
	return compare(p.lhsPromo, p.rhsPromo) == 0
}

func compare[R constraints.Float](a, b Number[R]) int {
	switch a.kind {
	case IntegerKind:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	case RationalKind:
		an, ad := a.asRational()
		bn, bd := b.asRational()
		lhs := an * int64(bd)
		rhs := bn * int64(ad)
		switch {
		case lhs < rhs:
			return -1
		case lhs > rhs:
			return 1
		default:
			return 0
		}
	default:
		switch {
		case a.r < b.r:
			return -1
		case a.r > b.r:
			return 1
		default:
			return 0
		}
	}
}

// Sqrt returns an exact result when n is exact and a perfect square;
// otherwise it returns an inexact Real.
func Sqrt[R constraints.Float](n Number[R]) Number[R] {
	switch n.kind {
	case IntegerKind:
		if n.i >= 0 {
			root := int32(math.Sqrt(float64(n.i)))
			for root*root > n.i {
				root--
			}
			for (root+1)*(root+1) <= n.i {
				root++
			}
			if root*root == n.i {
				return Int[R](root)
			}
		}
	case RationalKind:
		num, denom := n.asRational()
		rootNum := int64(math.Sqrt(float64(num)))
		rootDenom := int64(math.Sqrt(float64(denom)))
		for rootNum*rootNum > num {
			rootNum--
		}
		for (rootNum+1)*(rootNum+1) <= num {
			rootNum++
		}
		for rootDenom*rootDenom > int64(denom) {
			rootDenom--
		}
		for (rootDenom+1)*(rootDenom+1) <= int64(denom) {
			rootDenom++
		}
		if rootNum*rootNum == num && rootDenom*rootDenom == int64(denom) {
			return Rat[R](int32(rootNum), uint32(rootDenom))
		}
	}
	return Flo(R(math.Sqrt(float64(n.toReal()))))
}

// Floor rounds toward negative infinity.
func Floor[R constraints.Float](n Number[R]) Number[R] {
	switch n.kind {
	case IntegerKind:
		return n
	case RationalKind:
		num, denom := n.asRational()
		return Int[R](int32(floorDiv(num, int64(denom))))
	default:
		return Flo(R(math.Floor(float64(n.r))))
	}
}

// Ceiling rounds toward positive infinity.
func Ceiling[R constraints.Float](n Number[R]) Number[R] {
	switch n.kind {
	case IntegerKind:
		return n
	case RationalKind:
		num, denom := n.asRational()
		return Int[R](-int32(floorDiv(-num, int64(denom))))
	default:
		return Flo(R(math.Ceil(float64(n.r))))
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// Exact converts an inexact Real to an exact Rational/Integer via a
// bounded continued-fraction approximation; it is the identity on
// already-exact values. No round-trip guarantee is made for inexact
// inputs — only idempotency on exact values is part of the contract.
func Exact[R constraints.Float](n Number[R]) (Number[R], error) {
	if n.IsExact() {
		return n, nil
	}
	f := float64(n.r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number[R]{}, goerrors.NewLogic("cannot convert a non-finite real to an exact number")
	}
	const maxDenom = 1 << 20
	num, denom := floatToRational(f, maxDenom)
	return Rat[R](int32(num), uint32(denom)), nil
}

// floatToRational finds a rational approximation of f with a denominator
// bounded by maxDenom, using the standard continued-fraction algorithm.
func floatToRational(f float64, maxDenom int64) (int64, int64) {
	sign := int64(1)
	if f < 0 {
		sign = -1
		f = -f
	}
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	x := f
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > maxDenom {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2
		frac := x - float64(a)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
	}
	if k1 == 0 {
		k1 = 1
	}
	return sign * h1, k1
}

// FloorQuotient and FloorRemainder implement Euclidean floor-division and
// modulus. Integer operands stay exact; non-integer operands widen to
// Real. Division by zero fails with a Logic error.
func FloorQuotient[R constraints.Float](a, b Number[R]) (Number[R], error) {
	if a.kind == IntegerKind && b.kind == IntegerKind {
		if b.i == 0 {
			return Number[R]{}, goerrors.NewLogic("division by zero")
		}
		return Int[R](int32(floorDiv(int64(a.i), int64(b.i)))), nil
	}
	bf := b.toReal()
	if bf == 0 {
		return Number[R]{}, goerrors.NewLogic("division by zero")
	}
	return Flo(R(math.Floor(float64(a.toReal()) / float64(bf)))), nil
}

func FloorRemainder[R constraints.Float](a, b Number[R]) (Number[R], error) {
	if a.kind == IntegerKind && b.kind == IntegerKind {
		if b.i == 0 {
			return Number[R]{}, goerrors.NewLogic("division by zero")
		}
		return Int[R](int32(floorMod(int64(a.i), int64(b.i)))), nil
	}
	bf := float64(b.toReal())
	if bf == 0 {
		return Number[R]{}, goerrors.NewLogic("division by zero")
	}
	af := float64(a.toReal())
	return Flo(R(af - math.Floor(af/bf)*bf)), nil
}
