// Package number provides a tagged float64 that is explicitly finite, infinite or
// undefined, so that division by zero and missing cells never leak through as
// accidental IEEE sentinels.
package number

import (
	"math"
	"strconv"
)

// Kind classifies a Value.
type Kind uint8

// Value kinds. The zero Kind is Undefined so that the zero Value is "missing".
const (
	Undefined Kind = iota
	Finite
	Infinite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Finite:
		return "finite"
	case Infinite:
		return "infinite"
	default:
		return "undefined"
	}
}

// Value is a number tagged with its Kind. For Infinite values f holds ±Inf so the
// sign is preserved; for Undefined values f is ignored.
type Value struct {
	kind Kind
	f    float64
}

// Of classifies a raw float64.
func Of(f float64) Value {
	switch {
	case math.IsNaN(f):
		return Value{}
	case math.IsInf(f, 0):
		return Value{kind: Infinite, f: f}
	default:
		return Value{kind: Finite, f: f}
	}
}

// Undef returns the undefined value.
func Undef() Value { return Value{} }

// Inf returns +Inf when sign >= 0 and -Inf otherwise.
func Inf(sign int) Value {
	return Value{kind: Infinite, f: math.Inf(sign)}
}

// Kind reports the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsFinite reports whether v is a finite number.
func (v Value) IsFinite() bool { return v.kind == Finite }

// IsInf reports whether v is infinite with the given sign (0 matches either sign).
func (v Value) IsInf(sign int) bool {
	return v.kind == Infinite && math.IsInf(v.f, sign)
}

// IsUndefined reports whether v carries no number.
func (v Value) IsUndefined() bool { return v.kind == Undefined }

// Float64 returns the IEEE representation: NaN for Undefined, ±Inf for Infinite.
func (v Value) Float64() float64 {
	if v.kind == Undefined {
		return math.NaN()
	}
	return v.f
}

// Div returns a / b. Undefined operands give Undefined; 0/0 and ∞/∞ give Undefined;
// x/0 gives an infinity signed by x and the zero.
func Div(a, b Value) Value {
	if a.kind == Undefined || b.kind == Undefined {
		return Value{}
	}
	return Of(a.f / b.f)
}

// Mul returns a * b. 0 × ∞ is Undefined.
func Mul(a, b Value) Value {
	if a.kind == Undefined || b.kind == Undefined {
		return Value{}
	}
	return Of(a.f * b.f)
}

// Add returns a + b. (+∞) + (−∞) is Undefined.
func Add(a, b Value) Value {
	if a.kind == Undefined || b.kind == Undefined {
		return Value{}
	}
	return Of(a.f + b.f)
}

// GreaterThan reports whether v > t. Undefined is never greater than anything.
func (v Value) GreaterThan(t float64) bool {
	switch v.kind {
	case Finite, Infinite:
		return v.f > t
	default:
		return false
	}
}

// rank orders kinds for descending sorts: +Inf, finite, -Inf, undefined.
func (v Value) rank() int {
	switch {
	case v.kind == Infinite && v.f > 0:
		return 3
	case v.kind == Finite:
		return 2
	case v.kind == Infinite:
		return 1
	default:
		return 0
	}
}

// Compare orders two values ascending with undefined lowest:
// undefined < −∞ < finite < +∞. It returns -1, 0 or +1. Two undefined values
// compare equal, as do two infinities of the same sign.
func Compare(a, b Value) int {
	ra, rb := a.rank(), b.rank()
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	case ra != 2:
		return 0
	case a.f < b.f:
		return -1
	case a.f > b.f:
		return 1
	default:
		return 0
	}
}

// Round rounds a finite value to the given number of decimal places, half away
// from zero. Infinite and undefined values are returned unchanged, as are finite
// values too large to scale without overflowing.
func (v Value) Round(places int) Value {
	if v.kind != Finite {
		return v
	}
	p := math.Pow10(places)
	scaled := v.f * p
	if math.IsInf(scaled, 0) {
		return v
	}
	return Of(math.Round(scaled) / p)
}

// String formats finite values in the shortest decimal form and the others as
// "+Inf", "-Inf" or "NaN".
func (v Value) String() string {
	switch v.kind {
	case Finite:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Infinite:
		if v.f > 0 {
			return "+Inf"
		}
		return "-Inf"
	default:
		return "NaN"
	}
}
