package core

import (
	"math"
	"strconv"
)

// =============================================================================
// Value
// =============================================================================

// Value is any runtime value handed to the multiply slots.
// Values are immutable from this module's point of view.
type Value interface {
	// Type returns the host-language type name, used in error messages.
	Type() string
}

// Indexable is implemented by values that can be losslessly interpreted as an
// integer for indexing and repetition.
type Indexable interface {
	Value
	// Index returns the canonical integer, either a SmallInt or a *BigInt.
	Index() (Value, error)
}

// Kind identifies the exact variant of a value for slot selection.
type Kind int

// Value kinds.
const (
	KindOther Kind = iota
	KindSmallInt
	KindBigInt
	KindFloat
	KindStr
	KindList
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSmallInt:
		return "smallint"
	case KindBigInt:
		return "bigint"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	default:
		return "other"
	}
}

// KindOf returns the exact kind of v.
func KindOf(v Value) Kind {
	switch v.(type) {
	case SmallInt:
		return KindSmallInt
	case *BigInt:
		return KindBigInt
	case Float:
		return KindFloat
	case Str:
		return KindStr
	case *List:
		return KindList
	default:
		return KindOther
	}
}

// =============================================================================
// SmallInt
// =============================================================================

// SmallInt is an integer that fits a machine-width signed register.
type SmallInt int64

// Type implements Value.
func (SmallInt) Type() string { return "int" }

// Index implements Indexable.
func (i SmallInt) Index() (Value, error) { return i, nil }

func (i SmallInt) String() string { return strconv.FormatInt(int64(i), 10) }

// =============================================================================
// Float
// =============================================================================

// Float is an IEEE-754 double.
type Float float64

// Type implements Value.
func (Float) Type() string { return "float" }

func (f Float) String() string {
	switch {
	case math.IsInf(float64(f), 1):
		return "+inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	case math.IsNaN(float64(f)):
		return "nan"
	}
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' {
			return s
		}
	}
	return s + ".0"
}

// =============================================================================
// NotImplemented
// =============================================================================

type notImplemented struct{}

func (notImplemented) Type() string   { return "NotImplementedType" }
func (notImplemented) String() string { return "NotImplemented" }

// NotImplemented is returned by a binary operation that does not handle the
// given operand pair.
var NotImplemented Value = notImplemented{}

// =============================================================================
// Width
// =============================================================================

// Width is the bit width of the fixed register used by the SmallInt slot.
type Width int

// Supported register widths.
const (
	Width32 Width = 32
	Width64 Width = 64
)

// DefaultWidth matches the native int64 register.
const DefaultWidth = Width64

// Valid reports whether w is a supported width.
func (w Width) Valid() bool {
	return w == Width32 || w == Width64
}

// Fits reports whether v can be held in a signed register of width w.
func (w Width) Fits(v int64) bool {
	if w == Width32 {
		return v >= math.MinInt32 && v <= math.MaxInt32
	}
	return true
}

func (w Width) String() string {
	return "int" + strconv.Itoa(int(w))
}
