// Package repeat turns arbitrary runtime multipliers into bounded repeat
// counts and dispatches "repeat this sequence N times".
package repeat

import (
	"strconv"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

// Factor is the result of normalizing a multiplier: either a non-negative
// count or overflow. The zero Factor is a count of 0.
type Factor struct {
	count    int
	overflow bool
}

// Overflow is the Factor of a multiplier that does not fit a native int.
var Overflow = Factor{overflow: true}

func count(n int) Factor { return Factor{count: n} }

// Count returns the repeat count and true, or 0 and false on overflow.
func (f Factor) Count() (int, bool) {
	if f.overflow {
		return 0, false
	}
	return f.count, true
}

// IsOverflow reports whether the multiplier overflowed.
func (f Factor) IsOverflow() bool { return f.overflow }

func (f Factor) String() string {
	if f.overflow {
		return "overflow"
	}
	return strconv.Itoa(f.count)
}

// ConvertBigInt accumulates the digits of v into a native int, most
// significant first. A magnitude that does not fit yields Overflow; a
// negative value that fits yields a count of 0.
//
// Overflow is checked before the sign, so a negative value with a huge
// magnitude is still Overflow.
func ConvertBigInt(v *core.BigInt) Factor {
	n := v.Len()
	if n == 0 {
		return count(0)
	}
	if n == 1 {
		if v.Sign() == core.Negative {
			return count(0)
		}
		return count(int(v.Digit(0)))
	}

	result := 0
	for i := n - 1; i >= 0; i-- {
		prev := result
		result = result<<core.DigitBits | int(v.Digit(i))
		if result>>core.DigitBits != prev {
			return Overflow
		}
	}

	if v.Sign() == core.Negative {
		return count(0)
	}
	return count(result)
}

// Normalize converts a SmallInt or *BigInt into a Factor. Negative values
// repeat zero times. The caller guarantees v is one of the two variants;
// any other value panics.
func Normalize(v core.Value) Factor {
	switch x := v.(type) {
	case core.SmallInt:
		if x < 0 {
			return count(0)
		}
		if int64(x) > int64(maxInt) {
			return Overflow
		}
		return count(int(x))
	case *core.BigInt:
		return ConvertBigInt(x)
	default:
		panic("repeat.Normalize: expected int, got " + v.Type())
	}
}

const maxInt = int(^uint(0) >> 1)
