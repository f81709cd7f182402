package core

import (
	"fmt"
	"math/big"
)

// =============================================================================
// BigInt
// =============================================================================

// DigitBits is the width W of one BigInt digit; digits are radix 2^W.
const DigitBits = 30

// DigitMask masks the low DigitBits bits.
const DigitMask = 1<<DigitBits - 1

// Digit is one radix-2^DigitBits digit of a BigInt magnitude.
type Digit uint32

// Sign of a BigInt.
type Sign int

// Signs.
const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

// BigInt is an arbitrary-precision integer stored as a sign and a magnitude
// of digits, least significant first. The magnitude never has a most
// significant zero digit; zero is the empty digit list with sign Zero.
type BigInt struct {
	sign   Sign
	digits []Digit
}

// NewBigInt builds a BigInt from a sign and little-endian digits.
// Most significant zero digits are stripped. An empty magnitude forces sign Zero.
func NewBigInt(sign Sign, digits []Digit) (*BigInt, error) {
	if sign < Negative || sign > Positive {
		return nil, fmt.Errorf("invalid sign %d", sign)
	}
	n := len(digits)
	for n > 0 && digits[n-1] == 0 {
		n--
	}
	ds := make([]Digit, n)
	for i := 0; i < n; i++ {
		if digits[i] > DigitMask {
			return nil, fmt.Errorf("digit %d out of range: %d", i, digits[i])
		}
		ds[i] = digits[i]
	}
	switch {
	case n == 0:
		sign = Zero
	case sign == Zero:
		return nil, fmt.Errorf("non-zero magnitude with zero sign")
	}
	return &BigInt{sign: sign, digits: ds}, nil
}

// BigIntFromBig converts a math/big integer into a BigInt.
func BigIntFromBig(x *big.Int) *BigInt {
	if x.Sign() == 0 {
		return &BigInt{}
	}
	mag := new(big.Int).Abs(x)
	mask := big.NewInt(DigitMask)
	d := new(big.Int)
	digits := make([]Digit, 0, (mag.BitLen()+DigitBits-1)/DigitBits)
	for mag.Sign() > 0 {
		digits = append(digits, Digit(d.And(mag, mask).Uint64()))
		mag.Rsh(mag, DigitBits)
	}
	return &BigInt{sign: Sign(x.Sign()), digits: digits}
}

// BigIntFromInt64 converts a native integer into a BigInt.
func BigIntFromInt64(v int64) *BigInt {
	return BigIntFromBig(big.NewInt(v))
}

// Type implements Value.
func (*BigInt) Type() string { return "int" }

// Index implements Indexable.
func (b *BigInt) Index() (Value, error) { return b, nil }

// Sign returns the sign of b.
func (b *BigInt) Sign() Sign { return b.sign }

// Len returns the number of digits in the magnitude.
func (b *BigInt) Len() int { return len(b.digits) }

// Digit returns the i-th digit, least significant first.
func (b *BigInt) Digit(i int) Digit { return b.digits[i] }

// Digits returns a copy of the magnitude digits, least significant first.
func (b *BigInt) Digits() []Digit {
	out := make([]Digit, len(b.digits))
	copy(out, b.digits)
	return out
}

// Big returns b as a math/big integer.
func (b *BigInt) Big() *big.Int {
	x := new(big.Int)
	for i := len(b.digits) - 1; i >= 0; i-- {
		x.Lsh(x, DigitBits)
		x.Or(x, big.NewInt(int64(b.digits[i])))
	}
	if b.sign == Negative {
		x.Neg(x)
	}
	return x
}

// Equal reports whether b and o hold the same integer.
func (b *BigInt) Equal(o *BigInt) bool {
	if b.sign != o.sign || len(b.digits) != len(o.digits) {
		return false
	}
	for i := range b.digits {
		if b.digits[i] != o.digits[i] {
			return false
		}
	}
	return true
}

func (b *BigInt) String() string { return b.Big().String() }
