package slot

import (
	"math/big"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

// BigMultiplier is the arbitrary-precision multiplication primitive. It is
// total over BigInt pairs; it may return core.NotImplemented only for
// operand pairs it does not own, which the BigInt slot never passes.
type BigMultiplier interface {
	Multiply(a, b *core.BigInt) (core.Value, error)
}

// BigMultiplierFunc adapts a function to BigMultiplier.
type BigMultiplierFunc func(a, b *core.BigInt) (core.Value, error)

// Multiply implements BigMultiplier.
func (f BigMultiplierFunc) Multiply(a, b *core.BigInt) (core.Value, error) {
	return f(a, b)
}

// MathBig multiplies through math/big.
type MathBig struct{}

// Multiply implements BigMultiplier.
func (MathBig) Multiply(a, b *core.BigInt) (core.Value, error) {
	return core.BigIntFromBig(new(big.Int).Mul(a.Big(), b.Big())), nil
}
