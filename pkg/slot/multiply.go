// Package slot implements the type-specialized multiply slots and the table
// that selects one for an exact operand-kind pair.
package slot

import (
	"log/slog"
	"math"
	"math/big"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

// Slots holds the multiply slots for one register width.
// A Slots is stateless after construction and safe for concurrent use.
type Slots struct {
	width  core.Width
	big    BigMultiplier
	logger *slog.Logger
}

// Option configures Slots.
type Option func(*Slots)

// WithWidth sets the fixed register width of the SmallInt slot.
// Unsupported widths are ignored.
func WithWidth(w core.Width) Option {
	return func(s *Slots) {
		if w.Valid() {
			s.width = w
		}
	}
}

// WithBigMultiplier sets the arbitrary-precision multiplication primitive.
func WithBigMultiplier(m BigMultiplier) Option {
	return func(s *Slots) {
		if m != nil {
			s.big = m
		}
	}
}

// WithLogger sets the logger (nil uses a discard logger).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Slots) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates Slots with a 64-bit register and math/big multiplication.
func New(opts ...Option) *Slots {
	s := &Slots{
		width:  core.DefaultWidth,
		big:    MathBig{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the register width.
func (s *Slots) Width() core.Width { return s.width }

// wrapMul multiplies in the register with two's complement wraparound.
func (s *Slots) wrapMul(a, b int64) int64 {
	if s.width == core.Width32 {
		return int64(int32(uint32(a) * uint32(b)))
	}
	return int64(uint64(a) * uint64(b))
}

// MultiplySmallInt multiplies two SmallInts.
//
// The product is computed with wraparound in the register and checked
// against a float64 product. When the two agree, or differ by no more than
// 1/32 of the float product, the wrapped value is exact. Otherwise the
// product overflowed and is recomputed exactly as a BigInt.
func (s *Slots) MultiplySmallInt(a, b core.SmallInt) (core.Value, error) {
	if !s.width.Fits(int64(a)) || !s.width.Fits(int64(b)) {
		return s.promote(a, b)
	}

	wrapped := s.wrapMul(int64(a), int64(b))
	approx := float64(a) * float64(b)
	wrappedF := float64(wrapped)

	if wrappedF == approx {
		return core.SmallInt(wrapped), nil
	}

	absDiff := math.Abs(wrappedF - approx)
	absProd := math.Abs(approx)

	// 32 * |diff| <= |approx| absorbs float rounding, not overflow.
	if 32.0*absDiff <= absProd {
		return core.SmallInt(wrapped), nil
	}

	s.logger.Debug("smallint product overflowed register",
		slog.Int64("a", int64(a)),
		slog.Int64("b", int64(b)),
		slog.String("width", s.width.String()))
	return s.promote(a, b)
}

func (s *Slots) promote(a, b core.SmallInt) (core.Value, error) {
	return s.MultiplyBigInt(core.BigIntFromBig(big.NewInt(int64(a))), core.BigIntFromBig(big.NewInt(int64(b))))
}

// MultiplyBigInt hands both operands to the arbitrary-precision primitive.
// Errors from the primitive are returned unchanged. The primitive must not
// answer NotImplemented for a BigInt pair; if it does, MultiplyBigInt panics.
func (s *Slots) MultiplyBigInt(a, b *core.BigInt) (core.Value, error) {
	x, err := s.big.Multiply(a, b)
	if err != nil {
		return nil, err
	}
	if x == core.NotImplemented {
		panic("slot: arbitrary-precision multiply returned NotImplemented")
	}
	return x, nil
}

// MultiplyFloat is IEEE-754 double multiplication. Overflow gives ±Inf.
func (s *Slots) MultiplyFloat(a, b core.Float) core.Float {
	return core.Float(float64(a) * float64(b))
}

var defaultSlots = New()

// MultiplySmallInt multiplies with a 64-bit register and math/big fallback.
func MultiplySmallInt(a, b core.SmallInt) (core.Value, error) {
	return defaultSlots.MultiplySmallInt(a, b)
}

// MultiplyBigInt multiplies through math/big.
func MultiplyBigInt(a, b *core.BigInt) (core.Value, error) {
	return defaultSlots.MultiplyBigInt(a, b)
}

// MultiplyFloat is IEEE-754 double multiplication.
func MultiplyFloat(a, b core.Float) core.Float {
	return defaultSlots.MultiplyFloat(a, b)
}
