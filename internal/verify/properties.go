package verify

import (
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/repeat"
	"github.com/leapstack-labs/mulslot/pkg/slot"
)

// Properties returns the built-in property set.
func Properties() []Property {
	return []Property{
		{
			Name:        "smallint_exact",
			Group:       "arithmetic",
			Description: "SmallInt products equal the exact product",
			Check:       checkSmallIntExact,
		},
		{
			Name:        "smallint_promotion",
			Group:       "arithmetic",
			Description: "products stay SmallInt exactly when they fit the register",
			Check:       checkSmallIntPromotion,
		},
		{
			Name:        "bigint_exact",
			Group:       "arithmetic",
			Description: "BigInt and mixed products equal the exact product",
			Check:       checkBigIntExact,
		},
		{
			Name:        "float_ieee",
			Group:       "arithmetic",
			Description: "Float products are bit-identical to IEEE multiplication",
			Check:       checkFloatIEEE,
		},
		{
			Name:        "normalize_bigint",
			Group:       "repeat",
			Description: "multipliers normalize to a count, zero or overflow",
			Check:       checkNormalizeBigInt,
		},
		{
			Name:        "repeat_length",
			Group:       "repeat",
			Description: "repeated lists have max(0, n) copies in either operand order",
			Check:       checkRepeatLength,
		},
		{
			Name:        "repeat_non_index",
			Group:       "repeat",
			Description: "non-integer multipliers fail with TypeError naming their type",
			Check:       checkRepeatNonIndex,
		},
		{
			Name:        "unsupported_pair",
			Group:       "dispatch",
			Description: "mixed int and float operands fail with TypeError",
			Check:       checkUnsupported,
		},
	}
}

// Generators

func randSmallInt(r *rand.Rand, w core.Width) core.SmallInt {
	switch r.IntN(4) {
	case 0:
		return core.SmallInt(r.Int64N(2001) - 1000)
	case 1:
		// near the square root of the register, where products start to overflow
		half := int64(1) << (uint(w)/2 - 1)
		return core.SmallInt((r.Int64N(2*half) - half) * 2)
	case 2:
		if w == core.Width32 {
			return core.SmallInt(int32(r.Uint32()))
		}
		return core.SmallInt(int64(r.Uint64()))
	default:
		edges := []int64{0, 1, -1, 2, -2, math.MaxInt32, math.MinInt32}
		if w == core.Width64 {
			edges = append(edges, math.MaxInt64, math.MinInt64)
		}
		return core.SmallInt(edges[r.IntN(len(edges))])
	}
}

func randBigInt(r *rand.Rand, maxDigits int) *core.BigInt {
	n := 1 + r.IntN(maxDigits)
	digits := make([]core.Digit, n)
	for i := range digits {
		digits[i] = core.Digit(r.Uint32() & core.DigitMask)
	}
	if digits[n-1] == 0 {
		digits[n-1] = 1
	}
	sign := core.Positive
	if r.IntN(2) == 0 {
		sign = core.Negative
	}
	b, err := core.NewBigInt(sign, digits)
	if err != nil {
		panic(err)
	}
	return b
}

func randFloat(r *rand.Rand) core.Float {
	switch r.IntN(5) {
	case 0:
		specials := []float64{0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.NaN(),
			math.MaxFloat64, math.SmallestNonzeroFloat64, -math.MaxFloat64}
		return core.Float(specials[r.IntN(len(specials))])
	case 1:
		return core.Float(math.Float64frombits(r.Uint64()))
	default:
		return core.Float((r.Float64() - 0.5) * math.Pow(2, float64(r.IntN(200)-100)))
	}
}

// Oracles

func exact(a, b core.Value) *big.Int {
	return new(big.Int).Mul(asBig(a), asBig(b))
}

func asBig(v core.Value) *big.Int {
	switch x := v.(type) {
	case core.SmallInt:
		return big.NewInt(int64(x))
	case *core.BigInt:
		return x.Big()
	default:
		return nil
	}
}

func fitsWidth(x *big.Int, w core.Width) bool {
	return x.IsInt64() && w.Fits(x.Int64())
}

// Checks

func checkSmallIntExact(r *rand.Rand, t *slot.Table) error {
	w := t.Slots().Width()
	a, b := randSmallInt(r, w), randSmallInt(r, w)
	got, err := t.Multiply(a, b)
	if err != nil {
		return fmt.Errorf("%d * %d: %w", a, b, err)
	}
	g := asBig(got)
	if g == nil {
		return fmt.Errorf("%d * %d: result type %s", a, b, got.Type())
	}
	if want := exact(a, b); g.Cmp(want) != 0 {
		return fmt.Errorf("%d * %d = %s, want %s", a, b, g, want)
	}
	return nil
}

func checkSmallIntPromotion(r *rand.Rand, t *slot.Table) error {
	w := t.Slots().Width()
	a, b := randSmallInt(r, w), randSmallInt(r, w)
	got, err := t.Multiply(a, b)
	if err != nil {
		return fmt.Errorf("%d * %d: %w", a, b, err)
	}
	_, small := got.(core.SmallInt)
	if fits := fitsWidth(exact(a, b), w); small != fits {
		return fmt.Errorf("%d * %d: SmallInt result %v, product fits %s %v", a, b, small, w, fits)
	}
	return nil
}

func checkBigIntExact(r *rand.Rand, t *slot.Table) error {
	var a, b core.Value = randBigInt(r, 6), randBigInt(r, 6)
	if r.IntN(3) == 0 {
		a = randSmallInt(r, t.Slots().Width())
	}
	if r.IntN(2) == 0 {
		a, b = b, a
	}
	got, err := t.Multiply(a, b)
	if err != nil {
		return fmt.Errorf("%s * %s: %w", a, b, err)
	}
	g := asBig(got)
	if g == nil {
		return fmt.Errorf("%s * %s: result type %s", a, b, got.Type())
	}
	if want := exact(a, b); g.Cmp(want) != 0 {
		return fmt.Errorf("%s * %s = %s, want %s", a, b, g, want)
	}
	return nil
}

func checkFloatIEEE(r *rand.Rand, t *slot.Table) error {
	a, b := randFloat(r), randFloat(r)
	got, err := t.Multiply(a, b)
	if err != nil {
		return fmt.Errorf("%s * %s: %w", a, b, err)
	}
	f, ok := got.(core.Float)
	if !ok {
		return fmt.Errorf("%s * %s: result type %s", a, b, got.Type())
	}
	want := float64(a) * float64(b)
	if math.IsNaN(want) && math.IsNaN(float64(f)) {
		return nil
	}
	if math.Float64bits(float64(f)) != math.Float64bits(want) {
		return fmt.Errorf("%s * %s = %v, want %v", a, b, float64(f), want)
	}
	return nil
}

func checkNormalizeBigInt(r *rand.Rand, _ *slot.Table) error {
	v := randBigInt(r, 4)
	got := repeat.Normalize(v)

	mag := new(big.Int).Abs(v.Big())
	switch {
	case !mag.IsInt64() || mag.Int64() > int64(math.MaxInt):
		if !got.IsOverflow() {
			return fmt.Errorf("normalize(%s) = %s, want overflow", v, got)
		}
	case v.Sign() == core.Negative:
		if n, ok := got.Count(); !ok || n != 0 {
			return fmt.Errorf("normalize(%s) = %s, want 0", v, got)
		}
	default:
		if n, ok := got.Count(); !ok || int64(n) != mag.Int64() {
			return fmt.Errorf("normalize(%s) = %s, want %s", v, got, mag)
		}
	}
	return nil
}

func checkRepeatLength(r *rand.Rand, t *slot.Table) error {
	elems := make([]core.Value, r.IntN(5))
	for i := range elems {
		elems[i] = core.SmallInt(i)
	}
	seq := core.NewList(elems...)
	n := core.SmallInt(r.IntN(26) - 5)

	left, err := t.Multiply(seq, n)
	if err != nil {
		return fmt.Errorf("%s * %d: %w", seq, n, err)
	}
	right, err := t.Multiply(n, seq)
	if err != nil {
		return fmt.Errorf("%d * %s: %w", n, seq, err)
	}

	want := max(0, int(n)) * len(elems)
	for _, got := range []core.Value{left, right} {
		l, ok := got.(*core.List)
		if !ok {
			return fmt.Errorf("%s * %d: result type %s", seq, n, got.Type())
		}
		if l.Len() != want {
			return fmt.Errorf("%s * %d has length %d, want %d", seq, n, l.Len(), want)
		}
		for i := 0; i < l.Len(); i++ {
			if l.At(i) != elems[i%len(elems)] {
				return fmt.Errorf("%s * %d: element %d is %v", seq, n, i, l.At(i))
			}
		}
	}
	return nil
}

func checkRepeatNonIndex(r *rand.Rand, _ *slot.Table) error {
	var seq core.Sequence = core.Str("ab")
	if r.IntN(2) == 0 {
		seq = core.NewList(core.SmallInt(1))
	}
	var n core.Value = randFloat(r)
	if r.IntN(3) == 0 {
		n = core.NewList()
	}

	_, err := repeat.Sequence(seq, n, core.RepeatFor(seq))
	if !core.IsKind(err, core.TypeError) {
		return fmt.Errorf("%s * %s: got %v, want TypeError", seq, n, err)
	}
	if want := "'" + n.Type() + "'"; !strings.Contains(err.Error(), want) {
		return fmt.Errorf("%s * %s: error %q does not name %s", seq, n, err, want)
	}
	return nil
}

func checkUnsupported(r *rand.Rand, t *slot.Table) error {
	var a, b core.Value = randSmallInt(r, t.Slots().Width()), randFloat(r)
	if r.IntN(2) == 0 {
		a, b = b, a
	}
	_, err := t.Multiply(a, b)
	if !core.IsKind(err, core.TypeError) {
		return fmt.Errorf("%s * %s: got %v, want TypeError", a, b, err)
	}
	return nil
}
