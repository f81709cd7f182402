package core

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBigInt(t *testing.T) {
	tests := []struct {
		name       string
		sign       Sign
		digits     []Digit
		wantErr    string
		wantSign   Sign
		wantDigits []Digit
		wantString string
	}{
		{name: "empty is zero", sign: Positive, digits: nil, wantSign: Zero, wantDigits: []Digit{}, wantString: "0"},
		{name: "zero digits stripped", sign: Positive, digits: []Digit{5, 0, 0}, wantSign: Positive, wantDigits: []Digit{5}, wantString: "5"},
		{name: "all zero digits", sign: Negative, digits: []Digit{0, 0}, wantSign: Zero, wantDigits: []Digit{}, wantString: "0"},
		{name: "two digits", sign: Negative, digits: []Digit{1, 1}, wantSign: Negative, wantDigits: []Digit{1, 1}, wantString: "-1073741825"},
		{name: "digit too wide", sign: Positive, digits: []Digit{1 << 30}, wantErr: "out of range"},
		{name: "zero sign with magnitude", sign: Zero, digits: []Digit{1}, wantErr: "zero sign"},
		{name: "bad sign", sign: 2, digits: []Digit{1}, wantErr: "invalid sign"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBigInt(tt.sign, tt.digits)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSign, b.Sign())
			assert.Equal(t, tt.wantDigits, b.Digits())
			assert.Equal(t, tt.wantString, b.String())
		})
	}
}

func TestBigIntFromBig_RoundTrip(t *testing.T) {
	for _, s := range []string{
		"0", "1", "-1", "1073741823", "1073741824",
		"9223372036854775807", "-9223372036854775808",
		"340282366920938463463374607431768211457",
		"-123456789012345678901234567890123456789012345678901234567890",
	} {
		x, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)

		b := BigIntFromBig(x)
		assert.Equal(t, 0, x.Cmp(b.Big()), "round trip of %s", s)
		assert.Equal(t, Sign(x.Sign()), b.Sign())
		if b.Len() > 0 {
			assert.NotZero(t, b.Digit(b.Len()-1), "most significant digit of %s", s)
		}
		for i := 0; i < b.Len(); i++ {
			assert.LessOrEqual(t, b.Digit(i), Digit(DigitMask))
		}
	}
}

func TestBigInt_DigitsIsCopy(t *testing.T) {
	b := BigIntFromInt64(7)
	d := b.Digits()
	d[0] = 9
	assert.Equal(t, Digit(7), b.Digit(0))
}

func TestBigInt_Equal(t *testing.T) {
	assert.True(t, BigIntFromInt64(-5).Equal(BigIntFromInt64(-5)))
	assert.False(t, BigIntFromInt64(-5).Equal(BigIntFromInt64(5)))
	assert.False(t, BigIntFromInt64(1<<30).Equal(BigIntFromInt64(1)))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    Value
		want Kind
	}{
		{SmallInt(1), KindSmallInt},
		{BigIntFromInt64(1), KindBigInt},
		{Float(1), KindFloat},
		{Str("a"), KindStr},
		{NewList(), KindList},
		{NotImplemented, KindOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.v), "KindOf(%T)", tt.v)
		assert.NotEqual(t, "", tt.want.String())
	}
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "int", SmallInt(1).Type())
	assert.Equal(t, "int", BigIntFromInt64(1).Type())
	assert.Equal(t, "float", Float(1).Type())
	assert.Equal(t, "str", Str("").Type())
	assert.Equal(t, "list", NewList().Type())
	assert.Equal(t, "tuple", NewNamedList("tuple").Type())
}

func TestFloat_String(t *testing.T) {
	assert.Equal(t, "2.0", Float(2).String())
	assert.Equal(t, "0.1", Float(0.1).String())
	assert.Equal(t, "1e+300", Float(1e300).String())
	assert.Equal(t, "+inf", Float(math.Inf(1)).String())
	assert.Equal(t, "nan", Float(math.NaN()).String())
}

func TestWidth(t *testing.T) {
	assert.True(t, Width32.Valid())
	assert.True(t, Width64.Valid())
	assert.False(t, Width(16).Valid())

	assert.True(t, Width32.Fits(math.MaxInt32))
	assert.False(t, Width32.Fits(math.MaxInt32+1))
	assert.True(t, Width32.Fits(math.MinInt32))
	assert.False(t, Width32.Fits(math.MinInt32-1))
	assert.True(t, Width64.Fits(math.MinInt64))
	assert.Equal(t, "int32", Width32.String())
}

func TestErrors(t *testing.T) {
	err := NewTypeError("bad type '%s'", "float")
	assert.Equal(t, "TypeError: bad type 'float'", err.Error())
	assert.True(t, IsKind(err, TypeError))
	assert.False(t, IsKind(err, OverflowError))

	wrapped := fmt.Errorf("eval: %w", NewOverflowError("too big"))
	assert.True(t, IsKind(wrapped, OverflowError))
	assert.False(t, IsKind(errors.New("plain"), TypeError))
}

func TestRepeatList(t *testing.T) {
	l := NewList(SmallInt(1), Str("a"))

	got, err := RepeatList(l, 2)
	require.NoError(t, err)
	assert.Equal(t, `[1, "a", 1, "a"]`, got.(*List).String())
	assert.Equal(t, 2, l.Len(), "input untouched")

	got, err = RepeatList(NewNamedList("tuple", SmallInt(1)), 1)
	require.NoError(t, err)
	assert.Equal(t, "(1,)", got.(*List).String())

	_, err = RepeatList(Str("a"), 2)
	assert.True(t, IsKind(err, TypeError))
}

func TestRepeatStr(t *testing.T) {
	got, err := RepeatStr(Str("ab"), 3)
	require.NoError(t, err)
	assert.Equal(t, Str("ababab"), got)

	got, err = RepeatStr(Str("ab"), 0)
	require.NoError(t, err)
	assert.Equal(t, Str(""), got)

	_, err = RepeatStr(Str("ab"), MaxRepeatLen)
	assert.True(t, IsKind(err, OverflowError))
}

type repeater struct{ n int }

func (repeater) Type() string { return "repeater" }
func (r repeater) Len() int   { return r.n }
func (r repeater) Repeat(count int) (Sequence, error) {
	return repeater{n: r.n * count}, nil
}

func TestRepeatFor(t *testing.T) {
	assert.NotNil(t, RepeatFor(Str("")))
	assert.NotNil(t, RepeatFor(NewList()))

	fn := RepeatFor(repeater{n: 2})
	require.NotNil(t, fn)
	got, err := fn(repeater{n: 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Len())
}
