package starlark

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

func TestToValue(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name     string
		input    starlark.Value
		wantKind core.Kind
		wantType string
		wantStr  string
	}{
		{name: "small int", input: starlark.MakeInt(42), wantKind: core.KindSmallInt, wantType: "int", wantStr: "42"},
		{name: "big int", input: starlark.MakeBigInt(huge), wantKind: core.KindBigInt, wantType: "int", wantStr: huge.String()},
		{name: "float", input: starlark.Float(1.5), wantKind: core.KindFloat, wantType: "float", wantStr: "1.5"},
		{name: "string", input: starlark.String("ab"), wantKind: core.KindStr, wantType: "str", wantStr: `"ab"`},
		{name: "list", input: starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.String("x")}), wantKind: core.KindList, wantType: "list", wantStr: `[1, "x"]`},
		{name: "tuple", input: starlark.Tuple{starlark.MakeInt(1)}, wantKind: core.KindList, wantType: "tuple", wantStr: "(1,)"},
		{name: "bool", input: starlark.True, wantKind: core.KindOther, wantType: "bool", wantStr: "True"},
		{name: "none is opaque", input: starlark.None, wantKind: core.KindOther, wantType: "NoneType", wantStr: "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ToValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, core.KindOf(v))
			assert.Equal(t, tt.wantType, v.Type())
			assert.Equal(t, tt.wantStr, v.(interface{ String() string }).String())
		})
	}
}

func TestToValue_Nil(t *testing.T) {
	_, err := ToValue(nil)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("-98765432109876543210", 10)
	dict := starlark.NewDict(1)
	_ = dict.SetKey(starlark.String("k"), starlark.MakeInt(1))

	for _, in := range []starlark.Value{
		starlark.MakeInt(-7),
		starlark.MakeBigInt(huge),
		starlark.Float(0.25),
		starlark.String("hello"),
		starlark.False,
		starlark.NewList([]starlark.Value{starlark.MakeInt(1), dict}),
		starlark.Tuple{starlark.String("a"), starlark.MakeInt(2)},
	} {
		v, err := ToValue(in)
		require.NoError(t, err)
		out, err := FromValue(v)
		require.NoError(t, err)

		eq, err := starlark.Equal(in, out)
		require.NoError(t, err)
		assert.True(t, eq, "round trip of %s gave %s", in, out)
		assert.Equal(t, in.Type(), out.Type())
	}
}

func TestFromValue_Unsupported(t *testing.T) {
	_, err := FromValue(core.NotImplemented)
	assert.Error(t, err)
}

func TestBool_Index(t *testing.T) {
	v, err := Bool(true).Index()
	require.NoError(t, err)
	assert.Equal(t, core.SmallInt(1), v)

	v, err = Bool(false).Index()
	require.NoError(t, err)
	assert.Equal(t, core.SmallInt(0), v)
}
