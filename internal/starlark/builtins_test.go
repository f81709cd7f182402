package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/slot"
)

func TestBuiltins_Globals(t *testing.T) {
	globals := Builtins(slot.NewTable(nil))

	for _, key := range []string{"mul", "repeat", "slot", "slots", "width"} {
		_, ok := globals[key]
		assert.True(t, ok, "global %q not found", key)
	}
	assert.Equal(t, "64", globals["width"].String())
}

func TestBuiltins_SlotsList(t *testing.T) {
	table := slot.NewTable(nil)
	globals := Builtins(table)

	thread := &starlark.Thread{Name: "test"}
	v, err := starlark.Call(thread, globals["slots"], nil, nil)
	require.NoError(t, err)

	list, ok := v.(*starlark.List)
	require.True(t, ok, "slots() returned %T", v)
	assert.Equal(t, len(table.Entries()), list.Len())

	first, ok := list.Index(0).(*starlarkstruct.Struct)
	require.True(t, ok, "entry is %T", list.Index(0))
	name, err := first.Attr("name")
	require.NoError(t, err)
	assert.Equal(t, `"multiply_smallint"`, name.String())
	pair, err := first.Attr("pair")
	require.NoError(t, err)
	assert.Equal(t, `"smallint*smallint"`, pair.String())
}

func TestBuiltins_Width32(t *testing.T) {
	table := slot.NewTable(slot.New(slot.WithWidth(core.Width32)))
	e := NewEvaluator(table)

	got, err := e.EvalString(`mul(2147483647, 3)`, "test", 1)
	require.NoError(t, err)
	assert.Equal(t, "6442450941", got)

	got, err = e.EvalString(`width`, "test", 1)
	require.NoError(t, err)
	assert.Equal(t, "32", got)
}
