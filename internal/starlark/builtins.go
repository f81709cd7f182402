package starlark

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/repeat"
	"github.com/leapstack-labs/mulslot/pkg/slot"
)

// Builtins returns the predeclared globals for expression evaluation:
//
//	mul(a, b)       multiply through the slot table
//	repeat(seq, n)  repeat a sequence via the repeat dispatcher
//	slot(a, b)      name of the slot that would handle a*b, or None
//	slots()         list of struct(pair, name, description)
//	width           register width of the SmallInt slot
func Builtins(table *slot.Table) starlark.StringDict {
	return starlark.StringDict{
		"mul":    starlark.NewBuiltin("mul", mulBuiltin(table)),
		"repeat": starlark.NewBuiltin("repeat", repeatBuiltin),
		"slot":   starlark.NewBuiltin("slot", slotBuiltin(table)),
		"slots":  starlark.NewBuiltin("slots", slotsBuiltin(table)),
		"width":  starlark.MakeInt(int(table.Slots().Width())),
	}
}

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func binaryOperands(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (core.Value, core.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, nil, err
	}
	a, err := ToValue(x)
	if err != nil {
		return nil, nil, err
	}
	c, err := ToValue(y)
	if err != nil {
		return nil, nil, err
	}
	return a, c, nil
}

func mulBuiltin(table *slot.Table) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		x, y, err := binaryOperands(b, args, kwargs)
		if err != nil {
			return nil, err
		}
		v, err := table.Multiply(x, y)
		if err != nil {
			return nil, err
		}
		return FromValue(v)
	}
}

func repeatBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	x, n, err := binaryOperands(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	seq, ok := x.(core.Sequence)
	if !ok {
		return nil, core.NewTypeError("'%s' object is not a sequence", x.Type())
	}
	fn := core.RepeatFor(seq)
	if fn == nil {
		return nil, core.NewTypeError("'%s' object cannot be repeated", seq.Type())
	}
	out, err := repeat.Sequence(seq, n, fn)
	if err != nil {
		return nil, err
	}
	return FromValue(out)
}

func slotBuiltin(table *slot.Table) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		x, y, err := binaryOperands(b, args, kwargs)
		if err != nil {
			return nil, err
		}
		if e, ok := table.Lookup(x, y); ok {
			return starlark.String(e.Name), nil
		}
		return starlark.None, nil
	}
}

func slotsBuiltin(table *slot.Table) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		entries := table.Entries()
		list := make([]starlark.Value, len(entries))
		for i, e := range entries {
			list[i] = starlarkstruct.FromStringDict(starlark.String("slot"), starlark.StringDict{
				"pair":        starlark.String(e.Pair.String()),
				"name":        starlark.String(e.Name),
				"description": starlark.String(e.Description),
			})
		}
		return starlark.NewList(list), nil
	}
}
