// Package starlark bridges go.starlark.net values to the mulslot runtime
// value model and exposes the multiply slots as Starlark builtins.
package starlark

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

// Bool wraps a Starlark bool. It is index-convertible (False is 0, True is 1)
// but is not an int, so it only takes part in sequence repetition.
type Bool bool

// Type implements core.Value.
func (Bool) Type() string { return "bool" }

// Index implements core.Indexable.
func (b Bool) Index() (core.Value, error) {
	if b {
		return core.SmallInt(1), nil
	}
	return core.SmallInt(0), nil
}

func (b Bool) String() string { return starlark.Bool(b).String() }

// Opaque carries a Starlark value that has no mulslot counterpart, so that
// it can sit inside a repeated list.
type Opaque struct {
	V starlark.Value
}

// Type implements core.Value.
func (o Opaque) Type() string { return o.V.Type() }

func (o Opaque) String() string { return o.V.String() }

// ToValue converts a Starlark value into a mulslot value.
// Ints become SmallInt when they fit int64 and *BigInt otherwise.
func ToValue(v starlark.Value) (core.Value, error) {
	switch val := v.(type) {
	case starlark.Int:
		if i64, ok := val.Int64(); ok {
			return core.SmallInt(i64), nil
		}
		return core.BigIntFromBig(val.BigInt()), nil

	case starlark.Float:
		return core.Float(val), nil

	case starlark.String:
		return core.Str(val), nil

	case starlark.Bool:
		return Bool(val), nil

	case *starlark.List:
		elems, err := elemsToValues(val)
		if err != nil {
			return nil, err
		}
		return core.NewList(elems...), nil

	case starlark.Tuple:
		elems, err := elemsToValues(val)
		if err != nil {
			return nil, err
		}
		return core.NewNamedList("tuple", elems...), nil

	case nil:
		return nil, fmt.Errorf("nil starlark value")

	default:
		return Opaque{V: v}, nil
	}
}

func elemsToValues(seq starlark.Indexable) ([]core.Value, error) {
	elems := make([]core.Value, seq.Len())
	for i := range elems {
		ev, err := ToValue(seq.Index(i))
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		elems[i] = ev
	}
	return elems, nil
}

// FromValue converts a mulslot value back to a Starlark value.
func FromValue(v core.Value) (starlark.Value, error) {
	switch val := v.(type) {
	case core.SmallInt:
		return starlark.MakeInt64(int64(val)), nil

	case *core.BigInt:
		return starlark.MakeBigInt(val.Big()), nil

	case core.Float:
		return starlark.Float(val), nil

	case core.Str:
		return starlark.String(val), nil

	case Bool:
		return starlark.Bool(val), nil

	case Opaque:
		return val.V, nil

	case *core.List:
		elems := make([]starlark.Value, val.Len())
		for i := range elems {
			sv, err := FromValue(val.At(i))
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = sv
		}
		if val.Type() == "tuple" {
			return starlark.Tuple(elems), nil
		}
		return starlark.NewList(elems), nil

	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}
