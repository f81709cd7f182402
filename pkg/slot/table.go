package slot

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/repeat"
)

// Func is a multiply slot for a known operand pair. The table only calls it
// with operands of the kinds it was registered for.
type Func func(a, b core.Value) (core.Value, error)

// Pair is an exact (left, right) operand kind pair.
type Pair struct {
	Left  core.Kind
	Right core.Kind
}

func (p Pair) String() string {
	return p.Left.String() + "*" + p.Right.String()
}

// Entry is a registered slot.
type Entry struct {
	Pair        Pair
	Name        string
	Description string
	Fn          Func
}

// Table maps operand kind pairs to multiply slots.
type Table struct {
	mu      sync.RWMutex
	slots   *Slots
	entries map[Pair]Entry
}

// NewTable creates a table populated with the built-in slots of s.
func NewTable(s *Slots) *Table {
	if s == nil {
		s = New()
	}
	t := &Table{
		slots:   s,
		entries: make(map[Pair]Entry),
	}
	t.registerBuiltins()
	return t
}

// Slots returns the slot family backing the table.
func (t *Table) Slots() *Slots { return t.slots }

func (t *Table) registerBuiltins() {
	s := t.slots

	t.Register(Entry{
		Pair:        Pair{core.KindSmallInt, core.KindSmallInt},
		Name:        "multiply_smallint",
		Description: "register multiply, float-checked, BigInt on overflow",
		Fn: func(a, b core.Value) (core.Value, error) {
			return s.MultiplySmallInt(a.(core.SmallInt), b.(core.SmallInt))
		},
	})
	t.Register(Entry{
		Pair:        Pair{core.KindBigInt, core.KindBigInt},
		Name:        "multiply_bigint",
		Description: "arbitrary-precision multiply",
		Fn: func(a, b core.Value) (core.Value, error) {
			return s.MultiplyBigInt(a.(*core.BigInt), b.(*core.BigInt))
		},
	})
	t.Register(Entry{
		Pair:        Pair{core.KindFloat, core.KindFloat},
		Name:        "multiply_float",
		Description: "IEEE-754 double multiply",
		Fn: func(a, b core.Value) (core.Value, error) {
			return s.MultiplyFloat(a.(core.Float), b.(core.Float)), nil
		},
	})

	mixed := func(a, b core.Value) (core.Value, error) {
		return s.MultiplyBigInt(toBigInt(a), toBigInt(b))
	}
	for _, p := range []Pair{{core.KindSmallInt, core.KindBigInt}, {core.KindBigInt, core.KindSmallInt}} {
		t.Register(Entry{
			Pair:        p,
			Name:        "multiply_bigint",
			Description: "SmallInt promoted, arbitrary-precision multiply",
			Fn:          mixed,
		})
	}

	for _, seq := range []core.Kind{core.KindStr, core.KindList} {
		for _, n := range []core.Kind{core.KindSmallInt, core.KindBigInt} {
			t.Register(Entry{
				Pair:        Pair{seq, n},
				Name:        "sequence_repeat",
				Description: "repeat sequence by index-sized count",
				Fn:          repeatLeft,
			})
			t.Register(Entry{
				Pair:        Pair{n, seq},
				Name:        "sequence_repeat",
				Description: "repeat sequence by index-sized count",
				Fn:          repeatRight,
			})
		}
	}
}

func toBigInt(v core.Value) *core.BigInt {
	if i, ok := v.(core.SmallInt); ok {
		return core.BigIntFromInt64(int64(i))
	}
	return v.(*core.BigInt)
}

func repeatLeft(a, b core.Value) (core.Value, error) {
	return repeatSeq(a.(core.Sequence), b)
}

func repeatRight(a, b core.Value) (core.Value, error) {
	return repeatSeq(b.(core.Sequence), a)
}

func repeatSeq(seq core.Sequence, n core.Value) (core.Value, error) {
	fn := core.RepeatFor(seq)
	if fn == nil {
		return nil, core.NewTypeError("'%s' object cannot be repeated", seq.Type())
	}
	out, err := repeat.Sequence(seq, n, fn)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Register adds or replaces the slot for e.Pair.
func (t *Table) Register(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[e.Pair] = e
}

// Lookup returns the slot registered for the exact kinds of a and b.
func (t *Table) Lookup(a, b core.Value) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[Pair{core.KindOf(a), core.KindOf(b)}]
	return e, ok
}

// Entries returns all registered slots sorted by pair.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pair.Left != out[j].Pair.Left {
			return out[i].Pair.Left < out[j].Pair.Left
		}
		return out[i].Pair.Right < out[j].Pair.Right
	})
	return out
}

// Multiply computes a*b through the slot for the operand kinds. Operand
// pairs without a slot fall back to sequence repetition when either side is
// a sequence, and otherwise fail with a TypeError.
func (t *Table) Multiply(a, b core.Value) (core.Value, error) {
	v, _, err := t.MultiplyNamed(a, b)
	return v, err
}

// MultiplyNamed is Multiply that also reports the name of the slot used.
func (t *Table) MultiplyNamed(a, b core.Value) (core.Value, string, error) {
	if e, ok := t.Lookup(a, b); ok {
		v, err := e.Fn(a, b)
		return v, e.Name, err
	}

	if seq, ok := a.(core.Sequence); ok {
		v, err := repeatSeq(seq, b)
		return v, "sequence_repeat", err
	}
	if seq, ok := b.(core.Sequence); ok {
		v, err := repeatSeq(seq, a)
		return v, "sequence_repeat", err
	}

	return nil, "", core.NewTypeError("unsupported operand type(s) for *: '%s' and '%s'", a.Type(), b.Type())
}
