package core

import (
	"strconv"
	"strings"
)

// Sequence is an indexable container that can be repeated.
type Sequence interface {
	Value
	Len() int
}

// RepeatFunc is the underlying repeat primitive of a sequence type. It returns
// a new sequence holding the elements of seq repeated count times, with
// count >= 0. It must not mutate seq.
type RepeatFunc func(seq Sequence, count int) (Sequence, error)

// MaxRepeatLen bounds the length of a sequence produced by the built-in
// repeat primitives.
const MaxRepeatLen = 1 << 30

// =============================================================================
// Str
// =============================================================================

// Str is an immutable text sequence.
type Str string

// Type implements Value.
func (Str) Type() string { return "str" }

// Len implements Sequence.
func (s Str) Len() int { return len(s) }

func (s Str) String() string { return strconv.Quote(string(s)) }

// RepeatStr is the repeat primitive for Str.
func RepeatStr(seq Sequence, count int) (Sequence, error) {
	s, ok := seq.(Str)
	if !ok {
		return nil, NewTypeError("descriptor 'repeat' requires a 'str' object but received a '%s'", seq.Type())
	}
	if count <= 0 || len(s) == 0 {
		return Str(""), nil
	}
	if len(s) > MaxRepeatLen/count {
		return nil, NewOverflowError("repeated string is too long")
	}
	return Str(strings.Repeat(string(s), count)), nil
}

// =============================================================================
// List
// =============================================================================

// List is an immutable sequence of values. The type name is configurable so
// that tuples and other list-like types can share the representation.
type List struct {
	typeName string
	elems    []Value
}

// NewList returns a "list" holding a copy of elems.
func NewList(elems ...Value) *List {
	return NewNamedList("list", elems...)
}

// NewNamedList returns a list-like sequence reporting the given type name.
func NewNamedList(typeName string, elems ...Value) *List {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return &List{typeName: typeName, elems: cp}
}

// Type implements Value.
func (l *List) Type() string { return l.typeName }

// Len implements Sequence.
func (l *List) Len() int { return len(l.elems) }

// At returns the i-th element.
func (l *List) At(i int) Value { return l.elems[i] }

// Elems returns a copy of the elements.
func (l *List) Elems() []Value {
	cp := make([]Value, len(l.elems))
	copy(cp, l.elems)
	return cp
}

func (l *List) String() string {
	var sb strings.Builder
	open, closing := "[", "]"
	if l.typeName == "tuple" {
		open, closing = "(", ")"
	}
	sb.WriteString(open)
	for i, e := range l.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s, ok := e.(interface{ String() string }); ok {
			sb.WriteString(s.String())
		} else {
			sb.WriteString("<" + e.Type() + ">")
		}
	}
	if l.typeName == "tuple" && len(l.elems) == 1 {
		sb.WriteString(",")
	}
	sb.WriteString(closing)
	return sb.String()
}

// RepeatList is the repeat primitive for *List. The result keeps the type
// name of the input.
func RepeatList(seq Sequence, count int) (Sequence, error) {
	l, ok := seq.(*List)
	if !ok {
		return nil, NewTypeError("descriptor 'repeat' requires a 'list' object but received a '%s'", seq.Type())
	}
	if count <= 0 || len(l.elems) == 0 {
		return &List{typeName: l.typeName, elems: []Value{}}, nil
	}
	if len(l.elems) > MaxRepeatLen/count {
		return nil, NewOverflowError("repeated %s is too long", l.typeName)
	}
	out := make([]Value, 0, len(l.elems)*count)
	for i := 0; i < count; i++ {
		out = append(out, l.elems...)
	}
	return &List{typeName: l.typeName, elems: out}, nil
}

// RepeatFor returns the built-in repeat primitive for seq, or nil when the
// sequence type has none.
func RepeatFor(seq Sequence) RepeatFunc {
	switch seq.(type) {
	case Str:
		return RepeatStr
	case *List:
		return RepeatList
	}
	if r, ok := seq.(interface {
		Repeat(count int) (Sequence, error)
	}); ok {
		return func(_ Sequence, count int) (Sequence, error) { return r.Repeat(count) }
	}
	return nil
}
