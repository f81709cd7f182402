package repeat

import (
	"github.com/leapstack-labs/mulslot/pkg/core"
)

// Sequence repeats seq n times, where n is any runtime value.
//
// n must be Indexable; its Index hook yields the canonical integer, which is
// normalized into a count and handed to repeatFn. Errors from the Index hook
// and from repeatFn are returned unchanged.
func Sequence(seq core.Sequence, n core.Value, repeatFn core.RepeatFunc) (core.Sequence, error) {
	idx, ok := n.(core.Indexable)
	if !ok {
		return nil, core.NewTypeError("can't multiply sequence by non-int of type '%s'", n.Type())
	}

	iv, err := idx.Index()
	if err != nil {
		return nil, err
	}
	switch iv.(type) {
	case core.SmallInt, *core.BigInt:
	default:
		return nil, core.NewTypeError("__index__ returned non-int (type %s)", iv.Type())
	}

	c, ok := Normalize(iv).Count()
	if !ok {
		return nil, core.NewOverflowError("cannot fit '%s' into an index-sized integer", n.Type())
	}

	return repeatFn(seq, c)
}
