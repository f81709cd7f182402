// Package core defines the runtime value model shared by the multiply slots.
//
// This package contains:
//   - Numeric variants (SmallInt, BigInt, Float)
//   - Sequence values (Str, List) and the RepeatFunc primitive contract
//   - The index-conversion capability (Indexable)
//   - Typed error signals (TypeError, OverflowError)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
