package starlark

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/mulslot/internal/testutil"
	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/slot"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	table := slot.NewTable(slot.New(slot.WithLogger(logger)))
	return NewEvaluator(table, WithLogger(logger), WithWorkers(2))
}

func TestEvaluator_EvalString(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []struct {
		name    string
		expr    string
		want    string
		wantErr string
	}{
		{name: "smallint", expr: `mul(6, 7)`, want: "42"},
		{name: "smallint overflow promotes", expr: `mul(9223372036854775807, 3)`, want: "27670116110564327421"},
		{name: "bigint", expr: `mul(100000000000000000000, -100000000000000000000)`, want: "-10000000000000000000000000000000000000000"},
		{name: "mixed int", expr: `mul(2, 100000000000000000000)`, want: "200000000000000000000"},
		{name: "float", expr: `mul(1.5, 2.0)`, want: "3.0"},
		{name: "list repeat", expr: `mul(["x", "y"], 3)`, want: `["x", "y", "x", "y", "x", "y"]`},
		{name: "reversed repeat", expr: `mul(2, "ab")`, want: "abab"},
		{name: "negative repeat", expr: `repeat(["x"], -5)`, want: "[]"},
		{name: "zero repeat tuple", expr: `repeat((1, 2), 0)`, want: "()"},
		{name: "bool multiplier", expr: `repeat([1], True)`, want: "[1]"},
		{name: "slot name", expr: `slot(1.0, 2.0)`, want: "multiply_float"},
		{name: "no slot", expr: `slot(1, 2.0)`, want: ""},
		{name: "non index", expr: `repeat(["x"], 2.5)`, wantErr: "can't multiply sequence by non-int of type 'float'"},
		{name: "overflow", expr: `repeat(["x"], 18446744073709551616)`, wantErr: "cannot fit 'int' into an index-sized integer"},
		{name: "unsupported", expr: `mul(1, 2.0)`, wantErr: "unsupported operand type(s) for *: 'int' and 'float'"},
		{name: "not a sequence", expr: `repeat(1, 2)`, wantErr: "'int' object is not a sequence"},
		{name: "undefined", expr: `nope`, wantErr: "undefined: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.EvalString(tt.expr, "test.star", 1)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_ErrorKindSurvives(t *testing.T) {
	e := newTestEvaluator(t)

	_, err := e.Eval(`repeat([1], 1267650600228229401496703205376)`, "test.star", 3)
	require.Error(t, err)

	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, 3, evalErr.Line)
	assert.Equal(t, "test.star", evalErr.File)
	assert.True(t, core.IsKind(err, core.OverflowError), "error chain: %v", err)
}

func TestEvalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *EvalError
		want string
	}{
		{
			name: "with line",
			err:  &EvalError{File: "repl", Line: 2, Expr: "x", Message: "undefined: x"},
			want: `repl:2: error evaluating "x": undefined: x`,
		},
		{
			name: "without line",
			err:  &EvalError{File: "repl", Expr: "x", Message: "undefined: x"},
			want: `repl: error evaluating "x": undefined: x`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestEvaluator_EvalAll(t *testing.T) {
	e := newTestEvaluator(t)

	tasks := []EvalTask{
		{Name: "task1", Expr: "mul(2, 3)"},
		{Name: "task2", Expr: "mul(4, 5)"},
		{Name: "task3", Expr: "undefined_var"},
		{Name: "task4", Expr: "mul(6, 7)"},
	}

	results, err := e.EvalAll(context.Background(), tasks)
	require.NoError(t, err)
	require.Len(t, results, 4)

	expected := map[int]int64{0: 6, 1: 20, 3: 42}
	for i, want := range expected {
		require.NoError(t, results[i].Error, "task %d error", i)
		val, _ := results[i].Value.(starlark.Int).Int64()
		assert.Equal(t, want, val, "task %d result", i)
		assert.Equal(t, tasks[i].Name, results[i].Name)
	}
	assert.Error(t, results[2].Error, "task 3 should fail with undefined variable")
}

func TestEvaluator_EvalAllCancelled(t *testing.T) {
	e := newTestEvaluator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EvalAll(ctx, []EvalTask{{Name: "t", Expr: "1"}})
	assert.ErrorIs(t, err, context.Canceled)
}
