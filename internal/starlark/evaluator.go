package starlark

import (
	"context"
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/mulslot/pkg/slot"
)

// Evaluator evaluates Starlark expressions with the multiply builtins
// predeclared. It is safe for concurrent use.
type Evaluator struct {
	globals starlark.StringDict
	pool    *ThreadPool
	workers int
	logger  *slog.Logger
}

// EvaluatorOption is a functional option for configuring an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger sets the logger; Starlark print() output goes to it at info level.
func WithLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWorkers bounds the number of expressions EvalAll runs at once.
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEvaluator creates an evaluator backed by the given slot table.
func NewEvaluator(table *slot.Table, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		globals: Builtins(table),
		workers: 4,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pool = NewThreadPool(e.workers, e.logger)
	return e
}

// Globals returns the predeclared globals.
func (e *Evaluator) Globals() starlark.StringDict {
	return e.globals
}

// Eval evaluates a single expression and returns the result.
func (e *Evaluator) Eval(expr string, filename string, line int) (starlark.Value, error) {
	thread := e.pool.Get(filename)
	defer e.pool.Put(thread)

	result, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, filename, expr, e.globals)
	if err != nil {
		return nil, &EvalError{
			File:    filename,
			Line:    line,
			Expr:    expr,
			Message: err.Error(),
			Err:     err,
		}
	}
	return result, nil
}

// EvalString evaluates an expression and returns its string form.
// Strings are returned unquoted and None as the empty string.
func (e *Evaluator) EvalString(expr string, filename string, line int) (string, error) {
	result, err := e.Eval(expr, filename, line)
	if err != nil {
		return "", err
	}

	switch v := result.(type) {
	case starlark.String:
		return string(v), nil
	case starlark.NoneType:
		return "", nil
	default:
		return result.String(), nil
	}
}

// EvalAll evaluates the tasks concurrently and returns one result per task,
// in task order. Evaluation errors are reported per result; the returned
// error is only set when ctx is cancelled.
func (e *Evaluator) EvalAll(ctx context.Context, tasks []EvalTask) ([]EvalResult, error) {
	results := make([]EvalResult, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := e.Eval(task.Expr, task.Name, i+1)
			results[i] = EvalResult{Name: task.Name, Expr: task.Expr, Value: v, Error: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvalTask represents a single evaluation task.
type EvalTask struct {
	Name string // Identifier for this task (used for error reporting)
	Expr string // Starlark expression to evaluate
}

// EvalResult represents the result of an evaluation task.
type EvalResult struct {
	Name  string
	Expr  string
	Value starlark.Value
	Error error
}

// EvalError represents an error during Starlark expression evaluation.
type EvalError struct {
	File    string
	Line    int
	Expr    string
	Message string
	Err     error
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: error evaluating %q: %s", e.File, e.Line, e.Expr, e.Message)
	}
	return fmt.Sprintf("%s: error evaluating %q: %s", e.File, e.Expr, e.Message)
}

// Unwrap returns the underlying Starlark error.
func (e *EvalError) Unwrap() error { return e.Err }
