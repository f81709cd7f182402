package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	starctx "github.com/leapstack-labs/mulslot/internal/starlark"
)

// EvalOutput is the structured result of one evaluated expression.
type EvalOutput struct {
	Expr   string `json:"expr" yaml:"expr"`
	Result string `json:"result,omitempty" yaml:"result,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expr>...",
		Short: "Evaluate Starlark expressions with the multiply builtins",
		Long: `Evaluate one or more Starlark expressions concurrently.

Predeclared: mul(a, b), repeat(seq, n), slot(a, b), slots() and width.`,
		Example: `  mulslot eval 'mul(4611686018427387904, 2)' 'repeat([1], -3)'
  mulslot eval 'slot(1.0, 2.0)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args)
		},
	}
}

func runEval(cmd *cobra.Command, exprs []string) error {
	c := NewCommandContext(cmd)

	tasks := make([]starctx.EvalTask, len(exprs))
	for i, expr := range exprs {
		tasks[i] = starctx.EvalTask{Name: fmt.Sprintf("expr%d", i+1), Expr: expr}
	}

	results, err := c.Evaluator.EvalAll(cmd.Context(), tasks)
	if err != nil {
		return err
	}

	outs := make([]EvalOutput, len(results))
	failed := 0
	for i, res := range results {
		outs[i] = EvalOutput{Expr: res.Expr}
		if res.Error != nil {
			outs[i].Error = res.Error.Error()
			failed++
			continue
		}
		outs[i].Result = formatStarlark(res.Value)
		outs[i].Type = res.Value.Type()
	}

	if handled, err := c.Renderer.Structured(outs); handled {
		if err != nil {
			return err
		}
	} else {
		styles := c.Renderer.Styles()
		for _, out := range outs {
			if out.Error != "" {
				c.Renderer.Printf("%s %s\n", styles.StatusFailed.String(), styles.Error.Render(out.Error))
				continue
			}
			c.Renderer.Println(out.Result)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(outs))
	}
	return nil
}

func formatStarlark(v starlark.Value) string {
	if s, ok := v.(starlark.String); ok {
		return string(s)
	}
	return v.String()
}
