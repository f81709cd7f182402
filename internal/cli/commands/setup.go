// Package commands implements the mulslot subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mulslot/internal/cli/config"
	"github.com/leapstack-labs/mulslot/internal/cli/output"
	starctx "github.com/leapstack-labs/mulslot/internal/starlark"
	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/slot"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Table     *slot.Table
	Evaluator *starctx.Evaluator
	Renderer  *output.Renderer
}

// NewCommandContext builds the slot table, evaluator and renderer from the
// configuration stored in the command context, or from defaults.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		cfg = config.Default()
	}
	logger := config.GetLogger(cmd.Context())

	table := slot.NewTable(slot.New(slot.WithWidth(cfg.Width), slot.WithLogger(logger)))
	eval := starctx.NewEvaluator(table,
		starctx.WithLogger(logger),
		starctx.WithWorkers(cfg.Check.Workers))

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Table:     table,
		Evaluator: eval,
		Renderer:  output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// ParseOperand evaluates a command-line operand as a Starlark literal or
// expression and converts it to a runtime value.
func (c *CommandContext) ParseOperand(arg string) (core.Value, error) {
	v, err := c.Evaluator.Eval(arg, "<arg>", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid operand %q: %w", arg, err)
	}
	return starctx.ToValue(v)
}

// describe renders a value the way the REPL prints it.
func describe(v core.Value) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return "<" + v.Type() + ">"
}
