package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// MulOutput is the structured result of the mul and repeat commands.
type MulOutput struct {
	Left   string `json:"left" yaml:"left"`
	Right  string `json:"right" yaml:"right"`
	Slot   string `json:"slot" yaml:"slot"`
	Result string `json:"result" yaml:"result"`
	Type   string `json:"type" yaml:"type"`
	Width  int    `json:"width" yaml:"width"`
}

// NewMulCommand creates the mul command.
func NewMulCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mul <a> <b>",
		Short: "Multiply two values through the slot table",
		Long: `Multiply two operands through the multiply slot selected by their kinds.

Operands are Starlark literals: integers of any size, floats, strings,
lists and tuples.`,
		Example: `  mulslot mul 9223372036854775807 3
  mulslot --width 32 mul 2147483647 3
  mulslot mul 1.5 2.0
  mulslot mul '["x", "y"]' 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMul(cmd, args[0], args[1])
		},
	}
}

func runMul(cmd *cobra.Command, left, right string) error {
	c := NewCommandContext(cmd)

	a, err := c.ParseOperand(left)
	if err != nil {
		return err
	}
	b, err := c.ParseOperand(right)
	if err != nil {
		return err
	}

	v, name, err := c.Table.MultiplyNamed(a, b)
	if err != nil {
		return err
	}
	c.Logger.Debug("multiplied",
		slog.String("slot", name),
		slog.String("left", a.Type()),
		slog.String("right", b.Type()))

	return renderMul(c, MulOutput{
		Left:   describe(a),
		Right:  describe(b),
		Slot:   name,
		Result: describe(v),
		Type:   v.Type(),
		Width:  int(c.Table.Slots().Width()),
	})
}

func renderMul(c *CommandContext, out MulOutput) error {
	if handled, err := c.Renderer.Structured(out); handled {
		return err
	}
	styles := c.Renderer.Styles()
	c.Renderer.Printf("%s  %s\n", out.Result, styles.Muted.Render("("+out.Slot+")"))
	return nil
}
