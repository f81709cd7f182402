package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mulslot/pkg/core"
	"github.com/leapstack-labs/mulslot/pkg/repeat"
)

// NewRepeatCommand creates the repeat command.
func NewRepeatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repeat <sequence> <n>",
		Short: "Repeat a sequence by any integer-like multiplier",
		Long: `Repeat a string, list or tuple n times.

Negative multipliers give an empty sequence; multipliers too large for a
native integer fail with OverflowError.`,
		Example: `  mulslot repeat '["x", "y"]' 3
  mulslot repeat -- '"ab"' -5
  mulslot repeat '(1, 2)' True`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepeat(cmd, args[0], args[1])
		},
	}
}

func runRepeat(cmd *cobra.Command, seqArg, nArg string) error {
	c := NewCommandContext(cmd)

	v, err := c.ParseOperand(seqArg)
	if err != nil {
		return err
	}
	seq, ok := v.(core.Sequence)
	if !ok {
		return fmt.Errorf("'%s' object is not a sequence", v.Type())
	}
	fn := core.RepeatFor(seq)
	if fn == nil {
		return fmt.Errorf("'%s' object cannot be repeated", seq.Type())
	}
	n, err := c.ParseOperand(nArg)
	if err != nil {
		return err
	}

	out, err := repeat.Sequence(seq, n, fn)
	if err != nil {
		return err
	}

	return renderMul(c, MulOutput{
		Left:   describe(seq),
		Right:  describe(n),
		Slot:   "sequence_repeat",
		Result: describe(out),
		Type:   out.Type(),
		Width:  int(c.Table.Slots().Width()),
	})
}
