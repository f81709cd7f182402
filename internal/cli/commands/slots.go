package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/mulslot/pkg/slot"
)

// SlotOutput describes one registered slot.
type SlotOutput struct {
	Pair        string `json:"pair" yaml:"pair"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// NewSlotsCommand creates the slots command.
func NewSlotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the multiply slot table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			entries := c.Table.Entries()

			outs := make([]SlotOutput, len(entries))
			for i, e := range entries {
				outs[i] = SlotOutput{Pair: e.Pair.String(), Name: e.Name, Description: e.Description}
			}
			if handled, err := c.Renderer.Structured(outs); handled {
				return err
			}
			renderSlotsText(c, entries)
			return nil
		},
	}
}

func renderSlotsText(c *CommandContext, entries []slot.Entry) {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{e.Pair.Left, e.Pair.Right, e.Name, e.Description}
	}
	c.Renderer.Table(table.Row{"Left", "Right", "Slot", "Description"}, rows)
	c.Renderer.Printf("%s register\n", c.Table.Slots().Width())
}
