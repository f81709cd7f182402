package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/mulslot/internal/verify"
)

// CheckOutput is the structured result of the check command.
type CheckOutput struct {
	Width      int             `json:"width" yaml:"width"`
	Seed       uint64          `json:"seed" yaml:"seed"`
	Workers    int             `json:"workers" yaml:"workers"`
	Passed     bool            `json:"passed" yaml:"passed"`
	Properties []verify.Result `json:"properties" yaml:"properties"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run randomized property checks against the slots",
		Long: `Run randomized property checks against the multiply slots and the
repeat dispatcher, comparing every result with an exact oracle.

Exits non-zero when any property fails.`,
		Example: `  mulslot check --iterations 100000
  mulslot --width 32 check --seed 42 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}

	cmd.Flags().Int("workers", 0, "Number of worker goroutines (default: GOMAXPROCS)")
	cmd.Flags().Int("iterations", 0, "Trials per property")
	cmd.Flags().Uint64("seed", 0, "Random seed")

	return cmd
}

func runCheck(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)

	results, err := verify.Run(cmd.Context(), c.Table, verify.Properties(), verify.Options{
		Workers:    c.Cfg.Check.Workers,
		Iterations: c.Cfg.Check.Iterations,
		Seed:       c.Cfg.Check.Seed,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	out := CheckOutput{
		Width:      int(c.Table.Slots().Width()),
		Seed:       c.Cfg.Check.Seed,
		Workers:    c.Cfg.Check.Workers,
		Passed:     true,
		Properties: results,
	}
	failed := 0
	for _, res := range results {
		if !res.Passed() {
			out.Passed = false
			failed++
		}
	}

	if handled, err := c.Renderer.Structured(out); handled {
		if err != nil {
			return err
		}
	} else {
		renderCheckText(c, out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d properties failed", failed, len(results))
	}
	return nil
}

func renderCheckText(c *CommandContext, out CheckOutput) {
	r := c.Renderer
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println(styles.Header1.Render(fmt.Sprintf("Property check (int%d, seed %d, %d workers)", out.Width, out.Seed, out.Workers)))

	var rows []table.Row
	for _, res := range out.Properties {
		status := styles.StatusSuccess.String()
		detail := ""
		if !res.Passed() {
			status = styles.StatusFailed.String()
			detail = res.FirstFailure
		}
		rows = append(rows, table.Row{
			status,
			titleCaser.String(res.Group),
			res.Name,
			res.Iterations,
			res.Failures,
			res.Duration.Round(time.Microsecond).String(),
			detail,
		})
	}
	r.Table(table.Row{"", "Group", "Property", "Trials", "Failures", "Time", "First failure"}, rows)

	if out.Passed {
		r.Println(styles.Success.Render("All properties passed"))
	} else {
		r.Println(styles.Error.Render("Some properties failed"))
	}
}
