package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const replPrompt = "mulslot> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive Starlark shell with the multiply builtins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          replPrompt,
				HistoryFile:     c.Cfg.HistoryFile,
				AutoComplete:    newREPLCompleter(),
				InterruptPrompt: "^C",
				EOFPrompt:       ".quit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mulslot REPL (%s register)\n", c.Table.Slots().Width())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")

			return runREPL(c, rl.Readline)
		},
	}
}

// runREPL reads lines until EOF or .quit, evaluating each one.
func runREPL(c *CommandContext, readLine func() (string, error)) error {
	out := c.Renderer.Out()
	styles := c.Renderer.Styles()

	for lineNo := 1; ; lineNo++ {
		line, err := readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(c, line); quit {
				return nil
			}
			continue
		}

		result, err := c.Evaluator.EvalString(line, "repl", lineNo)
		if err != nil {
			_, _ = fmt.Fprintln(out, styles.Error.Render(err.Error()))
			continue
		}
		if result != "" {
			_, _ = fmt.Fprintln(out, result)
		}
	}
}

func handleDotCommand(c *CommandContext, line string) bool {
	out := c.Renderer.Out()

	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(out)
	case ".slots":
		renderSlotsText(c, c.Table.Entries())
	case ".width":
		_, _ = fmt.Fprintln(out, c.Table.Slots().Width())
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s (type .help)\n", line)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	_, _ = fmt.Fprint(w, `Commands:
  .help    Show this help
  .slots   List the multiply slots
  .width   Show the register width
  .quit    Exit the REPL

Builtins:
  mul(a, b)       multiply through the slot table
  repeat(seq, n)  repeat a sequence n times
  slot(a, b)      name of the slot for a pair of operands
  slots()         all registered slots
  width           register width in bits
`)
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".slots"),
		readline.PcItem(".width"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItem("mul("),
		readline.PcItem("repeat("),
		readline.PcItem("slot("),
		readline.PcItem("slots()"),
		readline.PcItem("width"),
	)
}
