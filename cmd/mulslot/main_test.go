// Package main provides tests for the mulslot CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/mulslot/internal/cli"
	"github.com/leapstack-labs/mulslot/internal/cli/commands"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mulslot v")
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"mul", "repeat", "eval", "repl", "slots", "check", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestMulCommand_WidthFlag(t *testing.T) {
	tests := []struct {
		name  string
		width string
		want  string
	}{
		{name: "64", width: "64", want: "4611686014132420609"},
		{name: "int32", width: "int32", want: "4611686014132420609"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "--width", tt.width, "-o", "json", "mul", "2147483647", "2147483647")
			require.NoError(t, err)

			var res commands.MulOutput
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, tt.want, res.Result)
		})
	}
}

func TestMulCommand_EnvWidth(t *testing.T) {
	t.Setenv("MULSLOT_WIDTH", "32")
	out, err := run(t, "-o", "json", "mul", "65536", "32768")
	require.NoError(t, err)

	var res commands.MulOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2147483648", res.Result)
	assert.Equal(t, 32, res.Width)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mulslot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\n"), 0o600))

	out, err := run(t, "--config", path, "mul", "6", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "result: \"42\"")
	assert.Contains(t, out, "slot: multiply_smallint")
}

func TestInvalidWidth(t *testing.T) {
	_, err := run(t, "--width", "16", "slots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width must be 32 or 64")
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "mulslot"), "completion script should mention mulslot")
}

func TestCheckCommand_Flags(t *testing.T) {
	out, err := run(t, "-o", "json", "check", "--iterations", "20", "--workers", "2", "--seed", "9")
	require.NoError(t, err)

	var res commands.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Passed)
	assert.Equal(t, uint64(9), res.Seed)
	assert.Equal(t, 2, res.Workers)
	for _, p := range res.Properties {
		assert.Equal(t, 20, p.Iterations)
	}
}
