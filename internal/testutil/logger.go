// Package testutil provides test helpers for structured logging and values.
package testutil

import (
	"log/slog"
	"math/big"
	"testing"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

// NewTestLogger returns a debug-level logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// MustBigInt parses a Go integer literal (any base prefix) into a BigInt.
func MustBigInt(t testing.TB, s string) *core.BigInt {
	t.Helper()
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		t.Fatalf("invalid integer literal %q", s)
	}
	return core.BigIntFromBig(x)
}
