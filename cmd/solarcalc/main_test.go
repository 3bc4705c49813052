package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/solarcalc/internal/cli"
	"github.com/rshade/solarcalc/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "solarcalc", root.Use)
		assert.Equal(t, version.GetVersion(), root.Version)
	})
}

func TestRun(t *testing.T) {
	t.Setenv("SOLARCALC_HOME", t.TempDir())

	t.Run("version flag", func(t *testing.T) {
		require.NoError(t, run(context.Background(), []string{"--version"}))
	})

	t.Run("unknown command", func(t *testing.T) {
		err := run(context.Background(), []string{"no-such-command"})
		require.Error(t, err)
		assert.Equal(t, exitError, exitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: exitOK},
		{name: "not interactive", err: cli.ErrNotInteractive, want: exitNotInteractive},
		{name: "wrapped not interactive", err: fmt.Errorf("start: %w", cli.ErrNotInteractive), want: exitNotInteractive},
		{name: "generic error", err: errors.New("boom"), want: exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
