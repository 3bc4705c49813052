package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutputMode(t *testing.T) {
	noEnv := func(string) string { return "" }
	env := func(kv map[string]string) func(string) string {
		return func(k string) string { return kv[k] }
	}

	tests := []struct {
		name       string
		forceColor bool
		noColor    bool
		plain      bool
		stdoutTTY  bool
		stdinTTY   bool
		getenv     func(string) string
		want       OutputMode
	}{
		{name: "full terminal", stdoutTTY: true, stdinTTY: true, getenv: noEnv, want: OutputModeInteractive},
		{name: "piped stdout", stdinTTY: true, getenv: noEnv, want: OutputModePlain},
		{name: "piped stdout with force color", forceColor: true, getenv: noEnv, want: OutputModeStyled},
		{name: "piped stdin", stdoutTTY: true, getenv: noEnv, want: OutputModeStyled},
		{name: "ci", stdoutTTY: true, stdinTTY: true, getenv: env(map[string]string{"CI": "true"}), want: OutputModeStyled},
		{name: "plain flag", plain: true, stdoutTTY: true, stdinTTY: true, getenv: noEnv, want: OutputModePlain},
		{name: "no color flag", noColor: true, stdoutTTY: true, stdinTTY: true, getenv: noEnv, want: OutputModePlain},
		{name: "NO_COLOR env", stdoutTTY: true, stdinTTY: true, getenv: env(map[string]string{"NO_COLOR": "1"}), want: OutputModePlain},
		{name: "dumb terminal", stdoutTTY: true, stdinTTY: true, getenv: env(map[string]string{"TERM": "dumb"}), want: OutputModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.forceColor, tt.noColor, tt.plain, tt.stdoutTTY, tt.stdinTTY, tt.getenv)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "unknown", OutputMode(9).String())
}
