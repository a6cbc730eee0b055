package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"init", "generate", "fetch", "serve", "watch"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc1234", "2026-01-01")
	assert.Contains(t, rootCmd.Version, "1.2.3")
	assert.Contains(t, rootCmd.Version, "abc1234")
}
