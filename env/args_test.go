package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func isModule(name string) bool {
	return name == "mysql" || name == "loadavg"
}

func TestParseArgsEmpty(t *testing.T) {
	t.Parallel()

	got := ParseArgs(nil, isModule)
	assert.Empty(t, got.Selection)
	assert.False(t, got.Debug)
	assert.False(t, got.HasUpdateEveryOverride)
}

func TestParseArgsCheckIsNoOp(t *testing.T) {
	t.Parallel()

	got := ParseArgs([]string{"check"}, isModule)
	assert.False(t, got.Debug)
	assert.Empty(t, got.Selection)
}

func TestParseArgsDebugAndAllEnableDebug(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"debug", "all"} {
		got := ParseArgs([]string{tok}, isModule)
		assert.True(t, got.Debug, tok)
	}
}

func TestParseArgsModuleNameSelectsAndEnablesDebug(t *testing.T) {
	t.Parallel()

	got := ParseArgs([]string{"mysql"}, isModule)
	assert.Equal(t, []string{"mysql"}, got.Selection)
	assert.True(t, got.Debug)
}

func TestParseArgsPositiveIntegerIsUpdateEveryOverride(t *testing.T) {
	t.Parallel()

	got := ParseArgs([]string{"5"}, isModule)
	assert.True(t, got.HasUpdateEveryOverride)
	assert.Equal(t, 5, got.UpdateEveryOverride)
}

func TestParseArgsUnrecognizedTokenIgnored(t *testing.T) {
	t.Parallel()

	got := ParseArgs([]string{"--bogus"}, isModule)
	assert.False(t, got.HasUpdateEveryOverride)
	assert.False(t, got.Debug)
	assert.Empty(t, got.Selection)
}

func TestParseArgsNilIsModuleNeverSelects(t *testing.T) {
	t.Parallel()

	got := ParseArgs([]string{"mysql"}, nil)
	assert.Empty(t, got.Selection)
}

func TestParseArgsMultipleModulesAndOverride(t *testing.T) {
	t.Parallel()

	got := ParseArgs([]string{"mysql", "loadavg", "2"}, isModule)
	assert.Equal(t, []string{"mysql", "loadavg"}, got.Selection)
	assert.True(t, got.Debug)
	assert.True(t, got.HasUpdateEveryOverride)
	assert.Equal(t, 2, got.UpdateEveryOverride)
}
