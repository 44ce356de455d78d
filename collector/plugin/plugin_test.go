package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The success path (opening a real .so and pulling its Module symbol) needs
// a plugin built with -buildmode=plugin for the host's exact toolchain and
// GOOS/GOARCH, which isn't something a unit test can produce for itself.
// These tests only cover Load's error reporting.

func TestLoadMissingFileReturnsError(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/to/collector.so")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening plugin")
}

func TestSymbolConstantMatchesDocumentedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Module", Symbol)
}
