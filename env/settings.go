// Package env resolves the supervisor's Environment & Settings component
// (spec §4.1): the modules/config directories, the default update period,
// the debug flag, and the program name used as the stderr log prefix.
package env

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// collectorSubdir is the fixed relative path from NETDATA_PLUGINS_DIR (or
// the binary's own directory) to the collector tree (spec §4.1).
const collectorSubdir = "python.d"

// defaultConfigDir is the fixed system default for CONFIG_DIR when
// NETDATA_CONFIG_DIR is unset (spec §6).
const defaultConfigDir = "/etc/netdata/"

// Settings is the supervisor's resolved, frozen-after-startup environment
// (Design Notes §9, "global mutable state" — modeled here as an immutable
// record passed by reference, not as package-level mutable globals).
type Settings struct {
	ModulesDir         string
	ConfigDir          string
	UpdateEveryDefault int
	Program            string
}

// Resolve computes Settings from the process environment and its own
// executable path, per spec §4.1.
func Resolve(getenv func(string) string, executable string) Settings {
	modulesDir := resolveModulesDir(getenv, executable)
	configDir := resolveConfigDir(getenv)
	updateEvery := resolveUpdateEveryDefault(getenv)
	program := resolveProgram(executable)

	return Settings{
		ModulesDir:         modulesDir,
		ConfigDir:          configDir,
		UpdateEveryDefault: updateEvery,
		Program:            program,
	}
}

func resolveModulesDir(getenv func(string) string, executable string) string {
	var base string
	if dir := getenv("NETDATA_PLUGINS_DIR"); dir != "" {
		base = dir
	} else {
		base = filepath.Dir(executable)
	}
	return withTrailingSeparator(filepath.Join(base, collectorSubdir))
}

func resolveConfigDir(getenv func(string) string) string {
	if dir := getenv("NETDATA_CONFIG_DIR"); dir != "" {
		return withTrailingSeparator(dir)
	}
	return defaultConfigDir
}

func resolveUpdateEveryDefault(getenv func(string) string) int {
	raw := getenv("NETDATA_UPDATE_EVERY")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func resolveProgram(executable string) string {
	base := filepath.Base(executable)
	return strings.TrimSuffix(base, ".plugin")
}

func withTrailingSeparator(path string) string {
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return path
	}
	return path + string(os.PathSeparator)
}
