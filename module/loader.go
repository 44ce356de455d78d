// Package module implements the Module Loader (spec §4.2): discovering and
// loading collector modules, either from the static builtin registry or
// from the modules directory by filename convention.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/netresearch/chartd/collector/builtin"
	_ "github.com/netresearch/chartd/collector/dockerexec"
	"github.com/netresearch/chartd/collector/exec"
	"github.com/netresearch/chartd/collector/plugin"
	"github.com/netresearch/chartd/core"
)

// chartPySuffix is the filename convention spec §6 retains for host
// compatibility: out-of-process collectors are discovered as
// "<name>.chart.py" files and run by subprocess (collector/exec).
const chartPySuffix = ".chart.py"

// soSuffix extends the discovery convention to dynamic shared-object
// collectors (Design Notes §9 variant (c), collector/plugin).
const soSuffix = ".so"

// Loader discovers and loads modules from a modules directory plus the
// builtin registry.
type Loader struct {
	ModulesDir string
	Log        core.Logger
}

// New returns a Loader rooted at modulesDir.
func New(modulesDir string, log core.Logger) *Loader {
	return &Loader{ModulesDir: modulesDir, Log: log}
}

// ExistingNames lists every name the Loader could load: the builtin
// registry plus whatever modulesDir currently contains, without loading
// anything. Used to recognize a command-line token as "this names a
// module" (spec §4.1) before the loader itself runs.
func ExistingNames(modulesDir string) map[string]bool {
	names := map[string]bool{}
	for _, mod := range builtin.All() {
		names[mod.Name()] = true
	}

	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		return names
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := stemOf(entry.Name()); ok {
			names[name] = true
		}
	}
	return names
}

// Load resolves the final module list (spec §4.2). selection is the
// explicit command-line selection (nil/empty means discovery mode);
// disabled is the set of module names spec §4.1's python.d.conf disables.
func (l *Loader) Load(selection []string, disabled map[string]bool) ([]core.Module, error) {
	if info, err := os.Stat(l.ModulesDir); err != nil || !info.IsDir() {
		return nil, core.ErrModulesDirMissing
	}

	if len(selection) > 0 {
		return l.loadSelected(selection, disabled)
	}
	return l.loadDiscovered(disabled)
}

func (l *Loader) loadSelected(selection []string, disabled map[string]bool) ([]core.Module, error) {
	var mods []core.Module
	for _, name := range selection {
		if disabledByName(disabled, name) {
			continue
		}
		mod, err := l.loadOne(name)
		if err != nil {
			l.Log.Criticalf("%s: failed to load module: %v", name, err)
			return nil, fmt.Errorf("%w: %s: %v", core.ErrModuleLoadFailed, name, err)
		}
		mods = append(mods, mod)
	}
	if len(mods) == 0 {
		return nil, core.ErrNoModulesLoaded
	}
	return mods, nil
}

func (l *Loader) loadDiscovered(disabled map[string]bool) ([]core.Module, error) {
	var mods []core.Module

	for _, mod := range builtin.All() {
		if disabledByName(disabled, mod.Name()) {
			continue
		}
		mods = append(mods, mod)
	}

	entries, err := os.ReadDir(l.ModulesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrModulesDirMissing, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := stemOf(entry.Name())
		if !ok {
			continue
		}
		if disabledByName(disabled, name) {
			continue
		}
		if _, isBuiltin := builtin.Lookup(name); isBuiltin {
			continue
		}

		mod, err := l.loadFile(entry.Name(), name)
		if err != nil {
			l.Log.Debugf("%s: failed to load module: %v", name, err)
			continue
		}
		mods = append(mods, mod)
	}

	if len(mods) == 0 {
		return nil, core.ErrNoModulesLoaded
	}
	return mods, nil
}

// loadOne resolves a single explicitly-selected name against, in order, the
// builtin registry, a "<name>.chart.py" subprocess module, then a
// "<name>.so" dynamic shared object.
func (l *Loader) loadOne(name string) (core.Module, error) {
	if mod, ok := builtin.Lookup(name); ok {
		return mod, nil
	}
	if mod, err := l.loadFile(name+chartPySuffix, name); err == nil {
		return mod, nil
	}
	return l.loadFile(name+soSuffix, name)
}

func (l *Loader) loadFile(filename, name string) (core.Module, error) {
	path := filepath.Join(l.ModulesDir, filename)

	switch {
	case strings.HasSuffix(filename, chartPySuffix):
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		return exec.NewModule(name, path), nil
	case strings.HasSuffix(filename, soSuffix):
		return plugin.Load(path)
	default:
		return nil, fmt.Errorf("unrecognized module file %q", filename)
	}
}

func stemOf(filename string) (string, bool) {
	switch {
	case strings.HasSuffix(filename, chartPySuffix):
		return strings.TrimSuffix(filename, chartPySuffix), true
	case strings.HasSuffix(filename, soSuffix):
		return strings.TrimSuffix(filename, soSuffix), true
	default:
		return "", false
	}
}

// caseFold matches the teacher's middlewares/preset.go: locale-independent
// case folding via golang.org/x/text/cases rather than strings.ToLower.
var caseFold = cases.Fold()

// disabledByName reports whether name matches an entry of disabled, case
// folded. Module stems themselves are already computed via an exact
// strings.TrimSuffix (stemOf) rather than the character-class trim the
// source exhibits (spec §9 open question 2).
func disabledByName(disabled map[string]bool, name string) bool {
	folded := caseFold.String(name)
	for d := range disabled {
		if caseFold.String(d) == folded {
			return true
		}
	}
	return false
}
