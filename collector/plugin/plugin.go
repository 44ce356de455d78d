// Package plugin implements the dynamic shared-object collector variant
// (Design Notes §9, variant (c)): a module built separately with
// `go build -buildmode=plugin` and loaded through the OS loader at
// runtime. No ecosystem library exists for this — the standard library's
// plugin package is the only way to do it, as the stdlib justification in
// DESIGN.md's collector/plugin entry explains.
package plugin

import (
	"fmt"
	stdplugin "plugin"

	"github.com/netresearch/chartd/core"
)

// Symbol is the exported name a .so built for chartd must provide: a
// package-level variable of type core.Module (or *core.Module).
const Symbol = "Module"

// Load opens the shared object at path and returns its exported Module.
func Load(path string) (core.Module, error) {
	p, err := stdplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plugin %s: %w", path, err)
	}

	sym, err := p.Lookup(Symbol)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", path, err)
	}

	switch mod := sym.(type) {
	case core.Module:
		return mod, nil
	case *core.Module:
		return *mod, nil
	default:
		return nil, fmt.Errorf("plugin %s: %s does not implement core.Module", path, Symbol)
	}
}
