// Package builtin holds collector modules statically linked into the
// chartd binary (Design Notes §9, variant (a)): a package-level registry
// populated by each module's init(), mirroring the teacher's job-type
// registry in cli/config/types.go (NewUnifiedJobConfig's type switch), but
// expressed as a name-keyed map instead of a type-switch since chartd's
// Module contract has no closed set of concrete types to switch over.
package builtin

import "github.com/netresearch/chartd/core"

var registry = map[string]core.Module{}

// Register adds a module to the static registry. Call from an init()
// function in the module's own file.
func Register(m core.Module) {
	registry[m.Name()] = m
}

// Lookup returns the registered module named name, if any.
func Lookup(name string) (core.Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// All returns every registered module, in no particular order.
func All() []core.Module {
	out := make([]core.Module, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	return out
}
