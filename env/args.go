package env

import "strconv"

// ParsedArgs is the result of interpreting the command-line tokens after
// the program name (spec §4.1).
type ParsedArgs struct {
	// Selection accumulates explicit module names mentioned on the command
	// line. An empty Selection means "load all discovered modules."
	Selection []string

	// Debug is set by a "debug"/"all" token, or by naming a module
	// explicitly.
	Debug bool

	// HasUpdateEveryOverride and UpdateEveryOverride carry a positive
	// integer token. Per spec §8's boundary behavior, the override only
	// takes effect when Debug is also set.
	HasUpdateEveryOverride bool
	UpdateEveryOverride    int
}

// ParseArgs interprets the command-line tokens per spec §4.1's positional
// grammar. isModuleName reports whether a token names a module discoverable
// in MODULES_DIR (used to recognize the "select this module" token); it may
// be nil if the modules directory cannot be listed yet, in which case no
// token is treated as a module selection.
func ParseArgs(args []string, isModuleName func(name string) bool) ParsedArgs {
	var out ParsedArgs

	for _, tok := range args {
		switch {
		case tok == "check":
			// no-op flag

		case tok == "debug" || tok == "all":
			out.Debug = true

		case isModuleName != nil && isModuleName(tok):
			out.Selection = append(out.Selection, tok)
			out.Debug = true

		default:
			if n, err := strconv.Atoi(tok); err == nil && n > 0 {
				out.HasUpdateEveryOverride = true
				out.UpdateEveryOverride = n
			}
			// any other unrecognized token is silently ignored
		}
	}

	return out
}
