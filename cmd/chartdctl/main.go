// Command chartdctl is the developer-facing companion to chartd: an
// interactive config wizard, a dry-run validator, and a postmortem history
// inspector. It supplements the spec's scope (§4.1's fixed grammar belongs
// to chartd alone); chartdctl is built with a flags library the way the
// teacher's ofelia.go wires its own subcommands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	parser := flags.NewNamedParser("chartdctl", flags.Default)

	_, _ = parser.AddCommand(
		"init",
		"creates python.d.conf through an interactive wizard",
		"",
		&InitCommand{},
	)
	_, _ = parser.AddCommand(
		"validate",
		"resolves the environment, loads modules and config, and reports the job list",
		"",
		&ValidateCommand{},
	)
	_, _ = parser.AddCommand(
		"inspect",
		"dumps a job's captured execution history",
		"",
		&InspectCommand{},
	)

	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		var flagErr *flags.Error
		if errors.As(err, &flagErr) {
			parser.WriteHelp(os.Stdout)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "chartdctl: %v\n", err)
		os.Exit(1)
	}
}
