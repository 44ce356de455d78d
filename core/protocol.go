package core

import (
	"fmt"
	"io"
)

// Protocol writes the supervisor's own lines of the stdout wire format
// (spec §6). Collector modules write their own additional lines directly to
// the same writer; Protocol only ever emits the framing the supervisor is
// responsible for.
type Protocol struct {
	out io.Writer
}

// NewProtocol returns a Protocol writing to out.
func NewProtocol(out io.Writer) *Protocol {
	return &Protocol{out: out}
}

// Disable emits the single line the host looks for to avoid relaunching the
// supervisor (spec §6, §7).
func (p *Protocol) Disable() {
	fmt.Fprint(p.out, "DISABLE\n")
}

// ChartDeclaration emits the one-time self-monitoring chart/dimension pair
// for a job's successful create(), plus the trailing blank line.
func (p *Protocol) ChartDeclaration(chartName string, freq int64) {
	fmt.Fprintf(p.out,
		"CHART netdata.plugin_pythond_%s '' 'Execution time for %s plugin' 'milliseconds / run' python.d netdata.plugin_python area 145000 %d\n",
		chartName, chartName, freq)
	fmt.Fprint(p.out, "DIMENSION run_time 'run time' absolute 1 1\n")
	fmt.Fprint(p.out, "\n")
}

// RuntimeFrame emits the BEGIN/SET/END frame for a job's successful
// update(), reporting its own runtime in milliseconds.
func (p *Protocol) RuntimeFrame(chartName string, sinceLastMicros int64, elapsedMs int64) {
	fmt.Fprintf(p.out, "BEGIN netdata.plugin_pythond_%s %d\n", chartName, sinceLastMicros)
	fmt.Fprintf(p.out, "SET run_time = %d\n", elapsedMs)
	fmt.Fprint(p.out, "END\n")
}
