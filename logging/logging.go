// Package logging renders chartd's stderr wire format (spec §6) on top of
// sirupsen/logrus, the teacher's logging library.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/netresearch/chartd/core"
)

// planFormatter renders one stderr log line in the exact shape spec §6
// requires: "<program> <LEVEL>:  <tokens joined by single spaces>\n".
type planFormatter struct {
	program string
}

func (f *planFormatter) Format(e *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(e.Level.String())
	line := fmt.Sprintf("%s %s:  %s\n", f.program, level, e.Message)
	return []byte(line), nil
}

// New builds a logrus.Logger that writes to out in chartd's stderr
// format, gated by debug so DEBUG lines are suppressed unless requested
// (spec §6).
func New(program string, out io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&planFormatter{program: program})
	SetDebug(l, debug)
	return l
}

// SetDebug gates DEBUG-level lines: suppressed unless debug is true (spec
// §6). Exported so main can re-apply it once the debug flag is fully
// resolved (CLI token merged with python.d.conf's debug key), after New
// already built the logger.
func SetDebug(l *logrus.Logger, debug bool) {
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
}

// Adapter wraps a logrus.Logger to satisfy core.Logger, mapping Criticalf
// to logrus's Fatal level (spec's FATAL) without logrus's own os.Exit
// side effect — the supervisor controls its own exit path (spec §7).
type Adapter struct {
	*logrus.Logger
}

var _ core.Logger = (*Adapter)(nil)

func (a *Adapter) Criticalf(format string, args ...any) {
	a.Logger.Logf(logrus.FatalLevel, format, args...)
}

func (a *Adapter) Debugf(format string, args ...any) {
	a.Logger.Debugf(format, args...)
}

func (a *Adapter) Errorf(format string, args ...any) {
	a.Logger.Errorf(format, args...)
}

func (a *Adapter) Noticef(format string, args ...any) {
	a.Logger.Infof(format, args...)
}

func (a *Adapter) Warningf(format string, args ...any) {
	a.Logger.Warnf(format, args...)
}
