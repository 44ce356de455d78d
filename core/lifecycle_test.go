package core

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeLogger struct {
	errors []string
}

func (f *fakeLogger) Criticalf(format string, args ...any) {}
func (f *fakeLogger) Debugf(format string, args ...any)    {}
func (f *fakeLogger) Errorf(format string, args ...any) {
	f.errors = append(f.errors, format)
}
func (f *fakeLogger) Noticef(format string, args ...any)  {}
func (f *fakeLogger) Warningf(format string, args ...any) {}

type stubCollector struct {
	checkOK, createOK   bool
	checkErr, createErr error
	updateOK            bool
	updateErr           error
	panicOnCheck        bool
}

func (s *stubCollector) Check() (bool, error) {
	if s.panicOnCheck {
		panic("exploded")
	}
	return s.checkOK, s.checkErr
}
func (s *stubCollector) Create() (bool, error) { return s.createOK, s.createErr }
func (s *stubCollector) Update(int64) (bool, error) { return s.updateOK, s.updateErr }

func TestRunCheckPhaseDropsDeclinedAndCrashed(t *testing.T) {
	t.Parallel()

	ok := NewJob("ok", nil, JobConfig{"update_every": 1, "retries": 1}, &stubCollector{checkOK: true})
	declined := NewJob("declined", nil, JobConfig{"update_every": 1, "retries": 1}, &stubCollector{checkOK: false})
	crashed := NewJob("crashed", nil, JobConfig{"update_every": 1, "retries": 1}, &stubCollector{checkErr: errors.New("boom")})
	notImpl := NewJob("noop", nil, JobConfig{"update_every": 1, "retries": 1}, &stubCollector{checkErr: ErrOperationNotImplemented})

	log := &fakeLogger{}
	survivors := RunCheckPhase([]*Job{ok, declined, crashed, notImpl}, NewFakeClock(testStart), log)

	require.Len(t, survivors, 1)
	assert.Equal(t, "ok", survivors[0].ChartName)
	assert.Len(t, log.errors, 3)
}

func TestRunCreatePhaseEmitsChartDeclarationOnSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	proto := NewProtocol(&buf)
	job := NewJob("loadavg", nil, JobConfig{"update_every": 1, "retries": 1}, &stubCollector{createOK: true})

	survivors := RunCreatePhase([]*Job{job}, NewFakeClock(testStart), proto, &fakeLogger{})

	require.Len(t, survivors, 1)
	assert.Contains(t, buf.String(), "CHART netdata.plugin_pythond_loadavg")
}

func TestCallPhaseRecoversPanic(t *testing.T) {
	t.Parallel()

	outcome := callChecker(NewJob("panicky", nil, JobConfig{"update_every": 1, "retries": 1}, &stubCollector{panicOnCheck: true}))

	assert.Equal(t, phaseCrashed, outcome.kind)
	assert.Error(t, outcome.err)
}
