package core

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/armon/circbuf"
)

// maxCapturedOutput bounds how much of a single update's stdout is kept in
// memory for a job's execution history (chartdctl inspect, §B of
// SPEC_FULL.md). It is unrelated to the wire protocol: collector output
// still reaches the host's stdout stream directly and in real time.
const maxCapturedOutput = 64 * 1024

// Execution records one completed phase invocation (check, create, or
// update) of a job, kept for diagnostics only.
type Execution struct {
	Phase    string
	Date     time.Time
	Duration time.Duration
	Ok       bool
	Err      error
	Output   string
}

// MarshalJSON renders Err as its message string, since error's concrete
// types (e.g. errors.errorString) carry no exported fields of their own —
// chartdctl inspect needs this to be human-readable, not {}.
func (e *Execution) MarshalJSON() ([]byte, error) {
	var errMsg string
	if e.Err != nil {
		errMsg = e.Err.Error()
	}
	return json.Marshal(struct {
		Phase    string
		Date     time.Time
		Duration time.Duration
		Ok       bool
		Err      string `json:",omitempty"`
		Output   string `json:",omitempty"`
	}{
		Phase:    e.Phase,
		Date:     e.Date,
		Duration: e.Duration,
		Ok:       e.Ok,
		Err:      errMsg,
		Output:   e.Output,
	})
}

// historyRecorder stores the last limit executions for a job, dropping the
// oldest, and caps each execution's captured output with a circular buffer,
// mirroring the teacher's
// BareJob history but without the pooling machinery a single-threaded,
// non-concurrent scheduler (spec §5) has no use for.
type historyRecorder struct {
	limit int

	mu   sync.Mutex
	runs []*Execution
}

func newHistoryRecorder(limit int) *historyRecorder {
	return &historyRecorder{limit: limit}
}

func (h *historyRecorder) record(phase string, start time.Time, duration time.Duration, ok bool, err error, output []byte) {
	if h.limit <= 0 {
		return
	}

	buf, bufErr := circbuf.NewBuffer(maxCapturedOutput)
	captured := ""
	if bufErr == nil {
		_, _ = buf.Write(output)
		captured = buf.String()
	}

	e := &Execution{
		Phase:    phase,
		Date:     start,
		Duration: duration,
		Ok:       ok,
		Err:      err,
		Output:   captured,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, e)
	if len(h.runs) > h.limit {
		h.runs = h.runs[len(h.runs)-h.limit:]
	}
}

// History returns a copy of the recorded executions, oldest first.
func (h *historyRecorder) History() []*Execution {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Execution, len(h.runs))
	copy(out, h.runs)
	return out
}
