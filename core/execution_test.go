package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecorderTruncates(t *testing.T) {
	t.Parallel()

	h := newHistoryRecorder(2)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h.record("update", start, time.Millisecond, true, nil, nil)
	h.record("update", start.Add(time.Second), time.Millisecond, true, nil, nil)
	h.record("update", start.Add(2*time.Second), time.Millisecond, false, errors.New("boom"), nil)

	runs := h.History()
	require.Len(t, runs, 2)
	assert.Equal(t, start.Add(time.Second), runs[0].Date)
	assert.Equal(t, start.Add(2*time.Second), runs[1].Date)
	assert.False(t, runs[1].Ok)
}

func TestHistoryRecorderZeroLimitDiscardsEverything(t *testing.T) {
	t.Parallel()

	h := newHistoryRecorder(0)
	h.record("check", time.Now(), time.Millisecond, true, nil, nil)

	assert.Empty(t, h.History())
}

func TestExecutionMarshalJSONRendersErrAsString(t *testing.T) {
	t.Parallel()

	e := &Execution{Phase: "update", Ok: false, Err: errors.New("boom")}
	out, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "boom", decoded["Err"])
}
