package core

import "time"

// Timetable is a job's scheduling record (spec §3). Freq is the job's
// update_every in seconds. Last is the wall time of the last successful
// update (zero before the first). Next is the wall time at which the next
// update becomes eligible.
type Timetable struct {
	Freq int64
	Last time.Time
	Next time.Time
}

// AdvanceOnSuccess sets Next to the earliest multiple of Freq strictly
// greater than end, per spec §3's invariant:
//
//	next = floor(t_end/freq + 1) * freq
func (t *Timetable) AdvanceOnSuccess(end time.Time) {
	freq := time.Duration(t.Freq) * time.Second
	if freq <= 0 {
		freq = time.Second
	}
	t.Next = end.Truncate(freq).Add(freq)
}

// AdvanceOnFailure pushes Next back by one full period without touching
// Last, per spec §3 ("On update failure without stop: next += freq").
func (t *Timetable) AdvanceOnFailure() {
	t.Next = t.Next.Add(time.Duration(t.Freq) * time.Second)
}

// Job is a live scheduler entry wrapping one Collector instance produced
// by a Module's NewJob (spec §3).
type Job struct {
	// Name is the job name within its module, or nil for a single-job
	// module (the JobConfig sentinel, spec §3).
	Name *string

	// ModuleName is the owning module's name, used to build ChartName.
	ModuleName string

	// ChartName is module_name, or module_name + "_" + job_name for a
	// named job (spec §3).
	ChartName string

	Collector Collector

	Timetable Timetable

	// Retries is the configured retry ceiling; RetriesLeft is the
	// current budget, refilled to Retries on every successful update
	// (spec §3).
	Retries     int
	RetriesLeft int

	history *historyRecorder
}

// NewJob builds a scheduler-facing Job from a materialized configuration
// and the Collector instance the module constructed for it.
func NewJob(moduleName string, jobName *string, cfg JobConfig, collector Collector) *Job {
	chartName := moduleName
	if jobName != nil && *jobName != "" {
		chartName = moduleName + "_" + *jobName
	}

	freq, _ := cfg.Int(RequiredUpdateEvery)
	retries, _ := cfg.Int(RequiredRetries)

	return &Job{
		Name:        jobName,
		ModuleName:  moduleName,
		ChartName:   chartName,
		Collector:   collector,
		Timetable:   Timetable{Freq: int64(freq)},
		Retries:     retries,
		RetriesLeft: retries,
		history:     newHistoryRecorder(defaultHistoryLimit),
	}
}

// defaultHistoryLimit bounds how many past executions chartdctl inspect
// can show per job.
const defaultHistoryLimit = 10

// GetHistory returns a copy of this job's recorded check/create/update
// executions, oldest first.
func (j *Job) GetHistory() []*Execution {
	return j.history.History()
}

// recordExecution appends one phase invocation to this job's bounded
// history (chartdctl inspect, SPEC_FULL.md §B). If the job's Collector
// implements OutputCapturer, its buffered output is attached too.
func (j *Job) recordExecution(phase string, start time.Time, duration time.Duration, ok bool, err error) {
	var output []byte
	if capturer, ok := j.Collector.(OutputCapturer); ok {
		output = []byte(capturer.LastOutput())
	}
	j.history.record(phase, start, duration, ok, err, output)
}

// JobName returns the job's display name: its configured name, or the
// module name itself for a single-job module.
func (j *Job) JobName() string {
	if j.Name != nil {
		return *j.Name
	}
	return j.ModuleName
}
