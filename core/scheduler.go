package core

import "time"

// Scheduler drives the live job list through the update phase (spec §4.6):
// a single-threaded cooperative pass over every due job, in stable creation
// order, sleeping between passes until the earliest next deadline. There is
// no concurrency here by design (spec §5) — the teacher's cron-driven,
// goroutine-pooled scheduler has no analogue in this model.
type Scheduler struct {
	jobs     []*Job
	clock    Clock
	proto    *Protocol
	log      Logger
	firstRun bool
}

// NewScheduler builds a Scheduler over the given survivors of the create
// phase (spec §4.5).
func NewScheduler(jobs []*Job, clock Clock, proto *Protocol, log Logger) *Scheduler {
	return &Scheduler{
		jobs:     jobs,
		clock:    clock,
		proto:    proto,
		log:      log,
		firstRun: true,
	}
}

// Jobs returns the currently live job list.
func (s *Scheduler) Jobs() []*Job {
	return s.jobs
}

// RunPass executes exactly one pass over the live jobs (spec §4.6) and
// reports how long to sleep before the next pass. It returns
// ErrNoJobsSurvived once the live job list becomes empty, at which point the
// caller is expected to treat this as fatal (spec §4.6, §7).
func (s *Scheduler) RunPass() (time.Duration, error) {
	nextRuns := make([]time.Time, 0, len(s.jobs))
	survivors := make([]*Job, 0, len(s.jobs))

	for _, job := range s.jobs {
		tStart := s.clock.Now()

		if job.Timetable.Next.After(tStart) {
			survivors = append(survivors, job)
			nextRuns = append(nextRuns, job.Timetable.Next)
			continue
		}

		var sinceLast int64
		if !s.firstRun {
			sinceLast = tStart.Sub(job.Timetable.Last).Microseconds()
		}

		outcome := callUpdate(job, sinceLast)
		tEnd := s.clock.Now()
		job.recordExecution("update", tStart, tEnd.Sub(tStart), outcome.kind == phaseOK, outcome.err)

		switch outcome.kind {
		case phaseNotImplemented:
			s.log.Errorf("%s: no update() function. Disabling it.", job.ChartName)
			continue
		case phaseCrashed:
			s.log.Errorf("%s: misbehaving. Reason: %v", job.ChartName, outcome.err)
			continue
		case phaseDeclinedFalse:
			job.RetriesLeft--
			if job.RetriesLeft < 0 {
				s.log.Errorf("%s: update() function reports failure.", job.ChartName)
				continue
			}
			job.Timetable.AdvanceOnFailure()
			survivors = append(survivors, job)
			nextRuns = append(nextRuns, job.Timetable.Next)
		default:
			job.Timetable.AdvanceOnSuccess(tEnd)
			elapsedMs := tEnd.Sub(tStart).Milliseconds()
			s.proto.RuntimeFrame(job.ChartName, sinceLast, elapsedMs)
			job.RetriesLeft = job.Retries
			job.Timetable.Last = tStart
			s.firstRun = false
			survivors = append(survivors, job)
			nextRuns = append(nextRuns, job.Timetable.Next)
		}
	}

	s.jobs = survivors
	if len(s.jobs) == 0 {
		return 0, ErrNoJobsSurvived
	}

	sleepUntil := nextRuns[0]
	for _, t := range nextRuns[1:] {
		if t.Before(sleepUntil) {
			sleepUntil = t
		}
	}

	now := s.clock.Now()
	if sleepUntil.Before(now) {
		return 0, nil
	}
	return sleepUntil.Sub(now), nil
}

// Run drives passes forever, sleeping via the Scheduler's Clock between
// them, until RunPass reports no jobs survive.
func (s *Scheduler) Run() error {
	for {
		d, err := s.RunPass()
		if err != nil {
			return err
		}
		if d > 0 {
			s.clock.Sleep(d)
		}
	}
}
