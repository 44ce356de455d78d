package core

import (
	"errors"
	"fmt"
)

// phaseKind discriminates how a collector's check/create/update call ended,
// per Design Notes §9 ("failure isolation without exceptions"): ok,
// declared_false, not_implemented, crashed.
type phaseKind int

const (
	phaseOK phaseKind = iota
	phaseDeclinedFalse
	phaseNotImplemented
	phaseCrashed
)

// phaseOutcome is the result discriminator the scheduler and lifecycle
// driver dispatch on instead of raw errors.
type phaseOutcome struct {
	kind phaseKind
	err  error
}

// callChecker invokes job's Check, recovering any panic into a crashed
// outcome (mirrors the teacher's jobWrapper.runWithCtx recover).
func callChecker(job *Job) phaseOutcome {
	return callPhase(job.Collector.Check)
}

// callCreator invokes job's Create, same recovery policy.
func callCreator(job *Job) phaseOutcome {
	return callPhase(job.Collector.Create)
}

// callUpdate invokes job's Update, same recovery policy.
func callUpdate(job *Job, sinceLastMicros int64) phaseOutcome {
	return callPhase(func() (bool, error) { return job.Collector.Update(sinceLastMicros) })
}

func callPhase(fn func() (bool, error)) (outcome phaseOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = phaseOutcome{kind: phaseCrashed, err: fmt.Errorf("%v", r)}
		}
	}()

	ok, err := fn()
	switch {
	case errors.Is(err, ErrOperationNotImplemented):
		return phaseOutcome{kind: phaseNotImplemented}
	case err != nil:
		return phaseOutcome{kind: phaseCrashed, err: err}
	case !ok:
		return phaseOutcome{kind: phaseDeclinedFalse}
	default:
		return phaseOutcome{kind: phaseOK}
	}
}

// RunCheckPhase probes every job once (spec §4.5 check phase) and returns
// the survivors in the same order. A false return, an
// ErrOperationNotImplemented return, any other error, or a recovered panic
// removes the job with the matching §7 log phrasing.
func RunCheckPhase(jobs []*Job, clock Clock, log Logger) []*Job {
	survivors := make([]*Job, 0, len(jobs))
	for _, job := range jobs {
		start := clock.Now()
		outcome := callChecker(job)
		job.recordExecution("check", start, clock.Now().Sub(start), outcome.kind == phaseOK, outcome.err)

		switch outcome.kind {
		case phaseNotImplemented:
			log.Errorf("%s: no check() function. Disabling it.", job.ChartName)
		case phaseDeclinedFalse:
			log.Errorf("%s: check() function reports failure.", job.ChartName)
		case phaseCrashed:
			log.Errorf("%s: misbehaving. Reason: %v", job.ChartName, outcome.err)
		default:
			survivors = append(survivors, job)
		}
	}
	return survivors
}

// RunCreatePhase runs create() on every surviving job (spec §4.5 create
// phase), emitting the self-monitoring chart declaration on success, and
// returns the survivors.
func RunCreatePhase(jobs []*Job, clock Clock, proto *Protocol, log Logger) []*Job {
	survivors := make([]*Job, 0, len(jobs))
	for _, job := range jobs {
		start := clock.Now()
		outcome := callCreator(job)
		job.recordExecution("create", start, clock.Now().Sub(start), outcome.kind == phaseOK, outcome.err)

		switch outcome.kind {
		case phaseNotImplemented:
			log.Errorf("%s: no create() function. Disabling it.", job.ChartName)
		case phaseDeclinedFalse:
			log.Errorf("%s: create() function reports failure.", job.ChartName)
		case phaseCrashed:
			log.Errorf("%s: misbehaving. Reason: %v", job.ChartName, outcome.err)
		default:
			proto.ChartDeclaration(job.ChartName, job.Timetable.Freq)
			survivors = append(survivors, job)
		}
	}
	return survivors
}
