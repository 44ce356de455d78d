package core

import "errors"

// Sentinel errors for the spec §7 failure taxonomy, wrapped with
// fmt.Errorf("...: %w", ...) at each boundary the way the teacher's
// core/errors.go and core/domain/errors.go do.
var (
	// ErrModulesDirMissing is a fatal environment condition (spec §7):
	// the resolved MODULES_DIR does not exist.
	ErrModulesDirMissing = errors.New("modules directory does not exist")

	// ErrNoModulesLoaded is fatal: every explicitly selected module was
	// in the disable list, or discovery mode found nothing.
	ErrNoModulesLoaded = errors.New("no modules loaded")

	// ErrNoJobsSurvived is fatal: the live job list became empty after
	// the check phase, or the scheduler ran a pass down to zero jobs.
	ErrNoJobsSurvived = errors.New("no jobs left to run")

	// ErrModuleLoadFailed marks an explicitly selected module that failed
	// to load (fatal). Discovery mode logs its load failures and skips them
	// without this sentinel.
	ErrModuleLoadFailed = errors.New("failed to load module")

	// ErrJobConstructionFailed marks a single job's NewJob call failing;
	// only that job is skipped (spec §7).
	ErrJobConstructionFailed = errors.New("failed to construct job")

	// ErrOperationNotImplemented corresponds to phase failure subcategory
	// 1 in spec §7: a collector returns it from Check, Create or Update to
	// report that it has no such operation.
	ErrOperationNotImplemented = errors.New("no such operation")

	// ErrOperationDeclinedFalse corresponds to subcategory 2: the
	// operation returned false.
	ErrOperationDeclinedFalse = errors.New("operation reports failure")

	// ErrEmptyCommand is returned by the subprocess collector when its
	// command string tokenizes to nothing.
	ErrEmptyCommand = errors.New("empty command")

	// ErrJobNotFound is returned by chartdctl inspect for an unknown job.
	ErrJobNotFound = errors.New("job not found")

	// ErrDisabledByConfig signals the voluntary-disable path (spec §4.1,
	// §8 scenario 5): python.d.conf's "enabled" key is false. It emits the
	// same DISABLE line a fatal condition does, but exits 0, not 1 — it is
	// not a member of the Fatal-environment taxonomy in spec §7.
	ErrDisabledByConfig = errors.New("disabled by configuration")
)
