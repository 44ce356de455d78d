package core

// Collector is the full three-operation contract a module-constructed job
// instance satisfies (spec §3): check, create, update.
//
// Each method's three possible outcomes map directly onto spec §3's
// contract: (true, nil) is success, (false, nil) is a declared failure, and
// a non-nil error is "misbehaving" (spec §7 taxonomy item 3). A Check or
// Create that genuinely has nothing to do returns (true, nil) from BaseCollector
// — that is a success with zero extra output, not the same thing as
// ErrOperationNotImplemented, which is reserved for a collector that wants
// to report the rare "this operation doesn't exist" case (spec §7 taxonomy
// item 1) explicitly. A panic inside any of these methods is recovered by
// the caller and turned into the "misbehaving" outcome (see phaseOutcome in
// lifecycle.go).
type Collector interface {
	Check() (bool, error)
	Create() (bool, error)
	Update(sinceLastMicros int64) (bool, error)
}

// BaseCollector gives an embedding Collector trivial, always-succeeding
// Check and Create implementations, the way the teacher's BareJob is
// embedded by concrete job types to share default behavior. Most collectors
// only need to customize Update and embed this for the other two.
type BaseCollector struct{}

func (BaseCollector) Check() (bool, error)  { return true, nil }
func (BaseCollector) Create() (bool, error) { return true, nil }

// OutputCapturer is implemented by collectors that buffer the text they
// produce (out-of-process stdout, a Docker exec's relayed output) so the
// lifecycle driver and scheduler can attach it to the just-completed
// phase's Execution record for chartdctl inspect. Collectors with nothing
// to capture — the builtins, the dynamic-plugin loader's own Module — simply
// don't implement it, and recordExecution leaves Output empty.
type OutputCapturer interface {
	LastOutput() string
}

// JobConfig is a materialized mapping from string key to value, guaranteed
// to contain the three required keys (spec §3). Additional keys are
// opaque and passed through to the collector constructor unexamined.
type JobConfig map[string]any

// Int returns the integer value of key, or ok=false if absent or not an
// integer after the coercion rules spec §4.3 describes for config values.
func (c JobConfig) Int(key string) (int, bool) {
	v, found := c[key]
	if !found {
		return 0, false
	}
	return coerceInt(v)
}

// CoerceInt applies the same integer-coercion rule Int uses, for callers
// outside this package (the config materializer, §4.3) that need to coerce
// a raw YAML scalar the same way.
func CoerceInt(v any) (int, bool) {
	return coerceInt(v)
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		return 0, false // strings never coerce; caller falls through per §4.3
	default:
		return 0, false
	}
}

// RequiredUpdateEvery, RequiredPriority and RequiredRetries name the three
// keys every JobConfig must carry after materialization (spec §3).
const (
	RequiredUpdateEvery = "update_every"
	RequiredPriority    = "priority"
	RequiredRetries     = "retries"
)

// AttrSource is the optional attribute bag a Module exposes (spec §3):
// modules may declare default values for the three required keys.
type AttrSource interface {
	Attr(key string) (any, bool)
}

// Module is an opaque provider discovered at load time (spec §3). Name is
// derived from the module's filename with the discovery suffix stripped
// (spec §4.2); NewJob is the Job constructor taking a materialized
// configuration and an optional job name (nil for the single-job
// sentinel).
type Module interface {
	AttrSource
	Name() string
	NewJob(config JobConfig, jobName *string) (Collector, error)
}
