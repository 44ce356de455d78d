package config

import (
	"fmt"

	"github.com/distribution/reference"
	"github.com/go-playground/validator/v10"

	"github.com/netresearch/chartd/core"
)

// Validate is the shared validator instance, mirroring the teacher's
// package-level configValidator in cli/config_validate.go: one registration
// point, reused by every package that needs to validate materialized
// configuration.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("dockerref", validateDockerRef); err != nil {
		panic(err)
	}
	return v
}

// validateDockerRef implements the "dockerref" tag the dockerexec collector
// uses on its container-reference field: the value must parse as a Docker
// image/container reference.
func validateDockerRef(fl validator.FieldLevel) bool {
	_, err := reference.ParseNormalizedNamed(fl.Field().String())
	return err == nil
}

// requiredKeys is the shape validated by ValidateJobConfig: just the three
// keys every JobConfig is guaranteed to carry after materialization.
type requiredKeys struct {
	UpdateEvery int `validate:"gte=1"`
	Priority    int
	Retries     int `validate:"gte=0"`
}

// ValidateJobConfig checks the three required keys of a materialized
// JobConfig (spec §3's invariant). A failure here is a job construction
// failure (spec §7): only the offending job is skipped.
func ValidateJobConfig(cfg core.JobConfig) error {
	updateEvery, _ := cfg.Int(core.RequiredUpdateEvery)
	priority, _ := cfg.Int(core.RequiredPriority)
	retries, _ := cfg.Int(core.RequiredRetries)

	if err := Validate.Struct(requiredKeys{UpdateEvery: updateEvery, Priority: priority, Retries: retries}); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}
	return nil
}
