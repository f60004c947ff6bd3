package bootstrap

import (
	"fmt"

	"github.com/starterkit/starterkit/internal/pkgname"
)

// Step names a stage of the flow.
type Step string

const (
	StepValidateName Step = "validate-name"
	StepPrepareDir   Step = "prepare-dir"
	StepFetch        Step = "fetch"
	StepEnv          Step = "env"
	StepInstall      Step = "install"
)

// StepError is returned by Run when a stage fails. Every failure is fatal for
// the flow; partially written content is left on disk.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NameError reports a project name that cannot be used for a new package.
type NameError struct {
	Result *pkgname.Result
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid project name %q", e.Result.Name)
}
