package scenario

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"ftpprobe/internal/protocol"
	"ftpprobe/internal/verify"
	"ftpprobe/pkg/logging"

	"github.com/google/uuid"
)

// Step names accepted by Suite.Only.
const (
	StepSFTP        = "sftp"
	StepFTP         = "ftp"
	StepSCPUpload   = "scp-upload"
	StepSCPDownload = "scp-download"
	StepKeys        = "keys"
)

// StepNames lists every step name in execution order.
var StepNames = []string{StepSFTP, StepFTP, StepSCPUpload, StepSCPDownload, StepKeys}

// Step is one scenario of a suite.
type Step struct {
	Name string
	Tag  string
	Run  func(ctx context.Context, r *Run) error
}

// Bases are the rendered base URLs of the backend under test.
type Bases struct {
	SFTP protocol.BaseURL
	FTP  protocol.BaseURL
}

// Suite selects what a run executes.
type Suite struct {
	Storage Storage
	Bases   Bases
	// Only restricts the suite to the named steps. Empty runs everything.
	Only []string
}

// UnknownStepError is returned when Only names a step that does not exist.
type UnknownStepError struct {
	Name string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step %q: must be one of %s", e.Name, strings.Join(StepNames, ", "))
}

// ValidateSteps checks names against StepNames.
func ValidateSteps(names []string) error {
	for _, name := range names {
		if !slices.Contains(StepNames, name) {
			return &UnknownStepError{Name: name}
		}
	}
	return nil
}

// Plan returns the ordered steps for the suite's storage. This is the only
// place where the backend decides what runs.
func (s Suite) Plan() ([]Step, error) {
	sftp, ftp := s.Bases.SFTP, s.Bases.FTP
	st := s.Storage

	scpDownload := Step{Name: StepSCPDownload, Tag: st.Tag("scp"), Run: func(ctx context.Context, r *Run) error {
		return r.SCPDownload(ctx, st.Tag("scp"))
	}}
	keyMatrix := Step{Name: StepKeys, Tag: "[key]", Run: func(ctx context.Context, r *Run) error {
		return r.Keys(ctx, sftp)
	}}

	if _, err := ParseStorage(string(st)); err != nil {
		return nil, err
	}

	var steps []Step
	if st.ReadOnly() {
		steps = []Step{
			{Name: StepSFTP, Tag: st.Tag("sftp"), Run: func(ctx context.Context, r *Run) error {
				return r.ReadOnlyCycle(ctx, sftp, st.Tag("sftp"))
			}},
			{Name: StepFTP, Tag: st.Tag("ftp"), Run: func(ctx context.Context, r *Run) error {
				return r.ReadOnlyCycle(ctx, ftp, st.Tag("ftp"))
			}},
			scpDownload,
			keyMatrix,
		}
	} else {
		steps = []Step{
			{Name: StepSFTP, Tag: st.Tag("sftp"), Run: func(ctx context.Context, r *Run) error {
				return r.Cycle(ctx, sftp, st.Tag("sftp"))
			}},
			{Name: StepFTP, Tag: st.Tag("ftp"), Run: func(ctx context.Context, r *Run) error {
				return r.Cycle(ctx, ftp, st.Tag("ftp"))
			}},
			{Name: StepSCPUpload, Tag: st.Tag("scp"), Run: func(ctx context.Context, r *Run) error {
				return r.SCPUpload(ctx, sftp, st.Tag("scp"))
			}},
			scpDownload,
			keyMatrix,
		}
	}

	if len(s.Only) == 0 {
		return steps, nil
	}
	if err := ValidateSteps(s.Only); err != nil {
		return nil, err
	}
	selected := steps[:0:0]
	for _, step := range steps {
		if slices.Contains(s.Only, step.Name) {
			selected = append(selected, step)
		}
	}
	return selected, nil
}

// Result is the outcome of one suite execution.
type Result struct {
	RunID    string         `json:"runId" yaml:"runId"`
	Storage  Storage        `json:"storage" yaml:"storage"`
	Started  time.Time      `json:"started" yaml:"started"`
	Finished time.Time      `json:"finished" yaml:"finished"`
	Steps    []string       `json:"steps" yaml:"steps"`
	Errors   []verify.Error `json:"errors" yaml:"errors"`
}

// Duration returns how long the suite ran.
func (r Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Passed reports whether no check failed.
func (r Result) Passed() bool {
	return len(r.Errors) == 0
}

// Execute runs every planned step of suite in order. Check failures are
// collected in the result; an error is returned only when the suite could
// not be planned or a step was interrupted by infrastructure failure.
// The partial result is returned in both cases.
func Execute(ctx context.Context, r *Run, suite Suite) (*Result, error) {
	result := &Result{
		RunID:   uuid.NewString(),
		Storage: suite.Storage,
		Started: time.Now(),
	}
	finish := func() {
		result.Finished = time.Now()
		result.Errors = r.Errors().All()
	}

	steps, err := suite.Plan()
	if err != nil {
		finish()
		return result, err
	}

	logging.Info("Scenario", "starting run %s for storage %s (%d steps)", result.RunID, suite.Storage, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			finish()
			return result, err
		}
		logging.Debug("Scenario", "step %s %s", step.Name, step.Tag)
		result.Steps = append(result.Steps, step.Name)
		if err := step.Run(ctx, r); err != nil {
			finish()
			return result, fmt.Errorf("step %s: %w", step.Name, err)
		}
	}

	finish()
	logging.Info("Scenario", "run %s finished in %s with %d errors", result.RunID, result.Duration().Round(time.Millisecond), len(result.Errors))
	return result, nil
}
