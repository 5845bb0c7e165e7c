package warehouse

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// StageResult is the typed outcome of one pipeline stage: either a row count
// or a failure cause. Stage failures never propagate past the stage boundary;
// the orchestrator records them here and moves on.
type StageResult struct {
	Stage    string        `json:"stage"`
	Rows     int64         `json:"rows"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Elapsed  time.Duration `json:"-"`
	Duration string        `json:"duration"`
}

func (r StageResult) Failed() bool {
	return r.Err != nil
}

// RunReport aggregates the stage results of one pipeline run.
type RunReport struct {
	ID         uuid.UUID     `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Stages     []StageResult `json:"stages"`
}

func NewRunReport() *RunReport {
	return &RunReport{
		ID:        uuid.NewV4(),
		StartedAt: time.Now().UTC(),
	}
}

func (r *RunReport) Add(result StageResult) {
	r.Stages = append(r.Stages, result)
}

func (r *RunReport) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Failed reports whether any stage of the run failed. Callers turn this into
// a non-zero exit code or HTTP status; the run itself never aborts early on a
// stage failure.
func (r *RunReport) Failed() bool {
	for _, s := range r.Stages {
		if s.Failed() {
			return true
		}
	}
	return false
}

func (r *RunReport) FailedStages() []StageResult {
	var failed []StageResult
	for _, s := range r.Stages {
		if s.Failed() {
			failed = append(failed, s)
		}
	}
	return failed
}
