package warehouse

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRunReportFailed(t *testing.T) {
	report := NewRunReport()
	report.Add(StageResult{Stage: "dim_genre", Rows: 19})
	report.Add(StageResult{Stage: "dim_platform", Rows: 23})
	report.Finish()

	assert.False(t, report.Failed())
	assert.Empty(t, report.FailedStages())

	report.Add(StageResult{Stage: "dim_date", Err: errors.New("no parseable release date")})
	assert.True(t, report.Failed())
	assert.Len(t, report.FailedStages(), 1)
	assert.Equal(t, "dim_date", report.FailedStages()[0].Stage)
}

func TestRunReportIDsAreUnique(t *testing.T) {
	a := NewRunReport()
	b := NewRunReport()
	assert.NotEqual(t, a.ID, b.ID)
}
