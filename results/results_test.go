package results

import (
	"encoding/json"
	"testing"

	"github.com/boostsecurityio/dependafetch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchResultMarshal(t *testing.T) {
	tests := []struct {
		name     string
		result   FetchResult
		expected string
	}{
		{
			name:     "success without alerts",
			result:   NewSuccess("alpha", nil),
			expected: `{"repository":"alpha","status":"success","alerts":[]}`,
		},
		{
			name:     "success with alerts",
			result:   NewSuccess("alpha", []models.Alert{{Number: 3, State: "open"}}),
			expected: `{"repository":"alpha","status":"success","alerts":[{"number":3,"state":"open","html_url":"","security_advisory":{"ghsa_id":"","summary":"","severity":""},"dependency":{"package":{"ecosystem":"","name":""},"manifest_path":""}}]}`,
		},
		{
			name:     "failure",
			result:   NewFailure("beta", 403, "Insufficient permissions."),
			expected: `{"repository":"beta","status":"failure","error_code":403,"error_message":"Insufficient permissions."}`,
		},
		{
			name:     "transport failure keeps zero code",
			result:   NewFailure("gamma", 0, "Request failed"),
			expected: `{"repository":"gamma","status":"failure","error_code":0,"error_message":"Request failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out))
		})
	}
}

func TestSeveritySummaryTotal(t *testing.T) {
	s := SeveritySummary{Critical: 1, High: 2, Medium: 3, Low: 4}
	assert.Equal(t, 10, s.Total())
	assert.Equal(t, 0, SeveritySummary{}.Total())

	assert.Equal(t, 1, s.Count(models.SeverityCritical))
	assert.Equal(t, 2, s.Count(models.SeverityHigh))
	assert.Equal(t, 3, s.Count(models.SeverityMedium))
	assert.Equal(t, 4, s.Count(models.SeverityLow))
	assert.Equal(t, 0, s.Count(models.Severity("unknown")))
}

func TestReportCounts(t *testing.T) {
	report := &Report{
		Results: []FetchResult{
			NewSuccess("alpha", nil),
			NewFailure("beta", 401, "Unauthorized"),
			NewSuccess("gamma", nil),
		},
		Summaries: []RepoSummary{
			{Repository: "alpha", Summary: SeveritySummary{High: 2}},
			{Repository: "gamma"},
		},
	}

	assert.Equal(t, 3, report.TotalCount())
	assert.Equal(t, 2, report.SuccessCount())
	assert.Equal(t, 1, report.FailureCount())

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "beta", failures[0].Repository)
}
