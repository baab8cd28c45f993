package results

import (
	"bytes"
	"encoding/json"

	"github.com/boostsecurityio/dependafetch/models"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// FetchResult is the outcome of fetching the alerts of one repository.
// Alerts is only meaningful on success, ErrorCode and ErrorMessage on failure.
type FetchResult struct {
	Repository   string
	Status       Status
	Alerts       []models.Alert
	ErrorCode    int
	ErrorMessage string
}

func NewSuccess(repository string, alerts []models.Alert) FetchResult {
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return FetchResult{
		Repository: repository,
		Status:     StatusSuccess,
		Alerts:     alerts,
	}
}

func NewFailure(repository string, code int, message string) FetchResult {
	return FetchResult{
		Repository:   repository,
		Status:       StatusFailure,
		ErrorCode:    code,
		ErrorMessage: message,
	}
}

func (r FetchResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

func (r FetchResult) MarshalJSON() ([]byte, error) {
	if r.IsSuccess() {
		alerts := r.Alerts
		if alerts == nil {
			alerts = []models.Alert{}
		}
		return marshal(struct {
			Repository string         `json:"repository"`
			Status     Status         `json:"status"`
			Alerts     []models.Alert `json:"alerts"`
		}{r.Repository, r.Status, alerts})
	}

	return marshal(struct {
		Repository   string `json:"repository"`
		Status       Status `json:"status"`
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	}{r.Repository, r.Status, r.ErrorCode, r.ErrorMessage})
}

// marshal encodes v without escaping HTML characters, so raw alerts are
// written as received.
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type SeveritySummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Count returns the number of alerts in the bucket of severity.
func (s SeveritySummary) Count(severity models.Severity) int {
	switch severity {
	case models.SeverityCritical:
		return s.Critical
	case models.SeverityHigh:
		return s.High
	case models.SeverityMedium:
		return s.Medium
	case models.SeverityLow:
		return s.Low
	}
	return 0
}

func (s SeveritySummary) Total() int {
	return s.Critical + s.High + s.Medium + s.Low
}

type RepoSummary struct {
	Repository string
	Summary    SeveritySummary
}

// Report holds one FetchResult per requested repository and one summary per
// successful fetch, both in the order the repositories were requested.
type Report struct {
	Owner     string
	Results   []FetchResult
	Summaries []RepoSummary
}

func (r *Report) TotalCount() int {
	return len(r.Results)
}

func (r *Report) SuccessCount() int {
	count := 0
	for _, result := range r.Results {
		if result.IsSuccess() {
			count++
		}
	}
	return count
}

func (r *Report) FailureCount() int {
	return r.TotalCount() - r.SuccessCount()
}

func (r *Report) Failures() []FetchResult {
	var failures []FetchResult
	for _, result := range r.Results {
		if !result.IsSuccess() {
			failures = append(failures, result)
		}
	}
	return failures
}

