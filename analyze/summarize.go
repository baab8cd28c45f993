package analyze

import (
	"github.com/boostsecurityio/dependafetch/models"
	"github.com/boostsecurityio/dependafetch/results"
)

// Summarize counts open alerts per severity. Alerts that are not open, or
// whose severity is not one of the four recognized values, are not counted.
func Summarize(alerts []models.Alert) results.SeveritySummary {
	var summary results.SeveritySummary

	for _, alert := range alerts {
		if !alert.IsOpen() {
			continue
		}

		severity, ok := models.ParseSeverity(alert.SecurityAdvisory.Severity)
		if !ok {
			continue
		}

		switch severity {
		case models.SeverityCritical:
			summary.Critical++
		case models.SeverityHigh:
			summary.High++
		case models.SeverityMedium:
			summary.Medium++
		case models.SeverityLow:
			summary.Low++
		}
	}

	return summary
}
