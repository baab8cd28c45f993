package sarif

import (
	"context"
	"fmt"
	"io"

	"github.com/boostsecurityio/dependafetch/models"
	"github.com/boostsecurityio/dependafetch/results"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

func NewFormat(out io.Writer, version string) *Format {
	return &Format{
		out:     out,
		version: version,
	}
}

type Format struct {
	out     io.Writer
	version string
}

var severityLevels = map[models.Severity]string{
	models.SeverityCritical: "error",
	models.SeverityHigh:     "error",
	models.SeverityMedium:   "warning",
	models.SeverityLow:      "note",
}

// Format emits one result per open alert with a recognized severity, the same
// alerts that are counted in the severity summary.
func (f *Format) Format(ctx context.Context, report *results.Report) error {
	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("dependafetch", "https://github.com/boostsecurityio/dependafetch")
	run.Tool.Driver.WithSemanticVersion(f.version)
	run.Properties = map[string]interface{}{
		"owner": report.Owner,
	}

	for _, result := range report.Results {
		if !result.IsSuccess() {
			continue
		}

		for _, alert := range result.Alerts {
			if !alert.IsOpen() {
				continue
			}
			severity, ok := models.ParseSeverity(alert.SecurityAdvisory.Severity)
			if !ok {
				continue
			}

			ruleId := alert.SecurityAdvisory.GhsaId
			if ruleId == "" {
				ruleId = fmt.Sprintf("dependabot-alert-%d", alert.Number)
			}

			rule := run.AddRule(ruleId).
				WithName(ruleId).
				WithDescription(alert.SecurityAdvisory.Summary)
			if alert.SecurityAdvisory.GhsaId != "" {
				ruleUrl := "https://github.com/advisories/" + alert.SecurityAdvisory.GhsaId
				rule.WithHelpURI(ruleUrl).WithTextHelp(ruleUrl)
			}

			path := result.Repository
			if alert.Dependency.ManifestPath != "" {
				path += "/" + alert.Dependency.ManifestPath
			}
			run.AddDistinctArtifact(path)

			sarifResult := run.CreateResultForRule(ruleId).
				WithLevel(severityLevels[severity]).
				WithMessage(sarif.NewTextMessage(alertMessage(result.Repository, alert))).
				WithPartialFingerPrints(map[string]interface{}{
					"primaryLocationLineHash": fmt.Sprintf("%s/%s#%d", report.Owner, result.Repository, alert.Number),
				})
			sarifResult.AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(
							sarif.NewSimpleArtifactLocation(path),
						).
						WithRegion(
							sarif.NewSimpleRegion(1, 1),
						),
				),
			)
			if purl, err := alert.Purl(); err == nil {
				sarifResult.Properties = map[string]interface{}{
					"package": purl.FullName(),
					"purl":    purl.String(),
				}
			}
		}
	}

	sarifReport.AddRun(run)

	return sarifReport.PrettyWrite(f.out)
}

func alertMessage(repo string, alert models.Alert) string {
	dependency := alert.Dependency.Package.Name
	if purl, err := alert.Purl(); err == nil {
		dependency = purl.String()
	}

	message := fmt.Sprintf("%s severity alert in %s", alert.SecurityAdvisory.Severity, repo)
	if dependency != "" {
		message += " for " + dependency
	}
	if alert.SecurityAdvisory.Summary != "" {
		message += ": " + alert.SecurityAdvisory.Summary
	}
	return message
}
