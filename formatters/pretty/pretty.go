package pretty

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/boostsecurityio/dependafetch/models"
	"github.com/boostsecurityio/dependafetch/results"
	"github.com/olekukonko/tablewriter"
)

type Format struct {
	out io.Writer
}

func NewFormat(out io.Writer) *Format {
	return &Format{out: out}
}

func (f *Format) writer() io.Writer {
	if f.out == nil {
		return os.Stdout
	}
	return f.out
}

func (f *Format) Format(ctx context.Context, report *results.Report) error {
	out := f.writer()

	fmt.Fprint(out, "Summary:\n")
	fmt.Fprintf(out, "Total repositories: %d\n", report.TotalCount())
	fmt.Fprintf(out, "Successful fetches: %d\n", report.SuccessCount())
	fmt.Fprintf(out, "Failed fetches: %d\n", report.FailureCount())

	if len(report.Summaries) > 0 {
		fmt.Fprint(out, "\nAlerts by Severity:\n")
		for _, s := range report.Summaries {
			if err := printSeverityTable(out, s); err != nil {
				return err
			}
		}
	}

	if failures := report.Failures(); len(failures) > 0 {
		fmt.Fprint(out, "\nFailed repositories:\n")
		if err := printFailuresTable(out, failures); err != nil {
			return err
		}
	}

	return nil
}

func (f *Format) FormatRepos(ctx context.Context, owner string, repos []models.Repository) error {
	out := f.writer()
	fmt.Fprintf(out, "Repositories under %s:\n", owner)
	for _, repo := range repos {
		fmt.Fprintf(out, "- %s\n", repo.Name)
	}
	return nil
}

func (f *Format) FormatRepoError(ctx context.Context, owner string, statusCode int, body string) error {
	out := f.writer()
	fmt.Fprintf(out, "Failed to fetch repositories: %d\n", statusCode)
	fmt.Fprintln(out, body)
	return nil
}

func printSeverityTable(out io.Writer, s results.RepoSummary) error {
	fmt.Fprintf(out, "\nRepository: %s\n", s.Repository)

	table := tablewriter.NewWriter(out)
	table.Header("Severity", "Count")
	for _, severity := range models.Severities {
		_ = table.Append([]string{severity.Title(), strconv.Itoa(s.Summary.Count(severity))})
	}
	_ = table.Append([]string{"Total Vulnerabilities", strconv.Itoa(s.Summary.Total())})

	return table.Render()
}

func printFailuresTable(out io.Writer, failures []results.FetchResult) error {
	table := tablewriter.NewWriter(out)
	table.Header("Repository", "Code", "Message")
	for _, failure := range failures {
		_ = table.Append([]string{failure.Repository, strconv.Itoa(failure.ErrorCode), failure.ErrorMessage})
	}

	return table.Render()
}
