package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/boostsecurityio/dependafetch/results"
)

const DefaultReportFile = "dependabot_alerts_report.json"

func NewFormat(out io.Writer) *Format {
	return &Format{
		out: out,
	}
}

type Format struct {
	out io.Writer
}

func (f *Format) Format(ctx context.Context, report *results.Report) error {
	return WriteReport(f.out, report)
}

// WriteReport writes every fetch result of report as an indented JSON array.
func WriteReport(out io.Writer, report *results.Report) error {
	fetched := report.Results
	if fetched == nil {
		fetched = []results.FetchResult{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(fetched); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteReportFile writes the report to path, replacing any existing file.
func WriteReportFile(path string, report *results.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := WriteReport(file, report); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
