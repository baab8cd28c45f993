package cmd

import (
	"fmt"

	"github.com/boostsecurityio/dependafetch/formatters/json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var threads int
var outputFile string

// fetchAlertsCmd represents the fetch_alerts command
var fetchAlertsCmd = &cobra.Command{
	Use:   "fetch_alerts",
	Short: "Fetches and summarizes the Dependabot alerts of the repositories in the manifest",
	Long: `Fetches the Dependabot alerts of every repository listed in the manifest,
prints the number of open alerts per severity and saves every response to a report file.
Example: dependafetch fetch_alerts --output report.json

Note: only the first page of alerts is fetched for each repository.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		log.Info().Msg("Loading configuration")
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		analyzer, err := GetAnalyzer(ctx, cfg, GetFormatter())
		if err != nil {
			return err
		}

		report, err := analyzer.AnalyzeRepos(ctx, &threads)
		if err != nil {
			return fmt.Errorf("failed to fetch alerts for %s: %w", cfg.Owner, err)
		}

		if err := json.WriteReportFile(outputFile, report); err != nil {
			return err
		}
		log.Info().Str("path", outputFile).Msg("Results saved")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchAlertsCmd)

	fetchAlertsCmd.Flags().StringVarP(&Format, "format", "f", "pretty", "Output format (pretty, json, sarif)")
	fetchAlertsCmd.Flags().StringVarP(&outputFile, "output", "o", json.DefaultReportFile, "Report file, overwritten on every run")
	fetchAlertsCmd.Flags().IntVarP(&threads, "threads", "j", 1, "Number of repositories fetched in parallel")
}
