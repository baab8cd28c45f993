package cmd

import (
	"fmt"
	"os"

	"github.com/boostsecurityio/dependafetch/formatters/pretty"
	"github.com/spf13/cobra"
)

// listReposCmd represents the list_repos command
var listReposCmd = &cobra.Command{
	Use:   "list_repos",
	Short: "Lists the repositories of the manifest owner",
	Long: `Lists the repositories owned by the account named in the manifest.
The repositories listed in the manifest are ignored.
Example: dependafetch list_repos
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		analyzer, err := GetAnalyzer(ctx, cfg, nil)
		if err != nil {
			return err
		}

		if err := analyzer.ListRepos(ctx, pretty.NewFormat(os.Stdout)); err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listReposCmd)
}
