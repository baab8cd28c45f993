package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/boostsecurityio/dependafetch/analyze"
	"github.com/boostsecurityio/dependafetch/config"
	"github.com/boostsecurityio/dependafetch/formatters/json"
	"github.com/boostsecurityio/dependafetch/formatters/pretty"
	"github.com/boostsecurityio/dependafetch/formatters/sarif"
	"github.com/boostsecurityio/dependafetch/models"
	"github.com/boostsecurityio/dependafetch/providers/scm"
	scm_domain "github.com/boostsecurityio/dependafetch/providers/scm/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
)

var Format string
var Verbose bool
var ScmProvider string
var ScmBaseURL scm_domain.ScmBaseDomain
var (
	Version string
	Commit  string
	Date    string
)
var token string
var cfgFile string
var manifestFile string

const (
	exitCodeErr       = 1
	exitCodeInterrupt = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dependafetch",
	Short: "Summarizes Dependabot alerts across a list of GitHub repositories",
	Long: `Summarizes Dependabot alerts across a list of GitHub repositories.

Settings are read from a project-level .env file, which must set GLOBAL_ENV_PATH
to a global .env file providing GITHUB_TOKEN. Repositories are listed in Repo_List.yml:

  owner: my-user
  repositories:
    - my-repo`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		output := zerolog.ConsoleWriter{Out: os.Stderr}
		output.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		}
		log.Logger = log.Output(output)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		cancel()
	}()

	go func() {
		select {
		case <-signalChan: // first signal, cancel context
			cancel()
		case <-ctx.Done():
			return
		}
		<-signalChan // second signal, hard exit
		os.Exit(exitCodeInterrupt)
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(exitCodeErr)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultProjectEnvFile, "project settings file")
	rootCmd.PersistentFlags().StringVarP(&manifestFile, "manifest", "m", config.DefaultManifestFile, "repository manifest file")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "GitHub access token (env: GITHUB_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&ScmProvider, "scm", "s", scm.GitHub, "SCM platform (github)")
	rootCmd.PersistentFlags().VarP(&ScmBaseURL, "scm-base-url", "b", "Base URI of a GitHub Enterprise Server API (optional)")

	_ = viper.BindPFlag(config.TokenKey, rootCmd.PersistentFlags().Lookup("token"))
}

func GetFormatter() analyze.Formatter {
	switch Format {
	case "pretty":
		return pretty.NewFormat(os.Stdout)
	case "json":
		return json.NewFormat(os.Stdout)
	case "sarif":
		return sarif.NewFormat(os.Stdout, Version)
	}
	return pretty.NewFormat(os.Stdout)
}

// LoadConfig resolves the settings files, the token and the manifest. It fails
// before any request is made.
func LoadConfig() (*models.Config, error) {
	loader := config.NewLoader(viper.GetViper(), cfgFile, manifestFile)
	return loader.Load()
}

func GetAnalyzer(ctx context.Context, cfg *models.Config, formatter analyze.Formatter) (*analyze.Analyzer, error) {
	scmClient, err := scm.NewScmClient(ctx, ScmProvider, ScmBaseURL.APIBaseURL(), cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create SCM client: %w", err)
	}

	return analyze.NewAnalyzer(scmClient, formatter, cfg), nil
}
