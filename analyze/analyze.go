// Package analyze fetches the Dependabot alerts of a list of repositories and
// aggregates them by severity.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/boostsecurityio/dependafetch/models"
	"github.com/boostsecurityio/dependafetch/results"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"
)

type ScmClient interface {
	GetRepoAlerts(ctx context.Context, owner string, repo string) ([]models.Alert, error)
	GetOwnerRepos(ctx context.Context, owner string) ([]models.Repository, error)
	GetProviderName() string
	GetProviderBaseURL() string
}

type Formatter interface {
	Format(ctx context.Context, report *results.Report) error
}

type RepoFormatter interface {
	FormatRepos(ctx context.Context, owner string, repos []models.Repository) error
	FormatRepoError(ctx context.Context, owner string, statusCode int, body string) error
}

type statusCoder interface {
	StatusCode() int
}

type statusResponse interface {
	StatusCode() int
	ResponseBody() string
}

type Analyzer struct {
	ScmClient      ScmClient
	Formatter      Formatter
	Config         *models.Config
	ProgressWriter io.Writer
}

func NewAnalyzer(scmClient ScmClient, formatter Formatter, config *models.Config) *Analyzer {
	return &Analyzer{
		ScmClient:      scmClient,
		Formatter:      formatter,
		Config:         config,
		ProgressWriter: os.Stderr,
	}
}

// AnalyzeRepos fetches the alerts of every configured repository with at most
// numberOfGoroutines requests in flight. Results keep the configured order.
func (a *Analyzer) AnalyzeRepos(ctx context.Context, numberOfGoroutines *int) (*results.Report, error) {
	owner := a.Config.Owner
	repos := a.Config.Repositories
	provider := a.ScmClient.GetProviderName()

	log.Info().Msgf("Starting to fetch Dependabot alerts for %d repositories", len(repos))
	log.Debug().Msgf("Owner: %s, Provider: %s, Base URL: %s", owner, provider, a.ScmClient.GetProviderBaseURL())

	progressWriter := a.ProgressWriter
	if progressWriter == nil {
		progressWriter = io.Discard
	}
	bar := progressbar.NewOptions(
		len(repos),
		progressbar.OptionSetDescription("Fetching alerts"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(progressWriter),
	)

	maxGoroutines := 1
	if numberOfGoroutines != nil && *numberOfGoroutines > 0 {
		maxGoroutines = *numberOfGoroutines
	}
	sem := semaphore.NewWeighted(int64(maxGoroutines))

	var wg sync.WaitGroup
	fetched := make([]results.FetchResult, len(repos))

	for i, repo := range repos {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("failed to acquire semaphore: %w", err)
		}

		wg.Add(1)
		go func(i int, repo string) {
			defer sem.Release(1)
			defer wg.Done()
			fetched[i] = a.fetchRepo(ctx, owner, repo)
			_ = bar.Add(1)
		}(i, repo)
	}
	wg.Wait()

	fmt.Fprint(progressWriter, "\n\n")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := NewReport(owner, fetched)
	if a.Formatter != nil {
		if err := a.Formatter.Format(ctx, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// ListRepos prints the repositories of the configured owner. An error status
// from the API is handed to the formatter rather than returned.
func (a *Analyzer) ListRepos(ctx context.Context, formatter RepoFormatter) error {
	owner := a.Config.Owner

	log.Debug().Msgf("Fetching list of repositories for %s on %s", owner, a.ScmClient.GetProviderName())
	repos, err := a.ScmClient.GetOwnerRepos(ctx, owner)
	if err != nil {
		var statusErr statusResponse
		if errors.As(err, &statusErr) {
			return formatter.FormatRepoError(ctx, owner, statusErr.StatusCode(), statusErr.ResponseBody())
		}
		return fmt.Errorf("failed to list repositories of %s: %w", owner, err)
	}

	return formatter.FormatRepos(ctx, owner, repos)
}

func (a *Analyzer) fetchRepo(ctx context.Context, owner string, repo string) results.FetchResult {
	repoNameWithOwner := owner + "/" + repo
	log.Debug().Str("repo", repoNameWithOwner).Msg("Fetching alerts")

	alerts, err := a.ScmClient.GetRepoAlerts(ctx, owner, repo)
	if err != nil {
		failure := failureFromError(repo, err)
		log.Warn().Str("repo", repoNameWithOwner).Int("status", failure.ErrorCode).Msg(failure.ErrorMessage)
		return failure
	}

	log.Info().Str("repo", repoNameWithOwner).Int("alerts", len(alerts)).Msg("Fetched alerts")
	return results.NewSuccess(repo, alerts)
}

func failureFromError(repo string, err error) results.FetchResult {
	var coded statusCoder
	if errors.As(err, &coded) {
		return results.NewFailure(repo, coded.StatusCode(), err.Error())
	}
	return results.NewFailure(repo, 0, fmt.Sprintf("Request failed: %v", err))
}

// NewReport summarizes every successful result, keeping the order of results.
// A repository listed more than once gets a single summary, placed where it
// first appears and holding the last successful fetch.
func NewReport(owner string, fetched []results.FetchResult) *results.Report {
	report := &results.Report{
		Owner:     owner,
		Results:   fetched,
		Summaries: []results.RepoSummary{},
	}
	if report.Results == nil {
		report.Results = []results.FetchResult{}
	}

	index := map[string]int{}
	for _, result := range report.Results {
		if !result.IsSuccess() {
			continue
		}
		summary := results.RepoSummary{
			Repository: result.Repository,
			Summary:    Summarize(result.Alerts),
		}
		if i, ok := index[result.Repository]; ok {
			report.Summaries[i] = summary
			continue
		}
		index[result.Repository] = len(report.Summaries)
		report.Summaries = append(report.Summaries, summary)
	}

	return report
}
