package scm

import (
	"context"
	"fmt"

	"github.com/boostsecurityio/dependafetch/analyze"
	"github.com/boostsecurityio/dependafetch/providers/github"
)

const GitHub string = "github"

func NewScmClient(ctx context.Context, providerType string, baseURL string, token string) (analyze.ScmClient, error) {
	if token == "" {
		return nil, fmt.Errorf("token must be provided via --token flag or GITHUB_TOKEN environment variable")
	}
	switch providerType {
	case "", GitHub:
		return github.NewGithubSCMClient(ctx, baseURL, token)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
