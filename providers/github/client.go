package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/boostsecurityio/dependafetch/analyze"
	"github.com/boostsecurityio/dependafetch/models"
	"github.com/rs/zerolog/log"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

const GitHub string = "github"

// tokenType is sent as the Authorization scheme, i.e. "Authorization: token <TOKEN>".
const tokenType = "token"

var _ analyze.ScmClient = (*ScmClient)(nil)

// NewGithubSCMClient creates a client for the public GitHub API, or for the
// API served at baseURL when it is not empty.
func NewGithubSCMClient(ctx context.Context, baseURL string, token string) (*ScmClient, error) {
	client, err := NewClient(ctx, token, baseURL)
	if err != nil {
		return nil, err
	}

	return &ScmClient{
		client:  client,
		baseURL: client.restClient.BaseURL.String(),
	}, nil
}

type ScmClient struct {
	client  *Client
	baseURL string
}

func (s *ScmClient) GetRepoAlerts(ctx context.Context, owner string, repo string) ([]models.Alert, error) {
	return s.client.GetRepoAlerts(ctx, owner, repo)
}

func (s *ScmClient) GetOwnerRepos(ctx context.Context, owner string) ([]models.Repository, error) {
	return s.client.GetOwnerRepos(ctx, owner)
}

func (s *ScmClient) GetProviderName() string {
	return GitHub
}

func (s *ScmClient) GetProviderBaseURL() string {
	return s.baseURL
}

type Client struct {
	restClient *github.Client
}

func NewClient(ctx context.Context, token string, baseURL string) (*Client, error) {
	if token == "" {
		return nil, errors.New("github token must not be empty")
	}

	var (
		src = oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token, TokenType: tokenType},
		)
		base       = &http.Client{Transport: &loggingTransport{}}
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), src)
		restClient = github.NewClient(httpClient)
		err        error
	)

	if baseURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github base url %q: %w", baseURL, err)
		}
	}

	return &Client{
		restClient: restClient,
	}, nil
}

// GetRepoAlerts returns the first page of Dependabot alerts of owner/repo.
// 401 and 403 responses are reported as *UnauthorizedError and *ForbiddenError.
func (c *Client) GetRepoAlerts(ctx context.Context, owner string, repo string) ([]models.Alert, error) {
	u := fmt.Sprintf("repos/%v/%v/dependabot/alerts", owner, repo)

	var alerts []models.Alert
	err := c.get(ctx, u, &alerts)
	if err != nil {
		var statusErr *UnexpectedStatusError
		if errors.As(err, &statusErr) {
			switch statusErr.Code {
			case http.StatusUnauthorized:
				return nil, &UnauthorizedError{}
			case http.StatusForbidden:
				return nil, &ForbiddenError{}
			}
		}
		return nil, err
	}

	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

// GetOwnerRepos returns the first page of repositories owned by a user.
func (c *Client) GetOwnerRepos(ctx context.Context, owner string) ([]models.Repository, error) {
	u := fmt.Sprintf("users/%v/repos", owner)

	var repos []models.Repository
	if err := c.get(ctx, u, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) get(ctx context.Context, u string, v interface{}) error {
	req, err := c.restClient.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create github request: %w", err)
	}

	res, err := c.restClient.BareDo(ctx, req)
	if err != nil {
		if res == nil || res.Response == nil {
			return &TransportError{Err: err}
		}
		log.Debug().Err(err).Str("path", u).Msg("github returned an error response")
		return &UnexpectedStatusError{Code: res.StatusCode, Body: readBody(res.Body)}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &UnexpectedStatusError{Code: res.StatusCode, Body: readBody(res.Body)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

func readBody(body io.ReadCloser) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(data)
}
