// Package github manages the git hosting side of generation runs: branches
// for generated changes, draft pull requests, and labels.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/wasilva/rendimento-code-generator/internal/config"
	"github.com/wasilva/rendimento-code-generator/internal/logging"
)

// Client handles interactions with the GitHub API.
type Client struct {
	client *github.Client
}

// PullRequest identifies a created pull request.
type PullRequest struct {
	// Number is the pull request number in the repository
	Number int

	// URL is the pull request's web address
	URL string
}

// PullRequestParams describes the pull request to open for a generation
// run.
type PullRequestParams struct {
	// Title is the pull request title
	Title string

	// Head is the branch carrying the generated changes
	Head string

	// Base is the branch to merge into
	Base string

	// Body is the pull request description
	Body string

	// Draft opens the pull request as a draft
	Draft bool
}

// NewClient creates a GitHub API client from the environment
// configuration and verifies the token with a self-test request.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}
	if err := cfg.ValidateGitHub(); err != nil {
		return nil, err
	}

	logging.Debug("creating github client",
		"domain", cfg.GitHubDomain,
		"token", logging.MaskSensitive(cfg.GitHubToken))

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
	tc := oauth2.NewClient(ctx, ts)

	var client *github.Client
	if cfg.GitHubDomain == "" {
		client = github.NewClient(tc)
	} else {
		baseURL := apiBaseURL(cfg.GitHubDomain)
		client, err = github.NewEnterpriseClient(baseURL, baseURL, tc)
		if err != nil {
			return nil, fmt.Errorf("failed to create github enterprise client: %v", err)
		}
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to verify github credentials: %v", err)
	}
	logging.Debug("github authentication verified", "user", user.GetLogin())

	return &Client{client: client}, nil
}

// GetDefaultBranch returns the repository's default branch name.
func (c *Client) GetDefaultBranch(repository string) (string, error) {
	owner, name, err := parseRepository(repository)
	if err != nil {
		return "", err
	}

	repo, _, err := c.client.Repositories.Get(context.Background(), owner, name)
	if err != nil {
		return "", fmt.Errorf("failed to fetch repository %s: %v", repository, err)
	}
	return repo.GetDefaultBranch(), nil
}

// CreateBranch creates branchName pointing at the head of baseBranch. A
// branch that already exists is left untouched so reruns of the same work
// item do not fail.
func (c *Client) CreateBranch(repository, branchName, baseBranch string) error {
	owner, name, err := parseRepository(repository)
	if err != nil {
		return err
	}
	ctx := context.Background()

	newRef := "refs/heads/" + branchName
	if _, _, err := c.client.Git.GetRef(ctx, owner, name, newRef); err == nil {
		logging.Debug("branch already exists", "repository", repository, "branch", branchName)
		return nil
	}

	baseRef, _, err := c.client.Git.GetRef(ctx, owner, name, "refs/heads/"+baseBranch)
	if err != nil {
		return fmt.Errorf("failed to resolve base branch %s: %v", baseBranch, err)
	}

	_, _, err = c.client.Git.CreateRef(ctx, owner, name, &github.Reference{
		Ref:    github.String(newRef),
		Object: &github.GitObject{SHA: baseRef.Object.SHA},
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %v", branchName, err)
	}

	logging.Info("created branch",
		"repository", repository,
		"branch", branchName,
		"base", baseBranch)
	return nil
}

// CreatePullRequest opens a pull request for a generation run.
func (c *Client) CreatePullRequest(repository string, params PullRequestParams) (*PullRequest, error) {
	owner, name, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	pr, _, err := c.client.PullRequests.Create(context.Background(), owner, name, &github.NewPullRequest{
		Title: github.String(params.Title),
		Head:  github.String(params.Head),
		Base:  github.String(params.Base),
		Body:  github.String(params.Body),
		Draft: github.Bool(params.Draft),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request in %s: %v", repository, err)
	}

	logging.Info("created pull request",
		"repository", repository,
		"number", pr.GetNumber(),
		"url", pr.GetHTMLURL())
	return &PullRequest{Number: pr.GetNumber(), URL: pr.GetHTMLURL()}, nil
}

// AddLabels attaches labels to an issue or pull request, creating any that
// do not exist yet.
func (c *Client) AddLabels(repository string, number int, labels ...string) error {
	if len(labels) == 0 {
		return nil
	}
	owner, name, err := parseRepository(repository)
	if err != nil {
		return err
	}

	_, resp, err := c.client.Issues.AddLabelsToIssue(context.Background(), owner, name, number, labels)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("issue %d not found in %s: %v", number, repository, err)
		}
		return fmt.Errorf("failed to add labels to %s#%d: %v", repository, number, err)
	}

	logging.Debug("added labels",
		"repository", repository,
		"number", number,
		"labels", strings.Join(labels, ","))
	return nil
}

// parseRepository splits an "owner/repo" reference.
func parseRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", repository)
	}
	return parts[0], parts[1], nil
}

// apiBaseURL builds the REST endpoint for a GitHub Enterprise domain.
func apiBaseURL(domain string) string {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), "/")
	domain = strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://")
	return fmt.Sprintf("https://%s/api/v3/", domain)
}
