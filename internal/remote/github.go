// Package remote fetches prompt template files from GitHub so two refs
// of the same template can be compared without a local checkout.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient builds a GitHub API client, authenticated when a
// token is supplied.
func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// FileFetcher resolves file contents at arbitrary refs of one
// repository.
type FileFetcher struct {
	client *github.Client
	owner  string
	repo   string
}

// NewFileFetcher parses a repository URL (https or ssh form) into its
// owner and name.
func NewFileFetcher(client *github.Client, repoURL string) (*FileFetcher, error) {
	info, err := vcsurl.Parse(repoURL)
	if err != nil {
		return nil, fmt.Errorf("parse repository url %q: %w", repoURL, err)
	}
	if info.Username == "" || info.Name == "" {
		return nil, fmt.Errorf("repository url %q has no owner/name", repoURL)
	}
	return &FileFetcher{client: client, owner: info.Username, repo: info.Name}, nil
}

// FileAt returns the decoded contents of path at the given ref.
func (f *FileFetcher) FileAt(ctx context.Context, path, ref string) (string, error) {
	content, _, _, err := f.client.Repositories.GetContents(ctx, f.owner, f.repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("fetch %s@%s: %w", path, ref, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s@%s is not a file", path, ref)
	}
	text, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s@%s: %w", path, ref, err)
	}
	return text, nil
}
