package api

import (
	"context"
	"fmt"

	"github.com/mfbx9da4/meanwhile/pkg/config"
	"github.com/mfbx9da4/meanwhile/pkg/github"
)

// Committer persists an updated config document and returns a URL for
// the resulting change, when the backend has one.
type Committer interface {
	Commit(ctx context.Context, doc config.Document, message string) (url string, err error)
}

// CommitterFunc adapts a function to the Committer interface.
type CommitterFunc func(ctx context.Context, doc config.Document, message string) (string, error)

func (f CommitterFunc) Commit(ctx context.Context, doc config.Document, message string) (string, error) {
	return f(ctx, doc, message)
}

// GitHubCommitter writes the document to a file in a GitHub repository
// through the contents API.
type GitHubCommitter struct {
	Client *github.Client
	Owner  string
	Repo   string
	Path   string
}

// NewGitHubCommitter validates the repository coordinates and builds a
// committer.
func NewGitHubCommitter(token, owner, repo, path string) (*GitHubCommitter, error) {
	if err := github.ValidateOwner(owner); err != nil {
		return nil, err
	}
	if err := github.ValidateRepo(repo); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	return &GitHubCommitter{
		Client: github.NewClient(token),
		Owner:  owner,
		Repo:   repo,
		Path:   path,
	}, nil
}

func (c *GitHubCommitter) Commit(ctx context.Context, doc config.Document, message string) (string, error) {
	data, err := doc.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("serialize config: %w", err)
	}

	commit, err := c.Client.CommitFile(ctx, c.Owner, c.Repo, c.Path, data, message)
	if err != nil {
		return "", fmt.Errorf("commit config: %w", err)
	}
	return commit.HTMLURL, nil
}
