package api

import (
	"context"
	"fmt"

	"github.com/mfbx9da4/meanwhile/pkg/cache"
	"github.com/mfbx9da4/meanwhile/pkg/config"
	"github.com/mfbx9da4/meanwhile/pkg/github"
	"github.com/mfbx9da4/meanwhile/pkg/httputil"
)

// FileFetcher is the part of the GitHub client used by GitHubSource.
type FileFetcher interface {
	FetchFile(ctx context.Context, owner, repo, path string) (*github.FileContent, error)
}

// GitHubSource loads the config document from a repository through the
// contents API. With a Cache set, fetched documents are kept warm under
// an HTTP key so layout requests do not hit GitHub on every call.
type GitHubSource struct {
	Client FileFetcher
	Owner  string
	Repo   string
	Path   string

	// Cache is optional. Entries expire per the cache's TTL.
	Cache *httputil.Cache
	// Keyer is optional and defaults to the standard key generator.
	Keyer cache.Keyer
}

func (s *GitHubSource) key() string {
	keyer := s.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return keyer.HTTPKey("github", fmt.Sprintf("%s/%s/%s", s.Owner, s.Repo, s.Path))
}

// Load fetches and parses the document, serving from the cache when a
// fresh entry exists.
func (s *GitHubSource) Load(ctx context.Context) (config.Document, error) {
	if s.Cache != nil {
		var doc config.Document
		if hit, err := s.Cache.Get(s.key(), &doc); err == nil && hit {
			return doc, nil
		}
	}

	file, err := s.Client.FetchFile(ctx, s.Owner, s.Repo, s.Path)
	if err != nil {
		return config.Document{}, fmt.Errorf("fetch %s/%s/%s: %w", s.Owner, s.Repo, s.Path, err)
	}
	doc, err := config.ParseJSON(file.Content)
	if err != nil {
		return config.Document{}, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	if s.Cache != nil {
		_ = s.Cache.Set(s.key(), doc)
	}
	return doc, nil
}

// Store overwrites the cached document. The chat handler calls it after
// a successful commit so the next Load does not serve the pre-edit
// version for a full TTL.
func (s *GitHubSource) Store(doc config.Document) {
	if s.Cache != nil {
		_ = s.Cache.Set(s.key(), doc)
	}
}

var _ Source = (*GitHubSource)(nil)
var _ Storer = (*GitHubSource)(nil)
