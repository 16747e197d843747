package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfbx9da4/meanwhile/pkg/api"
	"github.com/mfbx9da4/meanwhile/pkg/cache"
	"github.com/mfbx9da4/meanwhile/pkg/config"
	"github.com/mfbx9da4/meanwhile/pkg/github"
	"github.com/mfbx9da4/meanwhile/pkg/httputil"
	"github.com/mfbx9da4/meanwhile/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		pin        string
		configPath string
		noCache    bool
		redisAddr  string
		llmURL     string
		llmModel   string
		repoRef    string
		repoPath   string
		ghConfig   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat and layout HTTP API",
		Long: `Run the HTTP API.

Serves POST /api/chat for PIN-gated config editing and GET /api/layout for
computed view geometry. The PIN comes from --pin or the MEANWHILE_PIN
environment variable.

Chat editing needs an Ollama server (--llm-url, --llm-model). With
--github-repo and --github-path set, accepted edits are committed back to
the repository using the GITHUB_TOKEN environment variable. Adding
--github-config serves the document straight from the repository, cached
locally between fetches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pin == "" {
				pin = os.Getenv("MEANWHILE_PIN")
			}
			if pin == "" {
				return fmt.Errorf("no PIN configured: pass --pin or set MEANWHILE_PIN")
			}
			var owner, repo string
			if repoRef != "" {
				var err error
				owner, repo, err = github.ParseRepoRef(repoRef)
				if err != nil {
					return err
				}
			}

			var source api.Source = api.FileSource{Path: configPath}
			if ghConfig {
				if repoRef == "" {
					return fmt.Errorf("--github-config requires --github-repo")
				}
				src := &api.GitHubSource{
					Client: github.NewClient(os.Getenv("GITHUB_TOKEN")),
					Owner:  owner,
					Repo:   repo,
					Path:   repoPath,
				}
				if dir, err := cacheDir(); err == nil {
					if hc, err := httputil.NewCache(filepath.Join(dir, "http"), cache.TTLHTTP); err == nil {
						src.Cache = hc
					}
				}
				source = src
			} else if _, err := config.Load(configPath); err != nil {
				return fmt.Errorf("load config %s: %w", configPath, err)
			}

			var editor api.Editor
			if llmURL != "" {
				editor = api.NewOllamaEditor(llmURL, llmModel)
			} else {
				editor = api.EditorFunc(func(context.Context, config.Document, string) (api.EditResult, error) {
					return api.EditResult{Response: "Chat editing is not configured on this server."}, nil
				})
				printWarning("No --llm-url set; chat requests will not edit the config")
			}

			var committer api.Committer
			if repoRef != "" {
				var err error
				committer, err = api.NewGitHubCommitter(os.Getenv("GITHUB_TOKEN"), owner, repo, repoPath)
				if err != nil {
					return fmt.Errorf("configure committer: %w", err)
				}
			}

			runner, err := c.newServeRunner(cmd.Context(), noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Cache.Close()

			server := api.NewServer(api.ServerConfig{
				PIN:       pin,
				Source:    source,
				Editor:    editor,
				Committer: committer,
				Runner:    runner,
				Logger:    c.Logger,
			})

			updates, stopWatch := server.Highlight().Watch()
			defer stopWatch()
			go func() {
				for sel := range updates {
					c.Logger.Debug("highlight updated", "days", len(sel.Days), "color", sel.Color)
				}
			}()

			return c.serveHTTP(cmd.Context(), addr, server.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&pin, "pin", "", "PIN for the chat endpoint (or MEANWHILE_PIN)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "meanwhile.json", "config document to serve")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis host:port for shared layout caching across instances")
	cmd.Flags().StringVar(&llmURL, "llm-url", "", "Ollama base URL for chat editing")
	cmd.Flags().StringVar(&llmModel, "llm-model", "llama3", "Ollama model name")
	cmd.Flags().StringVar(&repoRef, "github-repo", "", "owner/repo to commit config changes to")
	cmd.Flags().StringVar(&repoPath, "github-path", "meanwhile.json", "config path within the repository")
	cmd.Flags().BoolVar(&ghConfig, "github-config", false, "load the served config from the repository instead of a local file")

	return cmd
}

// newServeRunner builds the pipeline runner for serving. With a redis
// address it uses a shared Redis cache so multiple instances see the same
// layouts; otherwise it falls back to the local file cache.
func (c *CLI) newServeRunner(ctx context.Context, noCache bool, redisAddr string) (*pipeline.Runner, error) {
	if redisAddr == "" {
		return c.newRunner(noCache)
	}
	cc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// serveHTTP runs the server until it fails or ctx is cancelled.
func (c *CLI) serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		printInfo("Server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
