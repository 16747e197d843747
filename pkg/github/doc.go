// Package github provides an HTTP client for the GitHub contents API.
//
// # Overview
//
// This package persists configuration documents to a GitHub repository.
// When a chat edit changes the document, the server commits the updated
// JSON back to the repo so the hosted page picks it up on the next build.
//
// # Usage
//
//	client := github.NewClient(token)
//
//	commit, err := client.CommitFile(ctx, "owner", "repo", "config.json",
//	    data, "Update milestones")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Commit:", commit.HTMLURL)
//
// # Authentication
//
// Commits require a personal access token with write access to the
// target repository. Reads work unauthenticated on public repos but are
// limited to 60 requests/hour.
//
// # Retries
//
// Transient failures (network errors, 5xx responses, 429 rate limits)
// are retried with exponential backoff via the httputil package. Other
// errors fail immediately.
package github
