// Package github proposes file changes as pull requests, for the album-shelf
// submission flow.
package github

import (
	"context"
	"fmt"

	gogithub "github.com/google/go-github/v66/github"
)

const userAgent = "telegram-scribe-bot"

// Client wraps the GitHub API for the one flow the bot needs: append content
// to a file on a new branch and open a pull request.
type Client struct {
	gh *gogithub.Client
}

// New creates a client authenticated with a personal access token.
func New(token string) *Client {
	gh := gogithub.NewClient(nil).WithAuthToken(token)
	gh.UserAgent = userAgent
	return &Client{gh: gh}
}

// NewWithBaseURL creates a client pointed at a non-default API endpoint, for
// tests.
func NewWithBaseURL(token, baseURL string) (*Client, error) {
	gh, err := gogithub.NewClient(nil).WithAuthToken(token).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, err
	}
	gh.UserAgent = userAgent
	return &Client{gh: gh}, nil
}

// FileChangePR describes a proposed change: ContentToAdd is appended to the
// file at FilePath on a fresh branch, and a PR is opened against Base.
type FileChangePR struct {
	Owner        string
	Repo         string
	FilePath     string
	ContentToAdd string
	BranchName   string
	Base         string
	Title        string
	Body         string
}

// ProposeFileChangePR runs the whole flow and returns the pull request URL.
func (c *Client) ProposeFileChangePR(ctx context.Context, change FileChangePR) (string, error) {
	base := change.Base
	if base == "" {
		base = "master"
	}

	commits, _, err := c.gh.Repositories.ListCommits(ctx, change.Owner, change.Repo, &gogithub.CommitsListOptions{
		ListOptions: gogithub.ListOptions{PerPage: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch last commit of %s/%s: %w", change.Owner, change.Repo, err)
	}
	if len(commits) == 0 {
		return "", fmt.Errorf("no commits found in %s/%s", change.Owner, change.Repo)
	}
	lastCommit := commits[0]

	fileContent, _, _, err := c.gh.Repositories.GetContents(ctx, change.Owner, change.Repo, change.FilePath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch contents of %s: %w", change.FilePath, err)
	}
	initial, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode contents of %s: %w", change.FilePath, err)
	}

	blob, _, err := c.gh.Git.CreateBlob(ctx, change.Owner, change.Repo, &gogithub.Blob{
		Content:  gogithub.String(initial + change.ContentToAdd),
		Encoding: gogithub.String("utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}

	tree, _, err := c.gh.Git.CreateTree(ctx, change.Owner, change.Repo, lastCommit.GetCommit().GetTree().GetSHA(), []*gogithub.TreeEntry{
		{
			Path: gogithub.String(change.FilePath),
			Mode: gogithub.String("100644"),
			Type: gogithub.String("blob"),
			SHA:  blob.SHA,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create tree: %w", err)
	}

	commit, _, err := c.gh.Git.CreateCommit(ctx, change.Owner, change.Repo, &gogithub.Commit{
		Message: gogithub.String(change.Title),
		Tree:    tree,
		Parents: []*gogithub.Commit{{SHA: lastCommit.SHA}},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}

	_, _, err = c.gh.Git.CreateRef(ctx, change.Owner, change.Repo, &gogithub.Reference{
		Ref:    gogithub.String("refs/heads/" + change.BranchName),
		Object: &gogithub.GitObject{SHA: commit.SHA},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create branch %s: %w", change.BranchName, err)
	}

	pr, _, err := c.gh.PullRequests.Create(ctx, change.Owner, change.Repo, &gogithub.NewPullRequest{
		Title: gogithub.String(change.Title),
		Head:  gogithub.String(change.BranchName),
		Base:  gogithub.String(base),
		Body:  gogithub.String(change.Body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create pull request: %w", err)
	}
	return pr.GetHTMLURL(), nil
}
