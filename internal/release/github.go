package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ftpprobe/pkg/logging"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// Publisher publishes a tagged release with its artifact.
type Publisher interface {
	Publish(ctx context.Context, tag, name, assetPath string) (string, error)
}

// GitHubPublisher creates GitHub releases.
type GitHubPublisher struct {
	client *github.Client
	owner  string
	repo   string
	// Draft creates the release as a draft.
	Draft bool
}

// NewGitHubPublisher creates a publisher for ownerRepo ("owner/name")
// authenticating with token.
func NewGitHubPublisher(ctx context.Context, ownerRepo, token string) (*GitHubPublisher, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository %q: expected owner/name", ownerRepo)
	}
	if token == "" {
		return nil, fmt.Errorf("a GitHub token is required to publish to %s", ownerRepo)
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return &GitHubPublisher{client: github.NewClient(httpClient), owner: owner, repo: repo}, nil
}

// Publish creates the release for tag and uploads assetPath to it. The
// release page URL is returned.
func (p *GitHubPublisher) Publish(ctx context.Context, tag, name, assetPath string) (string, error) {
	rel, _, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, &github.RepositoryRelease{
		TagName: github.Ptr(tag),
		Name:    github.Ptr(name),
		Draft:   github.Ptr(p.Draft),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release %s: %w", tag, err)
	}
	logging.Info("Release", "created release %s", rel.GetHTMLURL())

	f, err := os.Open(assetPath)
	if err != nil {
		return "", fmt.Errorf("failed to open asset: %w", err)
	}
	defer f.Close()

	asset, _, err := p.client.Repositories.UploadReleaseAsset(ctx, p.owner, p.repo, rel.GetID(),
		&github.UploadOptions{Name: filepath.Base(assetPath)}, f)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filepath.Base(assetPath), err)
	}
	logging.Info("Release", "uploaded asset %s", asset.GetBrowserDownloadURL())
	return rel.GetHTMLURL(), nil
}
