package fs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/google/go-github/v60/github"
)

// ErrGitHub is returned when the GitHub backing store cannot satisfy a read.
var ErrGitHub = errors.New("github filesystem error")

// GitHubURL is a parsed github:// location.
type GitHubURL struct {
	Org     string
	Repo    string
	Ref     string // branch, tag, or commit SHA; defaults to "main"
	Subpath string // optional subdirectory inside the repository
}

var githubURLPattern = regexp.MustCompile(`^github://([^/]+)/([^/@]+)(?:@([^/]+))?(?:/(.*))?$`)

// IsGitHubURL reports whether s uses the github:// scheme.
func IsGitHubURL(s string) bool {
	return strings.HasPrefix(s, "github://")
}

// ParseGitHubURL parses a github://org/repo[@ref][/subpath] URL.
func ParseGitHubURL(url string) (GitHubURL, error) {
	if url == "" {
		return GitHubURL{}, fmt.Errorf("%w: URL cannot be empty", ErrGitHub)
	}

	m := githubURLPattern.FindStringSubmatch(url)
	if m == nil {
		return GitHubURL{}, fmt.Errorf(
			"%w: invalid URL %q, expected github://org/repo[@ref][/subpath]", ErrGitHub, url)
	}

	parsed := GitHubURL{Org: m[1], Repo: m[2], Ref: m[3], Subpath: m[4]}
	if strings.TrimSpace(parsed.Org) == "" {
		return GitHubURL{}, fmt.Errorf("%w: organization cannot be empty", ErrGitHub)
	}
	if strings.TrimSpace(parsed.Repo) == "" {
		return GitHubURL{}, fmt.Errorf("%w: repository cannot be empty", ErrGitHub)
	}
	if parsed.Ref == "" {
		parsed.Ref = "main"
	}
	return parsed, nil
}

// contentsAPI is the slice of the GitHub client the filesystem uses.
// Narrowed to an interface so tests can stub the network.
type contentsAPI interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (
		*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// GitHub is a read-only FileSystem backed by the GitHub Contents API.
// Reads and listings are cached for the lifetime of the instance.
type GitHub struct {
	url    GitHubURL
	api    contentsAPI
	files  map[string]string
	misses map[string]bool
}

// NewGitHub creates a GitHub filesystem for the given URL. A nil http client
// gives unauthenticated access, which is sufficient for public repositories.
func NewGitHub(url GitHubURL) *GitHub {
	client := github.NewClient(nil)
	return &GitHub{
		url:    url,
		api:    client.Repositories,
		files:  make(map[string]string),
		misses: make(map[string]bool),
	}
}

// newGitHubWithAPI is used by tests to inject a fake Contents API.
func newGitHubWithAPI(url GitHubURL, api contentsAPI) *GitHub {
	return &GitHub{
		url:    url,
		api:    api,
		files:  make(map[string]string),
		misses: make(map[string]bool),
	}
}

func (g *GitHub) repoPath(p string) string {
	if g.url.Subpath == "" {
		return p
	}
	return path.Join(g.url.Subpath, p)
}

// Exists reports whether p resolves to a file or directory in the repository.
func (g *GitHub) Exists(p string) bool {
	if _, ok := g.files[p]; ok {
		return true
	}
	if g.misses[p] {
		return false
	}

	file, dir, _, err := g.api.GetContents(context.Background(), g.url.Org, g.url.Repo,
		g.repoPath(p), &github.RepositoryContentGetOptions{Ref: g.url.Ref})
	if err != nil {
		g.misses[p] = true
		return false
	}
	if file != nil {
		if content, err := file.GetContent(); err == nil {
			g.files[p] = content
		}
		return true
	}
	return dir != nil
}

// ReadFile returns the contents of the file at p.
func (g *GitHub) ReadFile(p string) (string, error) {
	if content, ok := g.files[p]; ok {
		return content, nil
	}

	file, _, _, err := g.api.GetContents(context.Background(), g.url.Org, g.url.Repo,
		g.repoPath(p), &github.RepositoryContentGetOptions{Ref: g.url.Ref})
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrGitHub, p, err)
	}
	if file == nil {
		return "", fmt.Errorf("%w: %s is a directory", ErrGitHub, p)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", ErrGitHub, p, err)
	}
	g.files[p] = content
	return content, nil
}

// ListFiles returns the paths of files in dir whose names match pattern.
func (g *GitHub) ListFiles(dir, pattern string) ([]string, error) {
	_, entries, _, err := g.api.GetContents(context.Background(), g.url.Org, g.url.Repo,
		g.repoPath(dir), &github.RepositoryContentGetOptions{Ref: g.url.Ref})
	if err != nil {
		// A missing directory is an empty listing, matching the local store.
		// Anything else (network, auth, rate limit) must surface.
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: list %s: %v", ErrGitHub, dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.GetType() != "file" {
			continue
		}
		ok, err := path.Match(pattern, entry.GetName())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, path.Join(dir, entry.GetName()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusNotFound
}
