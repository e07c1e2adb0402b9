package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/erraggy/langconf/internal/httputil"
	"github.com/erraggy/langconf/lcerrors"
)

// DefaultCommitRef is the reference CommitSHA resolves when none is given.
const DefaultCommitRef = "HEAD"

// CommitSHA returns the sha of the commit ref currently points at in repo
// ("owner/name"). An empty ref means DefaultCommitRef. Unauthenticated
// requests share a small hourly budget; when it runs out the error matches
// lcerrors.ErrRateLimited.
func (l *Loader) CommitSHA(ctx context.Context, repo, ref string) (string, error) {
	repo = strings.Trim(repo, "/")
	if owner, name, ok := strings.Cut(repo, "/"); !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", &lcerrors.FetchError{Reference: repo, Message: "repository must be in owner/name form"}
	}
	if ref == "" {
		ref = DefaultCommitRef
	}

	endpoint := fmt.Sprintf("%s/repos/%s/commits/%s", strings.TrimRight(l.apiURL, "/"), escapeSegments(repo), escapeSegments(ref))
	var commit struct {
		SHA string `json:"sha"`
	}
	_, final, err := l.get(ctx, endpoint, map[string]string{
		httputil.HeaderAccept: httputil.GitHubJSONMediaType,
	}, &commit)
	if err != nil {
		return "", err
	}
	if commit.SHA == "" {
		return "", &lcerrors.FetchError{Reference: final, Message: "commit response has no sha"}
	}
	return commit.SHA, nil
}

// escapeSegments path-escapes each slash-separated segment of p, so a ref
// such as "release/1.90" keeps its slash but "?" and "#" stay in the path.
func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
