package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

//go:generate mockgen -destination=mock/fetcher.go -package=mock github.com/erraggy/langconf/source Fetcher

// Fetcher retrieves the raw content a reference points at.
type Fetcher interface {
	// Fetch resolves ref against origin and returns its content.
	// Failures are returned as *lcerrors.FetchError.
	Fetch(ctx context.Context, ref string, origin Origin) (*Content, error)
}

// Origin is where a document came from. References inside the document are
// resolved relative to it. The zero Origin resolves paths against the
// current working directory.
type Origin struct {
	// Dir is the directory of a local document
	Dir string
	// BaseURL is the URL of a downloaded document
	BaseURL string
}

// OriginForFile returns the origin of a document read from path.
func OriginForFile(path string) Origin {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Origin{Dir: filepath.Dir(path)}
}

// OriginForURL returns the origin of a document downloaded from rawURL.
func OriginForURL(rawURL string) Origin {
	return Origin{BaseURL: rawURL}
}

// String returns the base URL or directory.
func (o Origin) String() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return o.Dir
}

// Content is the raw text of a fetched document.
type Content struct {
	// Data is the document text
	Data []byte
	// Location is the absolute path or final URL (after redirects)
	Location string
	// Origin resolves references found inside this document
	Origin Origin
}

// IsURL reports whether ref is an HTTP(S) URL rather than a path.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve turns ref into an absolute location relative to origin. The
// second result reports whether the location is a URL.
func Resolve(ref string, origin Origin) (string, bool, error) {
	if ref == "" {
		return "", false, fmt.Errorf("source: empty reference")
	}
	if IsURL(ref) {
		return ref, true, nil
	}
	if origin.BaseURL != "" {
		base, err := url.Parse(origin.BaseURL)
		if err != nil {
			return "", false, fmt.Errorf("source: invalid base URL %q: %w", origin.BaseURL, err)
		}
		rel, err := url.Parse(filepath.ToSlash(ref))
		if err != nil {
			return "", false, fmt.Errorf("source: invalid reference %q: %w", ref, err)
		}
		return base.ResolveReference(rel).String(), true, nil
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(origin.Dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("source: cannot resolve %q: %w", ref, err)
	}
	return abs, false, nil
}
