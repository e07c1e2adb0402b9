// Package source resolves configuration references to raw bytes.
//
// A reference is either a URL (it starts with http:// or https://) or a
// filesystem path. Paths are resolved against the Origin of the document
// that holds the reference: its directory for local files, its URL for
// documents that were downloaded. A relative reference inside a downloaded
// document therefore resolves to a sibling URL.
//
// # Loader
//
// Loader is the default Fetcher. Local files are read from disk and capped
// at MaxFileSize bytes. URLs are fetched with a resty client:
//
//	loader := source.NewLoader(
//		source.WithTimeout(10*time.Second),
//		source.WithToken(os.Getenv("GITHUB_TOKEN")),
//	)
//	content, err := loader.Fetch(ctx, "https://example.com/base.json", source.Origin{})
//
// Redirect responses (300, 301, 302, 303 and 307) are followed manually up to
// the configured limit, each hop logged at info level. A 403 response with
// X-RateLimit-Remaining set to zero fails with a *lcerrors.FetchError whose
// RateLimited field is set, so callers can ask for a token.
//
// CommitSHA is a pass-through to the GitHub commits API that returns the
// commit a branch or tag currently points at.
package source
