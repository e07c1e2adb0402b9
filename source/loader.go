package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/erraggy/langconf"
	"github.com/erraggy/langconf/internal/httputil"
	"github.com/erraggy/langconf/lcerrors"
	"github.com/erraggy/langconf/parser"
)

const (
	// MaxFileSize is the default maximum size in bytes of a fetched document.
	MaxFileSize = 10 * 1024 * 1024 // 10MB

	// DefaultMaxRedirects is the default number of redirect hops followed.
	DefaultMaxRedirects = 5

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultAPIURL is the GitHub REST API endpoint used by CommitSHA.
	DefaultAPIURL = "https://api.github.com"
)

// rateLimitHint is attached to rate-limit failures.
const rateLimitHint = "API rate limit exhausted; set GITHUB_TOKEN to authenticate and raise the limit"

// Loader fetches documents from the local filesystem and over HTTP(S).
// It is safe for concurrent use.
type Loader struct {
	client       *resty.Client
	logger       parser.Logger
	token        string
	apiURL       string
	maxRedirects int
	maxFileSize  int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	timeout      time.Duration
	userAgent    string
	token        string
	apiURL       string
	maxRedirects int
	maxFileSize  int64
	logger       parser.Logger
	client       *http.Client
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) LoaderOption {
	return func(c *loaderConfig) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to langconf.UserAgent().
func WithUserAgent(ua string) LoaderOption {
	return func(c *loaderConfig) { c.userAgent = ua }
}

// WithToken sets a bearer token. It is only sent to the API host so that a
// token is never leaked to arbitrary document servers.
func WithToken(token string) LoaderOption {
	return func(c *loaderConfig) { c.token = token }
}

// WithAPIURL overrides the GitHub API base URL.
func WithAPIURL(u string) LoaderOption {
	return func(c *loaderConfig) { c.apiURL = u }
}

// WithMaxRedirects sets how many redirect hops are followed. Zero disables
// redirect following.
func WithMaxRedirects(n int) LoaderOption {
	return func(c *loaderConfig) { c.maxRedirects = n }
}

// WithMaxFileSize sets the maximum accepted document size in bytes.
func WithMaxFileSize(n int64) LoaderOption {
	return func(c *loaderConfig) { c.maxFileSize = n }
}

// WithLogger sets the logger for redirect hops and HTTP failures.
func WithLogger(l parser.Logger) LoaderOption {
	return func(c *loaderConfig) { c.logger = l }
}

// WithHTTPClient sets the underlying *http.Client. Its redirect policy is
// replaced, since redirects are followed by the Loader itself.
func WithHTTPClient(hc *http.Client) LoaderOption {
	return func(c *loaderConfig) { c.client = hc }
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := loaderConfig{
		timeout:      DefaultTimeout,
		userAgent:    langconf.UserAgent(),
		apiURL:       DefaultAPIURL,
		maxRedirects: DefaultMaxRedirects,
		maxFileSize:  MaxFileSize,
		logger:       parser.NopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = parser.NopLogger{}
	}

	var client *resty.Client
	if cfg.client != nil {
		client = resty.NewWithClient(cfg.client)
	} else {
		client = resty.New()
	}
	client.
		SetTimeout(cfg.timeout).
		SetHeader("User-Agent", cfg.userAgent).
		SetLogger(restyLogger{log: cfg.logger}).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			// Hand every redirect response back so hops can be counted and logged.
			return http.ErrUseLastResponse
		}))
	if cfg.maxFileSize > 0 {
		client.SetResponseBodyLimit(int(cfg.maxFileSize))
	}

	return &Loader{
		client:       client,
		logger:       cfg.logger,
		token:        cfg.token,
		apiURL:       cfg.apiURL,
		maxRedirects: cfg.maxRedirects,
		maxFileSize:  cfg.maxFileSize,
	}
}

var _ Fetcher = (*Loader)(nil)

// Fetch implements Fetcher.
func (l *Loader) Fetch(ctx context.Context, ref string, origin Origin) (*Content, error) {
	location, remote, err := Resolve(ref, origin)
	if err != nil {
		return nil, &lcerrors.FetchError{Reference: ref, Cause: err}
	}
	l.logger.Debug("fetching document", "ref", ref, "location", location)

	if !remote {
		data, err := l.readFile(location)
		if err != nil {
			return nil, err
		}
		return &Content{Data: data, Location: location, Origin: OriginForFile(location)}, nil
	}

	resp, final, err := l.get(ctx, location, nil, nil)
	if err != nil {
		return nil, err
	}
	data := resp.Body()
	if int64(len(data)) > l.maxFileSize {
		return nil, &lcerrors.FetchError{
			Reference: final,
			Message:   fmt.Sprintf("document exceeds maximum size of %d bytes (got %d bytes)", l.maxFileSize, len(data)),
		}
	}
	return &Content{Data: data, Location: final, Origin: OriginForURL(final)}, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &lcerrors.FetchError{Reference: path, Message: "cannot read file", Cause: err}
	}
	if info.IsDir() {
		return nil, &lcerrors.FetchError{Reference: path, Message: "is a directory"}
	}
	if info.Size() > l.maxFileSize {
		return nil, &lcerrors.FetchError{
			Reference: path,
			Message:   fmt.Sprintf("file exceeds maximum size of %d bytes (got %d bytes)", l.maxFileSize, info.Size()),
		}
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is a user-supplied reference
	if err != nil {
		return nil, &lcerrors.FetchError{Reference: path, Message: "cannot read file", Cause: err}
	}
	return data, nil
}

// get performs a GET, following redirects itself. It returns the final
// successful response and the URL it came from. A non-nil result receives
// the decoded JSON body of that response.
func (l *Loader) get(ctx context.Context, rawURL string, header map[string]string, result any) (*resty.Response, string, error) {
	current := rawURL
	for hop := 0; ; hop++ {
		req := l.client.R().SetContext(ctx).SetHeaders(header)
		if result != nil {
			req.SetResult(result).ForceContentType("application/json")
		}
		if l.token != "" && sameHost(current, l.apiURL) {
			req.SetAuthToken(l.token)
		}

		resp, err := req.Get(current)
		if errors.Is(err, resty.ErrResponseBodyTooLarge) {
			return nil, current, &lcerrors.FetchError{
				Reference: current,
				Message:   fmt.Sprintf("response body exceeds maximum size of %d bytes", l.maxFileSize),
				Cause:     err,
			}
		}
		if err != nil && result != nil && resp != nil && httputil.IsSuccess(resp.StatusCode()) {
			return nil, current, &lcerrors.FetchError{Reference: current, Message: "cannot decode response", Cause: err}
		}
		if err != nil {
			return nil, current, &lcerrors.FetchError{Reference: current, Message: "request failed", Cause: err}
		}

		code := resp.StatusCode()
		switch {
		case httputil.IsSuccess(code):
			return resp, current, nil

		case httputil.IsFollowableRedirect(code):
			if hop >= l.maxRedirects {
				return nil, current, &lcerrors.FetchError{
					Reference:  rawURL,
					StatusCode: code,
					Status:     resp.Status(),
					Message:    fmt.Sprintf("stopped after %d redirects", l.maxRedirects),
				}
			}
			next, err := resolveLocation(current, resp.Header().Get(httputil.HeaderLocation))
			if err != nil {
				return nil, current, &lcerrors.FetchError{
					Reference:  current,
					StatusCode: code,
					Status:     resp.Status(),
					Message:    "invalid redirect",
					Cause:      err,
				}
			}
			l.logger.Info("following redirect", "from", current, "to", next, "status", code, "hop", hop+1)
			current = next

		case httputil.IsRateLimited(code, resp.Header()):
			l.logger.Error("rate limit exceeded", "url", current)
			return nil, current, &lcerrors.FetchError{
				Reference:   current,
				StatusCode:  code,
				Status:      resp.Status(),
				RateLimited: true,
				Message:     rateLimitHint,
			}

		default:
			l.logger.Error("cannot retrieve document", "url", current, "status", code, "message", http.StatusText(code))
			return nil, current, &lcerrors.FetchError{
				Reference:  current,
				StatusCode: code,
				Status:     resp.Status(),
			}
		}
	}
}

func resolveLocation(current, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("redirect response has no %s header", httputil.HeaderLocation)
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	loc, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(loc).String(), nil
}

func sameHost(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Host != "" && ua.Host == ub.Host
}

// restyLogger routes resty's own diagnostics into a parser.Logger.
type restyLogger struct {
	log parser.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.log.Error(fmt.Sprintf(format, v...)) }
func (r restyLogger) Warnf(format string, v ...any)  { r.log.Warn(fmt.Sprintf(format, v...)) }
func (r restyLogger) Debugf(format string, v ...any) { r.log.Debug(fmt.Sprintf(format, v...)) }
