// Package httputil provides HTTP status classification and header constants
// shared by the content loader and its tests.
package httputil

import (
	"net/http"
	"strconv"
)

// Header names
const (
	HeaderLocation           = "Location"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderAccept             = "Accept"
)

// GitHubJSONMediaType is the media type requested from the GitHub REST API.
const GitHubJSONMediaType = "application/vnd.github+json"

// followableRedirects are the redirect statuses whose Location header is
// followed. 304 (not modified) and 305 (use proxy) are never followed; 308
// is treated like any other non-success response.
var followableRedirects = map[int]bool{
	http.StatusMultipleChoices:   true, // 300
	http.StatusMovedPermanently:  true, // 301
	http.StatusFound:             true, // 302
	http.StatusSeeOther:          true, // 303
	http.StatusTemporaryRedirect: true, // 307
}

// IsFollowableRedirect reports whether a response with this status should
// be followed to its Location header.
func IsFollowableRedirect(code int) bool {
	return followableRedirects[code]
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code <= 299
}

// IsRateLimited reports whether a response signals an exhausted API rate
// limit: HTTP 403 with the remaining-requests header at zero.
func IsRateLimited(code int, header http.Header) bool {
	if code != http.StatusForbidden {
		return false
	}
	remaining := header.Get(HeaderRateLimitRemaining)
	if remaining == "" {
		return false
	}
	n, err := strconv.Atoi(remaining)
	return err == nil && n == 0
}
