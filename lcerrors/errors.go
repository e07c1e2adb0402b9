// Package lcerrors provides structured error types for langconf.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish a missing parent document from
// malformed JSON or a cyclic extends chain.
//
// # Error Categories
//
//   - FetchError: file read or HTTP transport failures, including the GitHub
//     rate-limit signal
//   - ParseError: malformed JSON after comment stripping
//   - ExpansionError: the extends reference could not be resolved
//   - CycleError: a recursive expansion revisited a document
//   - ConfigError: invalid runtime configuration
//
// Merge conflicts are not errors. They are reported as notices on the
// expansion result and never abort an expansion.
//
// # Usage with errors.Is
//
//	result, err := e.ExpandReference(ctx, "child.json", source.Origin{})
//	if errors.Is(err, lcerrors.ErrRateLimited) {
//	    fmt.Println("set GITHUB_TOKEN and retry")
//	}
package lcerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrFetch indicates content could not be retrieved.
	ErrFetch = errors.New("fetch error")

	// ErrRateLimited indicates the remote API refused the request because the
	// rate limit was exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrExpansion indicates a document could not be expanded.
	ErrExpansion = errors.New("expansion error")

	// ErrCycle indicates a cyclic extends chain was detected.
	ErrCycle = errors.New("cyclic extends chain")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// FetchError represents a failure to read a local file or download a URL.
type FetchError struct {
	// Reference is the path or URL that was requested
	Reference string
	// StatusCode is the HTTP status code (0 for local files and transport failures)
	StatusCode int
	// Status is the HTTP status text, if any
	Status string
	// RateLimited is true when the server signalled an exhausted rate limit
	RateLimited bool
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.RateLimited {
		msg = "rate limit exceeded"
	}
	if e.Reference != "" {
		msg += ": " + e.Reference
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d", e.StatusCode)
		if e.Status != "" {
			msg += " " + strings.TrimPrefix(e.Status, fmt.Sprintf("%d ", e.StatusCode))
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrFetch, and ErrRateLimited when RateLimited is set.
func (e *FetchError) Is(target error) bool {
	if target == ErrFetch {
		return true
	}
	return target == ErrRateLimited && e.RateLimited
}

// ParseError represents a failure to decode a configuration document.
type ParseError struct {
	// Path is the file path, URL or source name
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ExpansionError represents a failure to resolve the parent of a document.
// The Cause is usually a *FetchError or *ParseError.
type ExpansionError struct {
	// Reference is the extends value that failed to resolve
	Reference string
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ExpansionError) Error() string {
	msg := "expansion error"
	if e.Reference != "" {
		msg += ": cannot resolve " + e.Reference
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ExpansionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ExpansionError) Is(target error) bool {
	return target == ErrExpansion
}

// CycleError is returned by recursive expansion when a document extends,
// directly or transitively, one of its own ancestors.
type CycleError struct {
	// Chain lists the resolved locations in visit order, ending with the
	// location that closed the cycle
	Chain []string
}

// Error returns a human-readable error message.
func (e *CycleError) Error() string {
	if len(e.Chain) == 0 {
		return "cyclic extends chain"
	}
	return "cyclic extends chain: " + strings.Join(e.Chain, " -> ")
}

// Is reports whether target matches this error type.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
