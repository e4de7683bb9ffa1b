package models

import (
	"errors"
	"fmt"
)

var (
	// ErrLocate is returned when a URL matches no known content pattern, or
	// more than one
	ErrLocate = errors.New("failed to identify content")
	// ErrEntityURL is returned for new-style entity links which carry no
	// catalog id
	ErrEntityURL = errors.New("entity URL detected, only old URLs can be used")
	// ErrContentNotFound is returned by a metadata source when the content
	// is not offered in the requested region
	ErrContentNotFound = errors.New("content not found in region")
)

// InvalidFilterError reports a malformed user-supplied filter
type InvalidFilterError struct {
	Field      string
	Value      string
	Suggestion string
}

func (e *InvalidFilterError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// RedirectError reports a failed short-link resolution
type RedirectError struct {
	URL string
	Err error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("failed to resolve %s: %v", e.URL, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// RegionFetchError wraps a metadata failure for a single region
type RegionFetchError struct {
	Region string
	Err    error
}

func (e *RegionFetchError) Error() string {
	return fmt.Sprintf("region %s: %v", e.Region, e.Err)
}

func (e *RegionFetchError) Unwrap() error {
	return e.Err
}
