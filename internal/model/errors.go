package model

import (
	"errors"
	"fmt"
)

// InputError reports text that cannot be resolved as a two-emoji mix:
// zero, one, or more than two emoji, or stray non-whitespace characters.
// It is shown to the user as a corrective message and never retried.
type InputError struct {
	// Status is one of the input statuses (need-two-emoji, too-many-emoji,
	// extraneous-text).
	Status MixStatus

	// Count is the number of emoji clusters found.
	Count int

	// Remainder is the leftover text for StatusExtraneousText.
	Remainder string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Status == StatusExtraneousText {
		return fmt.Sprintf("input contains text besides two emoji: %q", e.Remainder)
	}
	return fmt.Sprintf("input contains %d emoji, expected 2", e.Count)
}

// EncodingError reports an emoji cluster that produced no hex identifier,
// e.g. a cluster made only of variation selectors.
type EncodingError struct {
	// Cluster is the text that failed to encode.
	Cluster string
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("emoji %q has no encodable code points", e.Cluster)
}

// TemplateError reports a URL template that references an unknown
// substitution key or is syntactically broken. It is a configuration-time
// failure and must be surfaced to an operator, not to chat users.
type TemplateError struct {
	// Template is the raw template text.
	Template string

	// Key is the offending placeholder name, if any.
	Key string

	// Reason describes what is wrong.
	Reason string
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("url template %q: %s: {%s}", e.Template, e.Reason, e.Key)
	}
	return fmt.Sprintf("url template %q: %s", e.Template, e.Reason)
}

// ProbeTransientError describes one failed existence check (timeout or
// transport failure). The prober logs and absorbs it; it is never returned
// to callers of the resolver.
type ProbeTransientError struct {
	// URL is the candidate that failed.
	URL string

	// Timeout is true when the per-request deadline expired.
	Timeout bool

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *ProbeTransientError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("probe %s: timed out", e.URL)
	}
	return fmt.Sprintf("probe %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ProbeTransientError) Unwrap() error {
	return e.Err
}

// IsTemplateError reports whether err (or anything it wraps) is a TemplateError.
func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}

// IsEncodingError reports whether err (or anything it wraps) is an EncodingError.
func IsEncodingError(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}
