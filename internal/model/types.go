package model

import (
	"fmt"
	"strings"
)

// MixStatus is the classified outcome of resolving a mix request.
// The state transitions inside the resolver are:
//
//	Start → Encoding → Probing → Resolved(found | not-found)
//
// The three input statuses are decided before encoding starts.
type MixStatus string

const (
	// StatusNeedTwoEmoji means the text held zero or one emoji cluster.
	StatusNeedTwoEmoji MixStatus = "need-two-emoji"

	// StatusTooManyEmoji means the text held three or more emoji clusters.
	StatusTooManyEmoji MixStatus = "too-many-emoji"

	// StatusExtraneousText means exactly two emoji were found, but other
	// non-whitespace characters remained around them.
	StatusExtraneousText MixStatus = "extraneous-text"

	// StatusNotFound means no candidate URL answered with a positive
	// existence signal. Encoding failures and transient probe failures
	// also end here.
	StatusNotFound MixStatus = "not-found"

	// StatusFound means a candidate URL exists in the catalog.
	StatusFound MixStatus = "found"
)

// String returns the string representation of MixStatus.
func (s MixStatus) String() string {
	return string(s)
}

// IsInputError reports whether the status describes a problem with the
// user's input rather than a lookup outcome.
func (s MixStatus) IsInputError() bool {
	return s == StatusNeedTwoEmoji || s == StatusTooManyEmoji || s == StatusExtraneousText
}

// EmojiCluster is a contiguous substring of the input that forms a single
// emoji unit. It may hold several code points (ZWJ sequences, skin tones,
// flags, keycaps, a base plus VS16).
type EmojiCluster struct {
	// Text is the raw cluster text exactly as it appeared in the source.
	Text string `json:"text"`

	// Start is the byte offset of the cluster in the source text.
	Start int `json:"start"`

	// End is the byte offset just past the cluster (exclusive).
	End int `json:"end"`
}

// Codepoints returns the code points of the cluster in order.
func (c EmojiCluster) Codepoints() []rune {
	return []rune(c.Text)
}

// Len returns the byte length of the cluster.
func (c EmojiCluster) Len() int {
	return c.End - c.Start
}

// String returns the raw cluster text.
func (c EmojiCluster) String() string {
	return c.Text
}

// HexIdentifier is the canonical catalog identifier of one emoji: lowercase
// hexadecimal code points joined by "-", with joiners and VS16 removed.
//
// Example: "1f4a9" (pile of poo), "1f469-1f4bb" (woman technologist).
type HexIdentifier string

// String returns the identifier text.
func (h HexIdentifier) String() string {
	return string(h)
}

// Segments returns the individual hex code points of the identifier.
func (h HexIdentifier) Segments() []string {
	if h == "" {
		return nil
	}
	return strings.Split(string(h), "-")
}

// CatalogRevision identifies one dated snapshot of the remote asset catalog,
// e.g. "20201001". Revisions are opaque; configuration order is authoritative.
type CatalogRevision string

// String returns the revision text.
func (r CatalogRevision) String() string {
	return string(r)
}

// CandidateURL is one fully-formed asset URL to probe, together with the
// substitutions that produced it.
type CandidateURL struct {
	// URL is the absolute URL of the mixed emoji image.
	URL string `json:"url"`

	// Revision is the catalog snapshot this URL points into.
	Revision CatalogRevision `json:"revision"`

	// First is the identifier substituted for {hex1}.
	First HexIdentifier `json:"first"`

	// Second is the identifier substituted for {hex2}.
	Second HexIdentifier `json:"second"`
}

// String returns the candidate URL.
func (c CandidateURL) String() string {
	return c.URL
}

// MixResult is the structured outcome handed back to the host for every
// resolution. It is never partial: URL is set only when Status is found.
type MixResult struct {
	// Status classifies the outcome.
	Status MixStatus `json:"status"`

	// URL is the resolved image URL. Empty unless Status == StatusFound.
	URL string `json:"url,omitempty"`

	// Clusters holds the emoji that were extracted from the input, in
	// source order. Hosts use them to build reply text.
	Clusters []EmojiCluster `json:"clusters,omitempty"`

	// Remainder is the trimmed non-emoji text for StatusExtraneousText.
	Remainder string `json:"remainder,omitempty"`
}

// Found reports whether the result carries a resolved URL.
func (r MixResult) Found() bool {
	return r.Status == StatusFound && r.URL != ""
}

// FoundResult builds a found result for the given URL.
func FoundResult(url string, clusters ...EmojiCluster) MixResult {
	return MixResult{Status: StatusFound, URL: url, Clusters: clusters}
}

// NotFoundResult builds a not-found result.
func NotFoundResult(clusters ...EmojiCluster) MixResult {
	return MixResult{Status: StatusNotFound, Clusters: clusters}
}

// ExitCode defines standard CLI exit codes. These codes allow scripts to
// tell a missing combination apart from bad input or bad configuration.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration file could not be loaded
	// or failed validation (including TemplateError).
	ExitConfigError ExitCode = 2

	// ExitInputError indicates the input did not contain exactly two emoji
	// and nothing else.
	ExitInputError ExitCode = 3

	// ExitNotFound indicates no mixed emoji exists for the pair.
	ExitNotFound ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
