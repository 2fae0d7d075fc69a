package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMixStatus_String verifies that MixStatus values produce the expected
// string representations for CLI output and JSON serialization.
func TestMixStatus_String(t *testing.T) {
	tests := []struct {
		status   MixStatus
		expected string
	}{
		{StatusNeedTwoEmoji, "need-two-emoji"},
		{StatusTooManyEmoji, "too-many-emoji"},
		{StatusExtraneousText, "extraneous-text"},
		{StatusNotFound, "not-found"},
		{StatusFound, "found"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// TestMixStatus_IsInputError checks that only the three input statuses are
// classified as user input problems.
func TestMixStatus_IsInputError(t *testing.T) {
	assert.True(t, StatusNeedTwoEmoji.IsInputError())
	assert.True(t, StatusTooManyEmoji.IsInputError())
	assert.True(t, StatusExtraneousText.IsInputError())
	assert.False(t, StatusNotFound.IsInputError())
	assert.False(t, StatusFound.IsInputError())
}

func TestEmojiCluster(t *testing.T) {
	c := EmojiCluster{Text: "\U0001F469\u200d\U0001F4BB", Start: 3, End: 14}
	assert.Equal(t, []rune{0x1F469, 0x200D, 0x1F4BB}, c.Codepoints())
	assert.Equal(t, 11, c.Len())
	assert.Equal(t, c.Text, c.String())
}

func TestHexIdentifier_Segments(t *testing.T) {
	assert.Nil(t, HexIdentifier("").Segments())
	assert.Equal(t, []string{"1f4a9"}, HexIdentifier("1f4a9").Segments())
	assert.Equal(t, []string{"1f469", "1f4bb"}, HexIdentifier("1f469-1f4bb").Segments())
}

// TestMixResult_Found verifies that Found requires both the status and a URL,
// so a malformed result can never be rendered as an image.
func TestMixResult_Found(t *testing.T) {
	assert.True(t, FoundResult("https://example.com/a.png").Found())
	assert.False(t, MixResult{Status: StatusFound}.Found())
	assert.False(t, NotFoundResult().Found())
	assert.Empty(t, NotFoundResult().URL)
}

// TestErrorTaxonomy verifies the messages and errors.As behavior of the
// pipeline error types.
func TestErrorTaxonomy(t *testing.T) {
	t.Run("input error extraneous", func(t *testing.T) {
		err := &InputError{Status: StatusExtraneousText, Count: 2, Remainder: "hi"}
		assert.Contains(t, err.Error(), `"hi"`)
	})

	t.Run("input error count", func(t *testing.T) {
		err := &InputError{Status: StatusTooManyEmoji, Count: 3}
		assert.Contains(t, err.Error(), "3 emoji")
	})

	t.Run("encoding error is detectable through wrapping", func(t *testing.T) {
		err := fmt.Errorf("encode first: %w", &EncodingError{Cluster: "\ufe0f"})
		assert.True(t, IsEncodingError(err))
		assert.False(t, IsTemplateError(err))
	})

	t.Run("template error names the key", func(t *testing.T) {
		err := &TemplateError{Template: "{foo}", Key: "foo", Reason: "unknown placeholder"}
		assert.Equal(t, `url template "{foo}": unknown placeholder: {foo}`, err.Error())
		assert.True(t, IsTemplateError(fmt.Errorf("config: %w", err)))
	})

	t.Run("probe transient error unwraps", func(t *testing.T) {
		inner := errors.New("connection reset")
		err := &ProbeTransientError{URL: "https://x", Err: inner}
		assert.True(t, errors.Is(err, inner))
		assert.Contains(t, err.Error(), "connection reset")

		timeout := &ProbeTransientError{URL: "https://x", Timeout: true}
		assert.Equal(t, "probe https://x: timed out", timeout.Error())
	})
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitNotFound, "no mixed emoji found")
		assert.Equal(t, ExitNotFound, err.Code)
		assert.Equal(t, "no mixed emoji found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("unknown placeholder")
		err := WrapCLIError(ExitConfigError, "invalid configuration", inner)
		assert.Equal(t, ExitConfigError, err.Code)
		assert.Contains(t, err.Error(), "unknown placeholder")
		assert.Equal(t, inner, err.Unwrap())
	})

	// Verify errors.Is works with unwrapped errors (Go 1.13+ error chain).
	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("unknown placeholder")
		err := WrapCLIError(ExitConfigError, "invalid configuration", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
