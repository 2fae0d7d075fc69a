package emoji

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Extract scans text and returns its emoji clusters in source order.
// Offsets are byte offsets into text. Text without emoji yields nil.
func Extract(text string) []model.EmojiCluster {
	var clusters []model.EmojiCluster

	rest := text
	offset := 0
	state := -1
	for len(rest) > 0 {
		var grapheme string
		grapheme, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		if n := emojiPrefixLen(grapheme); n > 0 {
			clusters = append(clusters, model.EmojiCluster{
				Text:  grapheme[:n],
				Start: offset,
				End:   offset + n,
			})
		}
		offset += len(grapheme)
	}

	return clusters
}

// Remainder returns text with every cluster span removed, noise code points
// (joiners, variation selectors) dropped, and surrounding whitespace trimmed.
// An empty result means the clusters account for all visible content.
//
// The clusters must come from Extract(text).
func Remainder(text string, clusters []model.EmojiCluster) string {
	var b strings.Builder
	b.Grow(len(text))

	pos := 0
	for _, c := range clusters {
		if c.Start < pos || c.End > len(text) {
			continue
		}
		b.WriteString(text[pos:c.Start])
		pos = c.End
	}
	b.WriteString(text[pos:])

	cleaned := strings.Map(func(r rune) rune {
		if IsNoise(r) {
			return -1
		}
		return r
	}, b.String())

	return strings.TrimFunc(cleaned, unicode.IsSpace)
}

// HasOnlyWhitespace reports whether the remainder of text after removing
// clusters is empty or whitespace.
func HasOnlyWhitespace(text string, clusters []model.EmojiCluster) bool {
	return Remainder(text, clusters) == ""
}

// emojiPrefixLen returns the byte length of the emoji sequence at the start
// of a grapheme cluster, or 0 if the grapheme does not start with an emoji.
func emojiPrefixLen(grapheme string) int {
	first, size := utf8.DecodeRuneInString(grapheme)
	if first == utf8.RuneError && size <= 1 {
		return 0
	}

	if IsKeycapBase(first) {
		return keycapLen(grapheme, size)
	}
	if !IsEmoji(first) {
		return 0
	}

	end := size
	afterJoiner := false

scan:
	for i, r := range grapheme[size:] {
		pos := size + i
		switch {
		case IsTextPresentation(r):
			// U+FE0E right after a text-default base asks for the text
			// glyph. Emoji-default bases stay emoji and end before it.
			if pos == size && !IsEmojiPresentation(first) {
				return 0
			}
			break scan
		case IsZWJ(r):
			if afterJoiner {
				break scan
			}
			afterJoiner = true
			continue
		case isTrailingComponent(r):
		case IsRegionalIndicator(r) && IsRegionalIndicator(first) && pos == size:
		case afterJoiner && IsPictographic(r):
		default:
			break scan
		}
		end = pos + utf8.RuneLen(r)
		afterJoiner = false
	}

	return end
}

// keycapLen matches KEYCAP_BASE [U+FE0F] U+20E3 at the start of grapheme.
func keycapLen(grapheme string, baseSize int) int {
	i := baseSize
	r, n := utf8.DecodeRuneInString(grapheme[i:])
	if IsEmojiVariation(r) {
		i += n
		r, n = utf8.DecodeRuneInString(grapheme[i:])
	}
	if IsCombiningEnclosingKeycap(r) {
		return i + n
	}
	return 0
}
