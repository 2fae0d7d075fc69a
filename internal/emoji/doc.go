// Package emoji extracts emoji clusters from arbitrary message text.
//
// Extraction is a single pass over the text:
//
//  1. The text is split into extended grapheme clusters (UAX #29) with
//     github.com/rivo/uniseg. Grapheme rules already keep ZWJ sequences,
//     skin tone modifiers, variation selectors, keycaps, tag sequences and
//     regional indicator pairs together.
//  2. Each grapheme whose first code point is an emoji is trimmed to its
//     emoji prefix, so trailing combining marks or dangling joiners never
//     become part of a cluster.
//
// Emoji classification uses the Extended_Pictographic and
// Emoji_Presentation properties from the Unicode emoji data files
// (see tables.go) rather than hand-picked block ranges.
//
// Supported sequence kinds:
//
//   - Single emoji characters, with or without U+FE0F
//   - ZWJ (Zero-Width Joiner) sequences for composite emoji
//   - Skin tone modifiers (U+1F3FB - U+1F3FF)
//   - Regional indicator pairs (flags)
//   - Keycap sequences (digit + U+FE0F + U+20E3)
//   - Tag sequences for subdivision flags
//
// A lone variation selector or joiner is noise: it never forms a cluster.
package emoji
