package emoji

import "unicode"

// IsEmoji returns true if the rune can stand alone as an emoji: any
// Extended_Pictographic or Emoji_Presentation code point, which includes
// regional indicators and skin tone modifiers.
func IsEmoji(r rune) bool {
	return unicode.Is(extendedPictographic, r) || unicode.Is(emojiPresentation, r)
}

// IsEmojiPresentation returns true if the rune defaults to emoji presentation.
// These characters display as emoji without requiring U+FE0F.
func IsEmojiPresentation(r rune) bool {
	return unicode.Is(emojiPresentation, r)
}

// IsPictographic returns true for Extended_Pictographic code points, the
// set that may appear on either side of a ZWJ.
func IsPictographic(r rune) bool {
	return unicode.Is(extendedPictographic, r)
}

// IsEmojiModifier returns true if the rune is a skin tone modifier.
// Fitzpatrick scale modifiers: U+1F3FB - U+1F3FF.
func IsEmojiModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// IsZWJ returns true if the rune is Zero-Width Joiner (U+200D).
func IsZWJ(r rune) bool {
	return r == 0x200D
}

// IsRegionalIndicator returns true if the rune is a Regional Indicator (A-Z).
// Two regional indicators form a flag emoji (e.g., U+1F1FA U+1F1F8 = US flag).
func IsRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// IsVariationSelector returns true for emoji-related variation selectors.
// U+FE0E forces text presentation, U+FE0F forces emoji presentation.
func IsVariationSelector(r rune) bool {
	return r == 0xFE0E || r == 0xFE0F
}

// IsTextPresentation returns true for the text variation selector (U+FE0E).
func IsTextPresentation(r rune) bool {
	return r == 0xFE0E
}

// IsEmojiVariation returns true for the emoji variation selector (U+FE0F).
func IsEmojiVariation(r rune) bool {
	return r == 0xFE0F
}

// IsKeycapBase returns true if the rune can form a keycap emoji.
// Digits 0-9, # and * can be followed by U+FE0F U+20E3 to form keycaps.
func IsKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// IsCombiningEnclosingKeycap returns true for the keycap combining mark.
func IsCombiningEnclosingKeycap(r rune) bool {
	return r == 0x20E3
}

// IsTagCharacter returns true for emoji tag characters.
// Tags U+E0020-U+E007E are used in subdivision flag sequences.
func IsTagCharacter(r rune) bool {
	return r >= 0xE0020 && r <= 0xE007E
}

// IsCancelTag returns true for the cancel tag character (U+E007F).
// This terminates subdivision flag sequences.
func IsCancelTag(r rune) bool {
	return r == 0xE007F
}

// IsBlackFlag returns true for the black flag emoji, the base of
// subdivision flag sequences.
func IsBlackFlag(r rune) bool {
	return r == 0x1F3F4
}

// IsNoise returns true for the invisible code points that only make sense
// attached to a base emoji: joiners and variation selectors.
func IsNoise(r rune) bool {
	return IsZWJ(r) || IsVariationSelector(r)
}

// isTrailingComponent returns true for code points that extend the emoji
// before them without starting a new one.
func isTrailingComponent(r rune) bool {
	return IsEmojiVariation(r) ||
		IsEmojiModifier(r) ||
		IsTagCharacter(r) ||
		IsCancelTag(r) ||
		IsCombiningEnclosingKeycap(r)
}
