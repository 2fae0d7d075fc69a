package emoji

// unknownStrSeq is the string returned for unknown sequence enum values.
const unknownStrSeq = "Unknown"

// SequenceType indicates the kind of emoji sequence a cluster holds.
type SequenceType int

const (
	// SequenceSimple is a single emoji character.
	SequenceSimple SequenceType = iota

	// SequenceZWJ is a Zero-Width Joiner sequence (family, profession, etc.).
	SequenceZWJ

	// SequenceFlag is a country flag formed by two regional indicators.
	SequenceFlag

	// SequenceKeycap is a keycap sequence, e.g. # + U+FE0F + U+20E3.
	SequenceKeycap

	// SequenceModified is a base emoji with a skin tone modifier.
	SequenceModified

	// SequenceTag is a subdivision flag sequence (black flag + tags + cancel).
	SequenceTag

	// SequencePresentation is a character with the emoji variation selector,
	// e.g. U+2764 + U+FE0F.
	SequencePresentation
)

// sequenceTypeNames maps SequenceType to string names.
var sequenceTypeNames = [...]string{
	SequenceSimple:       "Simple",
	SequenceZWJ:          "ZWJ",
	SequenceFlag:         "Flag",
	SequenceKeycap:       "Keycap",
	SequenceModified:     "Modified",
	SequenceTag:          "Tag",
	SequencePresentation: "Presentation",
}

// String returns the string name of the sequence type.
func (t SequenceType) String() string {
	if t >= 0 && int(t) < len(sequenceTypeNames) {
		return sequenceTypeNames[t]
	}
	return unknownStrSeq
}

// Classify reports the sequence type of one cluster's text. ZWJ wins over
// every other kind because a joined sequence may contain modifiers and
// presentation selectors in its members.
func Classify(cluster string) SequenceType {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return SequenceSimple
	}

	var hasZWJ, hasModifier, hasVS16, hasTag, hasKeycap bool
	for _, r := range runes {
		switch {
		case IsZWJ(r):
			hasZWJ = true
		case IsEmojiModifier(r):
			hasModifier = true
		case IsEmojiVariation(r):
			hasVS16 = true
		case IsTagCharacter(r), IsCancelTag(r):
			hasTag = true
		case IsCombiningEnclosingKeycap(r):
			hasKeycap = true
		}
	}

	switch {
	case hasZWJ:
		return SequenceZWJ
	case len(runes) == 2 && IsRegionalIndicator(runes[0]) && IsRegionalIndicator(runes[1]):
		return SequenceFlag
	case hasKeycap && IsKeycapBase(runes[0]):
		return SequenceKeycap
	case hasTag && IsBlackFlag(runes[0]):
		return SequenceTag
	case hasModifier && len(runes) > 1:
		return SequenceModified
	case hasVS16:
		return SequencePresentation
	default:
		return SequenceSimple
	}
}

// FlagCode extracts the two-letter region code from a flag cluster.
// Returns an empty string if the cluster is not a regional indicator pair.
func FlagCode(cluster string) string {
	runes := []rune(cluster)
	if len(runes) != 2 || !IsRegionalIndicator(runes[0]) || !IsRegionalIndicator(runes[1]) {
		return ""
	}

	// Regional indicators A-Z map to U+1F1E6-U+1F1FF.
	return string([]rune{'A' + (runes[0] - 0x1F1E6), 'A' + (runes[1] - 0x1F1E6)})
}
