// Package hexcode converts emoji clusters into catalog hex identifiers.
//
// An identifier is the lowercase hexadecimal form of every significant code
// point, joined by "-". Joiners (U+200D) and the emoji variation selector
// (U+FE0F) are never significant.
//
// Encoding works on UTF-16 code units so that text delivered by UTF-16
// hosts and Go strings go through the same surrogate-pair recombination.
package hexcode

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/mmr-tortoise/emojimix/internal/model"
)

const (
	zwj  = 0x200D
	vs16 = 0xFE0F

	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

// Encode returns the hex identifier of one cluster.
// It fails with *model.EncodingError when nothing is left after stripping
// variation selectors and joiners.
func Encode(cluster model.EmojiCluster) (model.HexIdentifier, error) {
	return EncodeString(cluster.Text)
}

// EncodeString is Encode for raw cluster text.
func EncodeString(text string) (model.HexIdentifier, error) {
	return EncodeUTF16(utf16.Encode([]rune(text)))
}

// EncodeUTF16 returns the hex identifier of a cluster given as UTF-16 code
// units. A high surrogate followed by a low surrogate is recombined into
// one code point before encoding; an unpaired surrogate is encoded as-is.
func EncodeUTF16(units []uint16) (model.HexIdentifier, error) {
	codepoints := combine(units)

	// Step 1: strip variation selectors.
	cleaned := make([]rune, 0, len(codepoints))
	hasJoiner := false
	for _, cp := range codepoints {
		switch cp {
		case vs16:
			continue
		case zwj:
			hasJoiner = true
		}
		cleaned = append(cleaned, cp)
	}

	// Step 2: a joined sequence encodes every non-joiner code point.
	// Step 3: otherwise the cluster is taken as-is; a lone code point gives
	// its plain hex value.
	segments := make([]string, 0, len(cleaned))
	for _, cp := range cleaned {
		if hasJoiner && cp == zwj {
			continue
		}
		segments = append(segments, strconv.FormatInt(int64(cp), 16))
	}

	// Step 4: nothing significant left.
	if len(segments) == 0 {
		return "", &model.EncodingError{Cluster: string(utf16.Decode(units))}
	}

	return model.HexIdentifier(strings.Join(segments, "-")), nil
}

// combine walks UTF-16 code units and recombines surrogate pairs as
// (high-0xD800)*0x400 + (low-0xDC00) + 0x10000.
func combine(units []uint16) []rune {
	codepoints := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(rune(units[i+1])) {
			low := rune(units[i+1])
			codepoints = append(codepoints, (u-highSurrogateMin)*0x400+(low-lowSurrogateMin)+0x10000)
			i++
			continue
		}
		codepoints = append(codepoints, u)
	}
	return codepoints
}

func isHighSurrogate(u rune) bool {
	return u >= highSurrogateMin && u <= highSurrogateMax
}

func isLowSurrogate(u rune) bool {
	return u >= lowSurrogateMin && u <= lowSurrogateMax
}
