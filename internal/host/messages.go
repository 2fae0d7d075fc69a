package host

import "fmt"

// Messages holds the reply texts for one locale. Format verbs are
// documented per field.
type Messages struct {
	// Usage is sent for a command without arguments. %s is an example
	// command line.
	Usage string

	// NoEmoji is sent when the arguments contain no emoji.
	NoEmoji string

	// OneEmoji is sent when the arguments contain a single emoji.
	OneEmoji string

	// TooMany is sent for more than two emoji.
	TooMany string

	// Extraneous is sent when text besides the emoji was found. %s is the
	// extra text.
	Extraneous string

	// NotFound is sent when no mix exists. The two %s are the emoji.
	NotFound string
}

var english = Messages{
	Usage:      "🤔 Give me two emoji to mix after the command.\nFor example: `%s`",
	NoEmoji:    "🤔 No emoji found in your message. Please send two emoji.",
	OneEmoji:   "🤔 Only one emoji found. Please send two emoji to mix.",
	TooMany:    "🤔 More than two emoji found. Please send exactly two.",
	Extraneous: "🤔 Please send only two emoji (spaces are fine). Extra characters found: '%s'",
	NotFound:   "😟 Sorry, no mix exists for %s and %s.\nThe pair may not be in the catalog, or one of them is not a single emoji.",
}

var chinese = Messages{
	Usage:      "🤔 请在命令后提供两个 Emoji 来合成。\n例如: `%s`",
	NoEmoji:    "🤔 未能在输入中检测到有效的 Emoji，请提供两个 Emoji。",
	OneEmoji:   "🤔 检测到只有一个 Emoji，请提供两个 Emoji 来合成。",
	TooMany:    "🤔 检测到超过两个 Emoji，请只提供两个 Emoji 来合成。",
	Extraneous: "🤔 请确保命令后只提供两个 Emoji (可以有空格分隔)。检测到额外字符: '%s'",
	NotFound:   "😟 抱歉，无法找到 %s 和 %s 的混合 Emoji。\n可能是这对组合不存在，或者输入的不是有效的单个 Emoji 哦。",
}

// MessagesFor returns the reply table for locale ("en" or "zh"). Unknown
// locales fall back to English.
func MessagesFor(locale string) Messages {
	if locale == "zh" {
		return chinese
	}
	return english
}

func (m Messages) usage(example string) string {
	return fmt.Sprintf(m.Usage, example)
}

func (m Messages) extraneous(rest string) string {
	return fmt.Sprintf(m.Extraneous, rest)
}

func (m Messages) notFound(a, b string) string {
	return fmt.Sprintf(m.NotFound, a, b)
}
