// Package host connects the mix resolver to a chat surface.
//
// A Responder looks at every incoming message and decides whether it is
// addressed to emojimix:
//
//   - Command mode: the message starts with a configured prefix and command
//     name ("/emojimix 💩😊"). The rest of the message is resolved and every
//     outcome gets a reply, including corrective text for bad input.
//   - Auto-trigger mode (optional): a message that is exactly two emoji plus
//     whitespace is resolved without a command. Anything else is ignored
//     silently so ordinary chat is not answered.
package host

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mmr-tortoise/emojimix/internal/mixer"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// ReplyKind tells the host how to deliver a Reply.
type ReplyKind int

const (
	// ReplyText is a plain text message.
	ReplyText ReplyKind = iota

	// ReplyImage is an image to be fetched from Reply.URL.
	ReplyImage
)

// String returns "text" or "image".
func (k ReplyKind) String() string {
	if k == ReplyImage {
		return "image"
	}
	return "text"
}

// Reply is what the host should send back.
type Reply struct {
	Kind ReplyKind `json:"kind"`
	URL  string    `json:"url,omitempty"`
	Text string    `json:"text,omitempty"`
}

// Resolver is the part of *mixer.Resolver used by the Responder.
type Resolver interface {
	ResolveMix(ctx context.Context, text string) model.MixResult
}

// Options configures a Responder.
type Options struct {
	// CommandNames are the command words, e.g. "emojimix".
	CommandNames []string

	// Prefixes may precede a command name. "" allows the bare word.
	Prefixes []string

	// AutoTrigger enables resolving plain two-emoji messages.
	AutoTrigger bool

	// Locale selects the reply table ("en" or "zh").
	Locale string

	// OnClose runs once when the Responder is closed, e.g. to drop idle
	// HTTP connections.
	OnClose func()
}

// Responder turns chat messages into replies. It is safe for concurrent
// use; each message is handled independently.
type Responder struct {
	resolver Resolver
	opts     Options
	commands []string
	messages Messages
	logger   *zap.Logger
}

// NewResponder creates a Responder and logs that it is ready.
func NewResponder(resolver Resolver, opts Options, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Responder{
		resolver: resolver,
		opts:     opts,
		commands: commandForms(opts.Prefixes, opts.CommandNames),
		messages: MessagesFor(opts.Locale),
		logger:   logger.Named("host"),
	}
	r.logger.Info("responder initialised",
		zap.Strings("commands", r.commands),
		zap.Bool("auto_trigger", opts.AutoTrigger),
		zap.String("locale", opts.Locale),
	)
	return r
}

// commandForms expands every prefix/name combination, longest first so that
// "/emojimix" is tried before the bare "emojimix".
func commandForms(prefixes, names []string) []string {
	var forms []string
	seen := make(map[string]bool)
	for _, p := range prefixes {
		for _, n := range names {
			form := p + n
			if n == "" || seen[form] {
				continue
			}
			seen[form] = true
			forms = append(forms, form)
		}
	}
	sort.SliceStable(forms, func(i, j int) bool {
		return len(forms[i]) > len(forms[j])
	})
	return forms
}

// Handle processes one message. The boolean reports whether the message was
// addressed to emojimix; when it is false the Reply is empty and the host
// should let other handlers see the message.
func (r *Responder) Handle(ctx context.Context, message string) (Reply, bool) {
	text := strings.TrimSpace(message)
	if text == "" {
		return Reply{}, false
	}

	if args, ok := r.matchCommand(text); ok {
		return r.handleCommand(ctx, args), true
	}

	if r.opts.AutoTrigger {
		return r.handleAuto(ctx, text)
	}
	return Reply{}, false
}

// Close logs shutdown and runs the OnClose hook.
func (r *Responder) Close() error {
	r.logger.Info("responder terminating")
	if r.opts.OnClose != nil {
		r.opts.OnClose()
	}
	return nil
}

// matchCommand reports whether text starts with a command form and returns
// the trimmed arguments. The command must end at a word boundary, so
// "emojimixer" is not a command.
func (r *Responder) matchCommand(text string) (string, bool) {
	for _, form := range r.commands {
		if !strings.HasPrefix(text, form) {
			continue
		}
		rest := text[len(form):]
		if next, _ := utf8.DecodeRuneInString(rest); rest != "" && (unicode.IsLetter(next) || unicode.IsDigit(next)) {
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func (r *Responder) handleCommand(ctx context.Context, args string) Reply {
	if args == "" {
		r.logger.Debug("command without arguments")
		return textReply(r.messages.usage(r.example()))
	}

	result := r.resolver.ResolveMix(ctx, args)
	r.logger.Debug("command resolved", zap.String("args", args), zap.Stringer("status", result.Status))
	return r.replyFor(result)
}

func (r *Responder) handleAuto(ctx context.Context, text string) (Reply, bool) {
	if _, err := mixer.Parse(text); err != nil {
		r.logger.Debug("message ignored", zap.Error(err))
		return Reply{}, false
	}

	result := r.resolver.ResolveMix(ctx, text)
	r.logger.Debug("auto-trigger resolved", zap.Stringer("status", result.Status))
	return r.replyFor(result), true
}

// replyFor maps a resolution to the reply the user sees.
func (r *Responder) replyFor(result model.MixResult) Reply {
	switch result.Status {
	case model.StatusFound:
		return Reply{Kind: ReplyImage, URL: result.URL}
	case model.StatusNeedTwoEmoji:
		if len(result.Clusters) == 1 {
			return textReply(r.messages.OneEmoji)
		}
		return textReply(r.messages.NoEmoji)
	case model.StatusTooManyEmoji:
		return textReply(r.messages.TooMany)
	case model.StatusExtraneousText:
		return textReply(r.messages.extraneous(result.Remainder))
	default:
		a, b := "?", "?"
		if len(result.Clusters) == 2 {
			a, b = result.Clusters[0].Text, result.Clusters[1].Text
		}
		return textReply(r.messages.notFound(a, b))
	}
}

// example returns a sample command line for the usage text.
func (r *Responder) example() string {
	cmd := "emojimix"
	if len(r.opts.CommandNames) > 0 {
		cmd = r.opts.CommandNames[0]
	}
	prefix := ""
	if len(r.opts.Prefixes) > 0 {
		prefix = r.opts.Prefixes[0]
	}
	return prefix + cmd + " 💩😊"
}

func textReply(text string) Reply {
	return Reply{Kind: ReplyText, Text: text}
}
