// chat.go implements the "emojimix chat" command.
//
// The chat command is an interactive stand-in for a chat platform: every
// line typed is treated as an incoming message and passed to the host
// Responder, exactly as a bot integration would. Command messages
// ("/emojimix 💩😊") and, when auto_trigger is on, bare two-emoji messages
// get a reply; other lines are ignored like ordinary chat.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/emojimix/internal/host"
	"github.com/mmr-tortoise/emojimix/internal/mixer"
)

// lineReader is the part of *readline.Instance used by the chat loop.
type lineReader interface {
	Readline() (string, error)
	Stdout() io.Writer
	Close() error
}

// NewChatCommand creates the "chat" cobra command.
func NewChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Try emojimix as a chat bot in the terminal",
		Long: `Start an interactive session that behaves like a chat room.

Each line is handled as a chat message. Send "/emojimix 💩😊" to use the
command, or just "💩😊" when auto_trigger is enabled. Type "exit" or press
Ctrl-D to leave.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context())
		},
	}
}

func runChat(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	r, err := a.resolver(mixer.Options{})
	if err != nil {
		a.close()
		return err
	}
	responder := a.responder(r)
	defer func() { _ = responder.Close() }()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "emojimix> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}

	return chatLoop(ctx, rl, responder)
}

// chatLoop reads lines until EOF, "exit" or cancellation and prints the
// reply for each handled message. It closes rl before returning.
func chatLoop(ctx context.Context, rl lineReader, responder *host.Responder) error {
	defer func() { _ = rl.Close() }()

	out := rl.Stdout()
	fmt.Fprintln(out, `Type a message, e.g. "/emojimix 💩😊". "exit" quits.`)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// Ctrl-C clears the line; anything else (EOF) ends the session.
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "exit", "quit", "q":
			fmt.Fprintln(out, "Exiting...")
			return nil
		}

		reply, handled := responder.Handle(ctx, input)
		if !handled {
			continue
		}
		printReply(out, reply)
	}
}

// printReply writes one reply the way a chat client would show it.
func printReply(w io.Writer, reply host.Reply) {
	switch reply.Kind {
	case host.ReplyImage:
		fmt.Fprintf(w, "[image] %s\n", reply.URL)
	default:
		fmt.Fprintln(w, reply.Text)
	}
}
