package host

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/emojimix/internal/catalog"
	"github.com/mmr-tortoise/emojimix/internal/mixer"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

const (
	poo      = "\U0001F4A9"
	smile    = "\U0001F60A"
	thumbsUp = "\U0001F44D"
	fire     = "\U0001F525"
)

// catalogChecker reports a hit only for URLs in exist and counts probes.
type catalogChecker struct {
	mu     sync.Mutex
	exist  map[string]bool
	probes int
}

func (c *catalogChecker) Probe(_ context.Context, candidates []model.CandidateURL) (model.CandidateURL, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes++
	for _, cand := range candidates {
		if c.exist[cand.URL] {
			return cand, true
		}
	}
	return model.CandidateURL{}, false
}

func newResponder(t *testing.T, opts Options, checker *catalogChecker) *Responder {
	t.Helper()

	gen, err := catalog.NewGenerator(catalog.MustTemplate("https://img/{revision}/{hex1}_{hex2}.png"), []model.CatalogRevision{"r1"})
	require.NoError(t, err)

	resolver, err := mixer.New(mixer.Options{}, gen, checker, nil)
	require.NoError(t, err)

	if opts.CommandNames == nil {
		opts.CommandNames = []string{"emojimix", "合成emoji"}
	}
	if opts.Prefixes == nil {
		opts.Prefixes = []string{"/", "!", ""}
	}
	return NewResponder(resolver, opts, nil)
}

func TestHandle_Command(t *testing.T) {
	checker := &catalogChecker{exist: map[string]bool{"https://img/r1/1f4a9_1f60a.png": true}}
	r := newResponder(t, Options{Locale: "en"}, checker)

	tests := []struct {
		name     string
		message  string
		wantKind ReplyKind
		wantURL  string
		wantText string
	}{
		{
			name:     "found",
			message:  "/emojimix " + poo + smile,
			wantKind: ReplyImage,
			wantURL:  "https://img/r1/1f4a9_1f60a.png",
		},
		{
			name:     "alias without space",
			message:  "合成emoji" + poo + " " + smile,
			wantKind: ReplyImage,
			wantURL:  "https://img/r1/1f4a9_1f60a.png",
		},
		{
			name:     "bare command word",
			message:  "emojimix " + poo + smile,
			wantKind: ReplyImage,
			wantURL:  "https://img/r1/1f4a9_1f60a.png",
		},
		{
			name:     "usage",
			message:  "/emojimix   ",
			wantKind: ReplyText,
			wantText: english.usage("/emojimix 💩😊"),
		},
		{
			name:     "no emoji",
			message:  "!emojimix hello",
			wantKind: ReplyText,
			wantText: english.NoEmoji,
		},
		{
			name:     "one emoji",
			message:  "/emojimix " + thumbsUp,
			wantKind: ReplyText,
			wantText: english.OneEmoji,
		},
		{
			name:     "too many",
			message:  "/emojimix " + poo + smile + fire,
			wantKind: ReplyText,
			wantText: english.TooMany,
		},
		{
			name:     "extraneous",
			message:  "/emojimix hi " + thumbsUp + smile,
			wantKind: ReplyText,
			wantText: english.extraneous("hi"),
		},
		{
			name:     "not found",
			message:  "/emojimix " + fire + thumbsUp,
			wantKind: ReplyText,
			wantText: english.notFound(fire, thumbsUp),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, handled := r.Handle(context.Background(), tt.message)
			require.True(t, handled)
			assert.Equal(t, tt.wantKind, reply.Kind)
			assert.Equal(t, tt.wantURL, reply.URL)
			assert.Equal(t, tt.wantText, reply.Text)
		})
	}
}

// TestHandle_AutoTrigger verifies that only exact two-emoji messages are
// answered and that everything else is left alone.
func TestHandle_AutoTrigger(t *testing.T) {
	checker := &catalogChecker{exist: map[string]bool{"https://img/r1/1f4a9_1f60a.png": true}}
	r := newResponder(t, Options{AutoTrigger: true}, checker)

	reply, handled := r.Handle(context.Background(), " "+poo+" "+smile+" ")
	require.True(t, handled)
	assert.Equal(t, ReplyImage, reply.Kind)

	reply, handled = r.Handle(context.Background(), fire+fire)
	require.True(t, handled)
	assert.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, english.notFound(fire, fire), reply.Text)

	probesBefore := checker.probes
	for _, msg := range []string{"", "   ", "hello", thumbsUp, "hi " + poo + smile, poo + smile + fire} {
		_, handled := r.Handle(context.Background(), msg)
		assert.False(t, handled, "message %q", msg)
	}
	assert.Equal(t, probesBefore, checker.probes)
}

func TestHandle_AutoTriggerDisabled(t *testing.T) {
	checker := &catalogChecker{}
	r := newResponder(t, Options{AutoTrigger: false}, checker)

	_, handled := r.Handle(context.Background(), poo+smile)
	assert.False(t, handled)
	assert.Zero(t, checker.probes)

	// Commands still work.
	_, handled = r.Handle(context.Background(), "/emojimix "+poo+smile)
	assert.True(t, handled)
}

func TestHandle_CommandWordBoundary(t *testing.T) {
	r := newResponder(t, Options{}, &catalogChecker{})

	_, handled := r.Handle(context.Background(), "emojimixer "+poo+smile)
	assert.False(t, handled)
}

func TestHandle_ChineseLocale(t *testing.T) {
	r := newResponder(t, Options{Locale: "zh"}, &catalogChecker{})

	reply, handled := r.Handle(context.Background(), "/emojimix "+thumbsUp)
	require.True(t, handled)
	assert.Equal(t, chinese.OneEmoji, reply.Text)

	reply, _ = r.Handle(context.Background(), "/合成emoji")
	assert.Equal(t, chinese.usage("/emojimix 💩😊"), reply.Text)
}

func TestCommandForms(t *testing.T) {
	forms := commandForms([]string{"", "/", "/"}, []string{"mix", ""})
	assert.Equal(t, []string{"/mix", "mix"}, forms)
}

func TestMessagesFor(t *testing.T) {
	assert.Equal(t, english, MessagesFor("en"))
	assert.Equal(t, chinese, MessagesFor("zh"))
	assert.Equal(t, english, MessagesFor("fr"))
}

func TestClose_RunsHook(t *testing.T) {
	closed := 0
	r := newResponder(t, Options{OnClose: func() { closed++ }}, &catalogChecker{})

	require.NoError(t, r.Close())
	assert.Equal(t, 1, closed)
}

func TestReplyKind_String(t *testing.T) {
	assert.Equal(t, "image", ReplyImage.String())
	assert.Equal(t, "text", ReplyText.String())
}
