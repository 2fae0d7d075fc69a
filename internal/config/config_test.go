package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/emojimix/internal/catalog"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// clearEnv makes sure overrides from the developer's shell do not leak into
// Load tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvTimeout, EnvAutoTrigger, EnvConcurrency} {
		t.Setenv(key, "")
	}
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, catalog.DefaultTemplate, cfg.URLTemplate)
	assert.Equal(t, catalog.DefaultRevisions, cfg.Revisions)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout.Std())
	assert.True(t, cfg.AutoTrigger)
	assert.Equal(t, LocaleEnglish, cfg.Locale)
	assert.Equal(t, 1, cfg.Probe.Concurrency)
	assert.Equal(t, []string{"emojimix", "合成emoji"}, cfg.Command.Names)
	assert.Equal(t, []string{"/", "!", ""}, cfg.Command.Prefixes)

	// Default must hand out its own copy of the revision list.
	cfg.Revisions[0] = "mutated"
	assert.NotEqual(t, model.CatalogRevision("mutated"), catalog.DefaultRevisions[0])
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestLoad_PluginJSONC verifies that a plugin-style JSONC file with legacy
// key names, comments, trailing commas, numeric revisions and a timeout in
// seconds is accepted.
func TestLoad_PluginJSONC(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(fixture("plugin.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, []model.CatalogRevision{"20201001", "20210218"}, cfg.Revisions)
	assert.Contains(t, cfg.URLTemplate, "{date_code}")
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout.Std())
	assert.False(t, cfg.AutoTrigger)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, LocaleEnglish, cfg.Locale)
	assert.Equal(t, DefaultConcurrency, cfg.Probe.Concurrency)

	gen, err := cfg.NewGenerator()
	require.NoError(t, err)
	urls := gen.Generate("1f4a9", "1f60a")
	require.Len(t, urls, 4)
	assert.Equal(t, "https://www.gstatic.com/android/keyboard/emojikitchen/20201001/u1f4a9/u1f4a9_u1f60a.png", urls[0].URL)
}

func TestLoad_FullYAML(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(fixture("full.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []model.CatalogRevision{"20230301", "20201001"}, cfg.Revisions)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout.Std())
	assert.True(t, cfg.AutoTrigger)
	assert.Equal(t, LocaleChinese, cfg.Locale)
	assert.Equal(t, 4, cfg.Probe.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Probe.OverallTimeout.Std())
	assert.Equal(t, "test-agent/1.0", cfg.Probe.UserAgent)
	assert.Equal(t, []string{"mix"}, cfg.Command.Names)
	assert.Equal(t, []string{"/"}, cfg.Command.Prefixes)
}

// TestLoad_InvalidAggregatesErrors verifies that every problem in a file is
// reported at once.
func TestLoad_InvalidAggregatesErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(fixture("invalid.yaml"))
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 5)
	assert.True(t, model.IsTemplateError(err))

	var fields []string
	for _, e := range errs {
		var ve *ValidationError
		if errors.As(e, &ve) {
			fields = append(fields, ve.Field)
		}
	}
	assert.ElementsMatch(t, []string{"revisions", "request_timeout", "probe.concurrency", "locale"}, fields)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(fixture("does-not-exist.yaml"))
		var cliErr *model.CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitConfigError, cliErr.Code)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(fixture("malformed.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML config")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "emojimix.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

		_, err := Load(path)
		var cliErr *model.CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitConfigError, cliErr.Code)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "emojimix.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"request_timeout": "soon"}`), 0o644))

		_, err := Load(path)
		require.Error(t, err)
	})
}

// TestLoad_CurrentKeysWinOverAliases verifies precedence when both the
// current and the legacy key are present.
func TestLoad_CurrentKeysWinOverAliases(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "emojimix.yaml")
	content := `
revisions: ["new"]
date_codes: ["old"]
url_template: "https://a/{revision}/{hex1}_{hex2}"
base_url_template: "https://b/{date_code}/{hex1}_{hex2}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.CatalogRevision{"new"}, cfg.Revisions)
	assert.Equal(t, "https://a/{revision}/{hex1}_{hex2}", cfg.URLTemplate)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvTimeout:     "2.5",
		EnvAutoTrigger: "false",
		EnvConcurrency: "3",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout.Std())
	assert.False(t, cfg.AutoTrigger)
	assert.Equal(t, 3, cfg.Probe.Concurrency)

	env = map[string]string{
		EnvTimeout:     "later",
		EnvAutoTrigger: "maybe",
		EnvConcurrency: "many",
	}
	err := Default().ApplyEnv(lookup)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAutoTrigger, "true")
	t.Setenv(EnvTimeout, "750ms")

	cfg, err := Load(fixture("plugin.jsonc"))
	require.NoError(t, err)
	assert.True(t, cfg.AutoTrigger)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout.Std())
}

func TestValidate_TemplateMissingPlaceholder(t *testing.T) {
	cfg := Default()
	cfg.URLTemplate = "https://x/{revision}/{hex1}.png"

	err := cfg.Validate()
	require.Error(t, err)

	var te *model.TemplateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, catalog.KeyHex2, te.Key)
}

func TestValidate_DuplicateAndBlankRevisions(t *testing.T) {
	cfg := Default()
	cfg.Revisions = []model.CatalogRevision{"r1", " ", "r1"}

	errs := multierr.Errors(cfg.Validate())
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "revisions[1]")
	assert.Contains(t, errs[1].Error(), "duplicate revision")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "5", want: 5 * time.Second},
		{in: "0.25", want: 250 * time.Millisecond},
		{in: "1m30s", want: 90 * time.Second},
		{in: " 200ms ", want: 200 * time.Millisecond},
		{in: "", wantErr: true},
		{in: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Std())
		})
	}
}

// TestYAML_RoundTrip verifies that the rendered configuration loads back to
// the same values.
func TestYAML_RoundTrip(t *testing.T) {
	clearEnv(t)

	cfg := Default()
	cfg.Probe.OverallTimeout = Duration(8 * time.Second)
	cfg.Locale = LocaleChinese

	out, err := cfg.YAML()
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &generic))
	assert.Equal(t, "5s", generic["request_timeout"])

	path := filepath.Join(t.TempDir(), "emojimix.yml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()

	_, ok := Locate(dir)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "emojimix.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "emojimix.yml"), []byte("{}"), 0o644))

	path, ok := Locate(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "emojimix.yml"), path)
}
