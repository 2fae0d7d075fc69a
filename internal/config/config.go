// Package config loads and validates emojimix configuration.
//
// Two file formats are accepted:
//   - YAML (.yaml, .yml), parsed with gopkg.in/yaml.v3
//   - JSON with comments (.json, .jsonc), stripped with github.com/tidwall/jsonc
//     and parsed with encoding/json
//
// The JSON form accepts the key names used by chat-bot plugin configs
// (date_codes, base_url_template, request_timeout in seconds), so an existing
// plugin config file can be used unchanged.
//
// Keys missing from the file keep their defaults. Environment variables are
// applied last and override both.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/emojimix/internal/catalog"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Supported locales for reply text.
const (
	LocaleEnglish = "en"
	LocaleChinese = "zh"
)

// Default values.
const (
	DefaultRequestTimeout = 5 * time.Second
	DefaultConcurrency    = 1
)

// DefaultFileNames are looked up, in order, by Locate.
var DefaultFileNames = []string{
	"emojimix.yaml",
	"emojimix.yml",
	"emojimix.jsonc",
	"emojimix.json",
}

// Config is the effective, immutable-after-load configuration.
type Config struct {
	// Revisions is the ordered catalog revision list. Earlier entries are
	// probed first.
	Revisions []model.CatalogRevision `yaml:"revisions" json:"revisions"`

	// URLTemplate is the asset URL template; see package catalog.
	URLTemplate string `yaml:"url_template" json:"url_template"`

	// RequestTimeout bounds each existence check.
	RequestTimeout Duration `yaml:"request_timeout" json:"request_timeout"`

	// AutoTrigger enables resolving plain two-emoji messages without a
	// command.
	AutoTrigger bool `yaml:"auto_trigger" json:"auto_trigger"`

	// Locale selects the reply language ("en" or "zh").
	Locale string `yaml:"locale" json:"locale"`

	// Probe tunes the existence prober.
	Probe ProbeConfig `yaml:"probe" json:"probe"`

	// Command configures command recognition in chat messages.
	Command CommandConfig `yaml:"command" json:"command"`
}

// ProbeConfig tunes the existence prober.
type ProbeConfig struct {
	// Concurrency is the number of checks in flight at once. 1 probes
	// strictly one candidate at a time.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// OverallTimeout bounds one whole resolution. Zero disables it.
	OverallTimeout Duration `yaml:"overall_timeout" json:"overall_timeout"`

	// UserAgent overrides the User-Agent header sent with checks.
	UserAgent string `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
}

// CommandConfig configures how chat commands are recognised.
type CommandConfig struct {
	// Names are the command words, e.g. "emojimix".
	Names []string `yaml:"names" json:"names"`

	// Prefixes may precede a command name. The empty prefix allows bare
	// command words.
	Prefixes []string `yaml:"prefixes" json:"prefixes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	revs := make([]model.CatalogRevision, len(catalog.DefaultRevisions))
	copy(revs, catalog.DefaultRevisions)

	return &Config{
		Revisions:      revs,
		URLTemplate:    catalog.DefaultTemplate,
		RequestTimeout: Duration(DefaultRequestTimeout),
		AutoTrigger:    true,
		Locale:         LocaleEnglish,
		Probe: ProbeConfig{
			Concurrency: DefaultConcurrency,
		},
		Command: CommandConfig{
			Names:    []string{"emojimix", "合成emoji"},
			Prefixes: []string{"/", "!", ""},
		},
	}
}

// fileConfig mirrors Config with optional fields so that keys missing from
// a file can be told apart from zero values. Legacy key names are accepted
// alongside the current ones.
type fileConfig struct {
	Revisions       revisionList `yaml:"revisions" json:"revisions"`
	DateCodes       revisionList `yaml:"date_codes" json:"date_codes"`
	URLTemplate     *string      `yaml:"url_template" json:"url_template"`
	BaseURLTemplate *string      `yaml:"base_url_template" json:"base_url_template"`
	RequestTimeout  *Duration    `yaml:"request_timeout" json:"request_timeout"`
	AutoTrigger     *bool        `yaml:"auto_trigger" json:"auto_trigger"`
	Locale          *string      `yaml:"locale" json:"locale"`

	Probe *struct {
		Concurrency    *int      `yaml:"concurrency" json:"concurrency"`
		OverallTimeout *Duration `yaml:"overall_timeout" json:"overall_timeout"`
		UserAgent      *string   `yaml:"user_agent" json:"user_agent"`
	} `yaml:"probe" json:"probe"`

	Command *struct {
		Names    []string `yaml:"names" json:"names"`
		Prefixes []string `yaml:"prefixes" json:"prefixes"`
	} `yaml:"command" json:"command"`
}

// Load reads the configuration file at path, applies environment
// overrides, and validates the result. An empty path loads the defaults
// plus environment overrides.
//
// A missing file is reported as a CLIError with ExitConfigError. Validation
// problems are aggregated into a single error; see Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, model.WrapCLIError(
					model.ExitConfigError,
					fmt.Sprintf("config file not found: %s", path),
					err,
				)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		fc, err := decode(path, data)
		if err != nil {
			return nil, err
		}
		fc.applyTo(cfg)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Locate returns the first of DefaultFileNames present in dir.
func Locate(dir string) (string, bool) {
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// decode parses data according to the file extension of path.
func decode(path string, data []byte) (*fileConfig, error) {
	var fc fileConfig

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config at %s: %w", path, err)
		}

	case ".json", ".jsonc":
		// Plugin configs are hand-edited and often carry comments and
		// trailing commas.
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config at %s: %w", path, err)
		}

	default:
		return nil, model.NewCLIError(
			model.ExitConfigError,
			fmt.Sprintf("unsupported config file extension %q (want .yaml, .yml, .json or .jsonc)", ext),
		)
	}

	return &fc, nil
}

// applyTo copies every key present in the file onto cfg. Current key names
// win over legacy aliases when both are set.
func (fc *fileConfig) applyTo(cfg *Config) {
	switch {
	case fc.Revisions != nil:
		cfg.Revisions = []model.CatalogRevision(fc.Revisions)
	case fc.DateCodes != nil:
		cfg.Revisions = []model.CatalogRevision(fc.DateCodes)
	}

	switch {
	case fc.URLTemplate != nil:
		cfg.URLTemplate = *fc.URLTemplate
	case fc.BaseURLTemplate != nil:
		cfg.URLTemplate = *fc.BaseURLTemplate
	}

	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = *fc.RequestTimeout
	}
	if fc.AutoTrigger != nil {
		cfg.AutoTrigger = *fc.AutoTrigger
	}
	if fc.Locale != nil {
		cfg.Locale = *fc.Locale
	}

	if p := fc.Probe; p != nil {
		if p.Concurrency != nil {
			cfg.Probe.Concurrency = *p.Concurrency
		}
		if p.OverallTimeout != nil {
			cfg.Probe.OverallTimeout = *p.OverallTimeout
		}
		if p.UserAgent != nil {
			cfg.Probe.UserAgent = *p.UserAgent
		}
	}

	if c := fc.Command; c != nil {
		if c.Names != nil {
			cfg.Command.Names = c.Names
		}
		if c.Prefixes != nil {
			cfg.Command.Prefixes = c.Prefixes
		}
	}
}

// Template parses the configured URL template.
func (c *Config) Template() (*catalog.Template, error) {
	return catalog.NewTemplate(c.URLTemplate)
}

// NewGenerator builds the candidate generator described by the
// configuration.
func (c *Config) NewGenerator() (*catalog.Generator, error) {
	tmpl, err := c.Template()
	if err != nil {
		return nil, err
	}
	return catalog.NewGenerator(tmpl, c.Revisions)
}

// YAML renders the configuration in the YAML file format.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
