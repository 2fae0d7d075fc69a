package config

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/mmr-tortoise/emojimix/internal/catalog"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Environment variables that override file values.
const (
	EnvTimeout     = "EMOJIMIX_TIMEOUT"
	EnvAutoTrigger = "EMOJIMIX_AUTO_TRIGGER"
	EnvConcurrency = "EMOJIMIX_CONCURRENCY"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	// Field is the key path, e.g. "probe.concurrency".
	Field string

	// Message describes what is wrong.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks every field and returns all problems combined with
// multierr, or nil. Template problems are returned as *model.TemplateError
// so callers can tell them apart.
func (c *Config) Validate() error {
	var errs error

	if len(c.Revisions) == 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "revisions", Message: "at least one revision is required"})
	}
	seen := make(map[model.CatalogRevision]bool, len(c.Revisions))
	for i, rev := range c.Revisions {
		switch {
		case strings.TrimSpace(string(rev)) == "":
			errs = multierr.Append(errs, &ValidationError{Field: fmt.Sprintf("revisions[%d]", i), Message: "revision is empty"})
		case seen[rev]:
			errs = multierr.Append(errs, &ValidationError{Field: fmt.Sprintf("revisions[%d]", i), Message: fmt.Sprintf("duplicate revision %q", rev)})
		}
		seen[rev] = true
	}

	if tmpl, err := c.Template(); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for _, key := range []string{catalog.KeyHex1, catalog.KeyHex2} {
			if !tmpl.Uses(key) {
				errs = multierr.Append(errs, &model.TemplateError{
					Template: c.URLTemplate,
					Key:      key,
					Reason:   "missing required placeholder",
				})
			}
		}
	}

	if c.RequestTimeout <= 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "request_timeout", Message: "must be positive"})
	}
	if c.Probe.Concurrency < 1 {
		errs = multierr.Append(errs, &ValidationError{Field: "probe.concurrency", Message: "must be at least 1"})
	}
	if c.Probe.OverallTimeout < 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "probe.overall_timeout", Message: "must not be negative"})
	}

	switch c.Locale {
	case LocaleEnglish, LocaleChinese:
	default:
		errs = multierr.Append(errs, &ValidationError{
			Field:   "locale",
			Message: fmt.Sprintf("unsupported locale %q (want %q or %q)", c.Locale, LocaleEnglish, LocaleChinese),
		})
	}

	if len(c.Command.Names) == 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "command.names", Message: "at least one command name is required"})
	}
	for i, name := range c.Command.Names {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n") {
			errs = multierr.Append(errs, &ValidationError{Field: fmt.Sprintf("command.names[%d]", i), Message: "must be a single non-empty word"})
		}
	}
	if len(c.Command.Prefixes) == 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "command.prefixes", Message: "at least one prefix is required (use \"\" for none)"})
	}

	return errs
}

// ApplyEnv overrides fields from environment variables read through
// lookup (normally os.LookupEnv). Malformed values are reported together.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs error

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, &ValidationError{Field: EnvTimeout, Message: err.Error()})
		} else {
			c.RequestTimeout = d
		}
	}

	if v, ok := lookup(EnvAutoTrigger); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierr.Append(errs, &ValidationError{Field: EnvAutoTrigger, Message: fmt.Sprintf("invalid boolean %q", v)})
		} else {
			c.AutoTrigger = b
		}
	}

	if v, ok := lookup(EnvConcurrency); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, &ValidationError{Field: EnvConcurrency, Message: fmt.Sprintf("invalid integer %q", v)})
		} else {
			c.Probe.Concurrency = n
		}
	}

	return errs
}
