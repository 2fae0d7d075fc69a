package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Duration is a time.Duration that reads either a Go duration string
// ("1.5s", "500ms") or a plain number of seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the Go duration string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// ParseDuration parses a duration string or a number of seconds.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return seconds(secs), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return Duration(d), nil
}

func seconds(secs float64) Duration {
	return Duration(secs * float64(time.Second))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case float64:
		*d = seconds(val)
		return nil
	case string:
		parsed, err := ParseDuration(val)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("duration must be a string or a number of seconds, got %s", string(data))
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// revisionList accepts revision codes written as strings or as bare
// numbers (20201001), which is common in hand-written files.
type revisionList []model.CatalogRevision

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *revisionList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: revisions must be a list", node.Line)
	}
	out := make(revisionList, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: revision must be a scalar", item.Line)
		}
		out = append(out, model.CatalogRevision(item.Value))
	}
	*r = out
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *revisionList) UnmarshalJSON(data []byte) error {
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("revisions must be a list: %w", err)
	}
	out := make(revisionList, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, model.CatalogRevision(v))
		case float64:
			// JSON numbers decode to float64; revision codes are integers.
			out = append(out, model.CatalogRevision(strconv.FormatFloat(v, 'f', -1, 64)))
		default:
			return fmt.Errorf("revision must be a string or number, got %v", item)
		}
	}
	*r = out
	return nil
}
