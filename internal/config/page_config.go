package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// IntervalHours is a check interval in whole hours. It accepts plain integers
// as well as strings with an optional "h" suffix ("6", "6h").
type IntervalHours int

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *IntervalHours) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseIntervalHours(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*h = v
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *IntervalHours) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	v, err := parseIntervalHours(raw)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Duration converts the interval to a time.Duration. Validation caps the
// interval at MaxCheckIntervalHours, well below time.Duration's range.
func (h IntervalHours) Duration() time.Duration {
	return time.Duration(h) * time.Hour
}

func parseIntervalHours(raw string) (IntervalHours, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "h")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid check interval %q: expected whole hours", raw)
	}
	return IntervalHours(n), nil
}

// PageConfig describes one monitored page.
type PageConfig struct {
	Name             string        `json:"name" yaml:"name" validate:"required,pagename"`
	URL              string        `json:"url" yaml:"url" validate:"required,http_url"`
	CheckEveryXHours IntervalHours `json:"check_every_x_hours" yaml:"check_every_x_hours" validate:"min=1,max=87600"`
}
