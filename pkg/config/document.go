// Package config defines the tracked-range configuration document and
// its validation.
//
// A document holds the date range (start to due date), the emoji shown
// on today's cell, and the milestone list. Dates travel as YYYY-MM-DD
// strings for storage compatibility; parsed accessors convert them on
// demand. Documents load from JSON (canonical storage format), TOML, or
// YAML, chosen by file extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mfbx9da4/meanwhile/pkg/calendar"
)

// DateFormat is the wire format for all document dates.
const DateFormat = "2006-01-02"

// Document is the full range configuration.
type Document struct {
	StartDate  string      `json:"startDate" toml:"start_date" yaml:"startDate"`
	DueDate    string      `json:"dueDate" toml:"due_date" yaml:"dueDate"`
	TodayEmoji string      `json:"todayEmoji" toml:"today_emoji" yaml:"todayEmoji"`
	Milestones []Milestone `json:"milestones" toml:"milestones" yaml:"milestones"`
}

// Milestone is a point or range event overlaid on the day sequence.
// A milestone with EndDate set is a range milestone and is laid out as
// a gantt bar, never as a point label.
type Milestone struct {
	Date        string `json:"date" toml:"date" yaml:"date"`
	EndDate     string `json:"endDate,omitempty" toml:"end_date,omitempty" yaml:"endDate,omitempty"`
	Label       string `json:"label" toml:"label" yaml:"label"`
	Emoji       string `json:"emoji" toml:"emoji" yaml:"emoji"`
	Color       string `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

// IsRange reports whether the milestone spans two days.
func (m Milestone) IsRange() bool { return m.EndDate != "" }

// Start returns the parsed start date.
func (d Document) Start() (time.Time, error) {
	return time.Parse(DateFormat, d.StartDate)
}

// Due returns the parsed due date.
func (d Document) Due() (time.Time, error) {
	return time.Parse(DateFormat, d.DueDate)
}

// TotalDays returns the length of the tracked range in days. The due
// date itself is the day after the last tracked index.
func (d Document) TotalDays() (int, error) {
	start, err := d.Start()
	if err != nil {
		return 0, fmt.Errorf("parse startDate: %w", err)
	}
	due, err := d.Due()
	if err != nil {
		return 0, fmt.Errorf("parse dueDate: %w", err)
	}
	return calendar.DayIndex(due, start), nil
}

// CanonicalJSON returns the JSON serialization used for storage and
// for cache key derivation.
func (d Document) CanonicalJSON() ([]byte, error) {
	return json.Marshal(d)
}

// Load reads a document from path, choosing the parser by extension:
// .json, .toml, .yaml/.yml.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Document{}, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// ParseJSON parses a JSON document.
func ParseJSON(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse json config: %w", err)
	}
	return d, nil
}

// ParseTOML parses a TOML document.
func ParseTOML(data []byte) (Document, error) {
	var d Document
	if err := toml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse toml config: %w", err)
	}
	return d, nil
}

// ParseYAML parses a YAML document.
func ParseYAML(data []byte) (Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse yaml config: %w", err)
	}
	return d, nil
}
