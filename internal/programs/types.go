// Package programs provides the Merlin400 program catalog types and lookup.
package programs

import (
	"fmt"
	"strings"
	"time"
)

// ColorToken references a themed color, e.g. "var(--drizzle-red)".
type ColorToken string

// Name returns the bare token name ("drizzle-red") or "" when the token is
// not in var(--name) form.
func (c ColorToken) Name() string {
	s := strings.TrimSpace(string(c))
	if !strings.HasPrefix(s, "var(--") || !strings.HasSuffix(s, ")") {
		return ""
	}
	return strings.TrimSpace(s[len("var(--") : len(s)-1])
}

// ThresholdLabel names the phase that begins once progress reaches MinValue.
type ThresholdLabel struct {
	MinValue float64 `yaml:"min_value" json:"minValue" toml:"min_value"`
	Label    string  `yaml:"label" json:"label" toml:"label"`
}

// Program describes one program the appliance can run.
type Program struct {
	ID          int        `yaml:"id" json:"id" toml:"id"`
	Name        string     `yaml:"name" json:"name" toml:"name"`
	Description string     `yaml:"description" json:"description" toml:"description"`
	Icon        string     `yaml:"icon" json:"icon" toml:"icon"`
	Color       ColorToken `yaml:"color" json:"color" toml:"color"`
	// SoakTimeDefault is in minutes. Nil means the program has no soak phase.
	SoakTimeDefault *int             `yaml:"soak_time_default,omitempty" json:"soakTimeDefault,omitempty" toml:"soak_time_default,omitempty"`
	StatusLabels    []ThresholdLabel `yaml:"status_labels" json:"statusLabels" toml:"status_labels"`
}

// Clone returns a deep copy that shares no memory with p.
func (p Program) Clone() Program {
	out := p
	if p.SoakTimeDefault != nil {
		v := *p.SoakTimeDefault
		out.SoakTimeDefault = &v
	}
	out.StatusLabels = make([]ThresholdLabel, len(p.StatusLabels))
	copy(out.StatusLabels, p.StatusLabels)
	return out
}

// IconName returns the icon with surrounding whitespace removed.
func (p Program) IconName() string {
	return strings.TrimSpace(p.Icon)
}

// HasSoak reports whether the program has a pre-soak phase.
func (p Program) HasSoak() bool {
	return p.SoakTimeDefault != nil
}

// SoakDuration returns the default soak time. The second result is false
// for programs without a soak phase.
func (p Program) SoakDuration() (time.Duration, bool) {
	if p.SoakTimeDefault == nil {
		return 0, false
	}
	return time.Duration(*p.SoakTimeDefault) * time.Minute, true
}

// HasPhases reports whether the program exposes a phase breakdown.
func (p Program) HasPhases() bool {
	return len(p.StatusLabels) > 0
}

func (p Program) String() string {
	return fmt.Sprintf("%d: %s", p.ID, p.Name)
}

// File represents a serialized catalog.
type File struct {
	Version  int       `yaml:"version" json:"version" toml:"version"`
	Name     string    `yaml:"name" json:"name" toml:"name"`
	Programs []Program `yaml:"programs" json:"programs" toml:"programs"`
}

// FileVersion is the only catalog file version understood by this package.
const FileVersion = 1

// Validate checks the file header and its programs.
func (f *File) Validate() error {
	if f.Version != FileVersion {
		return fmt.Errorf("unsupported catalog version: %d", f.Version)
	}
	return Validate(f.Programs).Err()
}

func intPtr(v int) *int {
	return &v
}
