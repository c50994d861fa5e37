// Package progress renders a running program's progress and phase label.
package progress

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/tonylturner/merlinctl/internal/programs"
	"github.com/tonylturner/merlinctl/internal/theme"
)

const defaultBarWidth = 40

// ProgramBar renders a program's progress with its current phase label.
type ProgramBar struct {
	program    programs.Program
	fraction   float64
	startTime  time.Time
	lastUpdate time.Time
	output     io.Writer
	enabled    bool
	fallback   string
	styles     theme.Styles
	width      int
}

// NewProgramBar creates a progress bar for p. fallback is shown while no
// phase label applies; empty means programs.DefaultFallbackLabel.
func NewProgramBar(p programs.Program, fallback string) *ProgramBar {
	if fallback == "" {
		fallback = programs.DefaultFallbackLabel
	}
	return &ProgramBar{
		program:    p,
		startTime:  time.Now(),
		lastUpdate: time.Now(),
		output:     os.Stderr, // Use stderr so it doesn't interfere with stdout
		enabled:    true,
		fallback:   fallback,
		styles:     theme.PlainStyles(),
		width:      defaultBarWidth,
	}
}

// SetOutput redirects rendering.
func (p *ProgramBar) SetOutput(w io.Writer) {
	p.output = w
}

// SetStyles sets the styles used for the bar and label.
func (p *ProgramBar) SetStyles(s theme.Styles) {
	p.styles = s
}

// Disable disables the progress bar
func (p *ProgramBar) Disable() {
	p.enabled = false
}

// Enable enables the progress bar
func (p *ProgramBar) Enable() {
	p.enabled = true
}

// Set sets the current progress fraction.
func (p *ProgramBar) Set(fraction float64) {
	p.fraction = fraction
	p.render()
}

// Label returns the phase label for the current progress.
func (p *ProgramBar) Label() string {
	return p.program.LabelOrDefault(p.fraction, p.fallback)
}

// Line renders a single line for fraction without elapsed time or ETA.
func (p *ProgramBar) Line(fraction float64) string {
	label := p.program.LabelOrDefault(fraction, p.fallback)
	return fmt.Sprintf("%s %5.1f%% | %s",
		p.bar(fraction), clamp(fraction)*100, p.styles.Render(p.styles.Label, label))
}

func (p *ProgramBar) render() {
	if !p.enabled {
		return
	}

	// Throttle updates to avoid too much output
	now := time.Now()
	if now.Sub(p.lastUpdate) < 100*time.Millisecond && p.fraction < 1 {
		return
	}
	p.lastUpdate = now

	elapsed := time.Since(p.startTime)

	var eta time.Duration
	if f := clamp(p.fraction); f > 0 && f < 1 {
		rate := f / elapsed.Seconds()
		if rate > 0 {
			eta = time.Duration((1-f)/rate) * time.Second
		}
	}

	output := fmt.Sprintf("\r%s %s | Elapsed: %s",
		p.styles.ProgramName(p.program), p.Line(p.fraction), formatDuration(elapsed))
	if eta > 0 {
		output += fmt.Sprintf(" | ETA: %s", formatDuration(eta))
	}

	fmt.Fprint(p.output, output)
}

// Finish finishes the progress bar
func (p *ProgramBar) Finish() {
	p.fraction = 1
	if !p.enabled {
		return
	}

	p.render()
	fmt.Fprint(p.output, "\n") // New line after completion
}

func (p *ProgramBar) bar(fraction float64) string {
	filled := int(float64(p.width) * clamp(fraction))
	if filled > p.width {
		filled = p.width
	}

	var done, rest string
	done = strings.Repeat("=", filled)
	if filled < p.width {
		rest = ">" + strings.Repeat("-", p.width-filled-1)
	}
	return "[" + p.styles.Render(p.styles.ProgressFilled, done) +
		p.styles.Render(p.styles.ProgressEmpty, rest) + "]"
}

func clamp(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

// Simulate advances the bar from 0 to 1 over total, one step at a time,
// and returns the phase labels in the order they were first shown.
// It stops early with ctx.Err() when ctx is done.
func Simulate(ctx context.Context, bar *ProgramBar, total, step time.Duration) ([]string, error) {
	if step <= 0 || total <= 0 {
		return nil, fmt.Errorf("simulate: total and step must be positive")
	}

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	var seen []string
	record := func() {
		label := bar.Label()
		if len(seen) == 0 || seen[len(seen)-1] != label {
			seen = append(seen, label)
		}
	}

	start := time.Now()
	bar.Set(0)
	record()
	for {
		select {
		case <-ctx.Done():
			return seen, ctx.Err()
		case <-ticker.C:
		}

		fraction := float64(time.Since(start)) / float64(total)
		if fraction >= 1 {
			bar.Finish()
			record()
			return seen, nil
		}
		bar.Set(fraction)
		record()
	}
}
