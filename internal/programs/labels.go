package programs

import "math"

// DefaultFallbackLabel is shown when a program has no applicable phase label.
const DefaultFallbackLabel = "In Progress"

// LabelFor returns the label of the highest threshold not exceeding
// progress. It returns ErrNoLabel when the program has no labels or
// progress is below every threshold.
//
// Out-of-range progress is compared as-is: values above 1 keep the highest
// label crossed, negative values and NaN match nothing. Among equal
// thresholds the later entry wins.
func (p Program) LabelFor(progress float64) (string, error) {
	if math.IsNaN(progress) {
		return "", ErrNoLabel
	}

	best := -1
	for i, l := range p.StatusLabels {
		if l.MinValue > progress {
			continue
		}
		if best < 0 || l.MinValue >= p.StatusLabels[best].MinValue {
			best = i
		}
	}
	if best < 0 {
		return "", ErrNoLabel
	}
	return p.StatusLabels[best].Label, nil
}

// LabelOrDefault is LabelFor with a fallback for ErrNoLabel.
func (p Program) LabelOrDefault(progress float64, fallback string) string {
	label, err := p.LabelFor(progress)
	if err != nil {
		return fallback
	}
	return label
}

// LabelForProgress returns the phase label of p at progress.
func LabelForProgress(p Program, progress float64) (string, error) {
	return p.LabelFor(progress)
}

// Phase is one step of a program's phase breakdown.
type Phase struct {
	Label string
	Start float64
	// End is the next threshold, or 1 for the last phase.
	End float64
}

// Phases returns the program's phases in threshold order. Duplicate
// thresholds collapse to the later label.
func (p Program) Phases() []Phase {
	var phases []Phase
	for i, l := range p.StatusLabels {
		if i+1 < len(p.StatusLabels) && p.StatusLabels[i+1].MinValue == l.MinValue {
			continue
		}
		end := 1.0
		if i+1 < len(p.StatusLabels) {
			end = p.StatusLabels[i+1].MinValue
		}
		phases = append(phases, Phase{Label: l.Label, Start: l.MinValue, End: end})
	}
	return phases
}
