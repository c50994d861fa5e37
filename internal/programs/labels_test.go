package programs

import (
	"errors"
	"math"
	"testing"
)

func extractProgram(t *testing.T) Program {
	t.Helper()
	p, err := Default().ByID(1)
	if err != nil {
		t.Fatalf("ByID(1): %v", err)
	}
	return p
}

func TestLabelFor(t *testing.T) {
	p := extractProgram(t)

	tests := []struct {
		progress float64
		want     string
		wantErr  error
	}{
		{progress: 0.0, wantErr: ErrNoLabel},
		{progress: 0.05, wantErr: ErrNoLabel},
		{progress: 0.2, want: "Initializing"},
		{progress: 0.35, want: "Initializing"},
		{progress: 0.4, want: "Extracting"},
		{progress: 0.41, want: "Extracting"},
		{progress: 0.6, want: "Distilling"},
		{progress: 0.79, want: "Distilling"},
		{progress: 0.8, want: "Finishing"},
		{progress: 1.0, want: "Finishing"},
		{progress: 1.5, want: "Finishing"},
		{progress: -0.1, wantErr: ErrNoLabel},
		{progress: math.Inf(1), want: "Finishing"},
		{progress: math.Inf(-1), wantErr: ErrNoLabel},
		{progress: math.NaN(), wantErr: ErrNoLabel},
	}

	for _, tt := range tests {
		got, err := p.LabelFor(tt.progress)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LabelFor(%v): expected %v, got %q, %v", tt.progress, tt.wantErr, got, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("LabelFor(%v): unexpected error %v", tt.progress, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LabelFor(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestLabelForZeroThreshold(t *testing.T) {
	p, err := Default().ByID(2)
	if err != nil {
		t.Fatalf("ByID(2): %v", err)
	}

	if got, _ := p.LabelFor(0); got != "Starting" {
		t.Errorf("LabelFor(0) = %q, want Starting", got)
	}
	if got, _ := p.LabelFor(0.1); got != "Decarboxylating" {
		t.Errorf("LabelFor(0.1) = %q, want Decarboxylating", got)
	}
	if _, err := p.LabelFor(-0.01); !errors.Is(err, ErrNoLabel) {
		t.Errorf("LabelFor(-0.01): expected ErrNoLabel, got %v", err)
	}
}

func TestLabelForEmptyLabels(t *testing.T) {
	p, err := Default().ByID(3)
	if err != nil {
		t.Fatalf("ByID(3): %v", err)
	}
	if p.HasPhases() {
		t.Fatal("Heat for Mixing should have no phases")
	}

	for _, progress := range []float64{-1, 0, 0.2, 0.5, 1, 2} {
		if _, err := LabelForProgress(p, progress); !errors.Is(err, ErrNoLabel) {
			t.Errorf("LabelForProgress(%v): expected ErrNoLabel, got %v", progress, err)
		}
	}
}

func TestLabelForDuplicateThresholds(t *testing.T) {
	p := Program{
		ID: 1,
		StatusLabels: []ThresholdLabel{
			{MinValue: 0.2, Label: "first"},
			{MinValue: 0.5, Label: "early"},
			{MinValue: 0.5, Label: "late"},
		},
	}

	if got, _ := p.LabelFor(0.5); got != "late" {
		t.Errorf("LabelFor(0.5) = %q, want late", got)
	}
	if got, _ := p.LabelFor(0.9); got != "late" {
		t.Errorf("LabelFor(0.9) = %q, want late", got)
	}
}

func TestLabelForUnsortedLabels(t *testing.T) {
	p := Program{
		ID: 1,
		StatusLabels: []ThresholdLabel{
			{MinValue: 0.6, Label: "c"},
			{MinValue: 0.2, Label: "a"},
			{MinValue: 0.4, Label: "b"},
		},
	}

	if got, _ := p.LabelFor(0.45); got != "b" {
		t.Errorf("LabelFor(0.45) = %q, want b", got)
	}
}

func TestLabelOrDefault(t *testing.T) {
	p := extractProgram(t)

	if got := p.LabelOrDefault(0.1, DefaultFallbackLabel); got != DefaultFallbackLabel {
		t.Errorf("LabelOrDefault(0.1) = %q, want %q", got, DefaultFallbackLabel)
	}
	if got := p.LabelOrDefault(0.5, DefaultFallbackLabel); got != "Extracting" {
		t.Errorf("LabelOrDefault(0.5) = %q, want Extracting", got)
	}
}

func TestPhases(t *testing.T) {
	p := extractProgram(t)

	phases := p.Phases()
	want := []Phase{
		{Label: "Initializing", Start: 0.2, End: 0.4},
		{Label: "Extracting", Start: 0.4, End: 0.6},
		{Label: "Distilling", Start: 0.6, End: 0.8},
		{Label: "Finishing", Start: 0.8, End: 1.0},
	}
	if len(phases) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(phases))
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, phases[i], want[i])
		}
	}

	dup := Program{StatusLabels: []ThresholdLabel{
		{MinValue: 0.5, Label: "early"},
		{MinValue: 0.5, Label: "late"},
	}}
	phases = dup.Phases()
	if len(phases) != 1 || phases[0].Label != "late" {
		t.Errorf("duplicate thresholds: got %+v", phases)
	}

	if len(Program{}.Phases()) != 0 {
		t.Error("expected no phases for a program without labels")
	}
}
