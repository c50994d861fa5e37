package programs

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a catalog validation error.
type ValidationError struct {
	ID      int
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("program %d: %s: %s", e.ID, e.Field, e.Message)
}

// ValidationResult holds results from catalog validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid returns true if no errors were found.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Err joins all errors into one, or returns nil when the result is valid.
// Warnings never produce an error.
func (r *ValidationResult) Err() error {
	if r.IsValid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Validate checks a program list for authoring errors.
func Validate(programs []Program) *ValidationResult {
	result := &ValidationResult{}

	seen := make(map[int]bool, len(programs))
	for i, p := range programs {
		if p.ID <= 0 {
			result.Errors = append(result.Errors, ValidationError{
				ID:      p.ID,
				Field:   "id",
				Message: fmt.Sprintf("entry %d: id must be positive", i),
			})
		} else if seen[p.ID] {
			result.Errors = append(result.Errors, ValidationError{
				ID:      p.ID,
				Field:   "id",
				Message: fmt.Sprintf("entry %d: duplicate id", i),
			})
		}
		seen[p.ID] = true

		validateProgram(p, result)
	}

	return result
}

func validateProgram(p Program, result *ValidationResult) {
	if strings.TrimSpace(p.Name) == "" {
		result.Errors = append(result.Errors, ValidationError{
			ID:      p.ID,
			Field:   "name",
			Message: "missing name",
		})
	}

	if p.SoakTimeDefault != nil && *p.SoakTimeDefault < 0 {
		result.Errors = append(result.Errors, ValidationError{
			ID:      p.ID,
			Field:   "soak_time_default",
			Message: fmt.Sprintf("negative soak time %d", *p.SoakTimeDefault),
		})
	}

	if p.Icon != strings.TrimSpace(p.Icon) {
		result.Warnings = append(result.Warnings, ValidationError{
			ID:      p.ID,
			Field:   "icon",
			Message: fmt.Sprintf("icon %q has surrounding whitespace", p.Icon),
		})
	}

	if p.Color.Name() == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			ID:      p.ID,
			Field:   "color",
			Message: fmt.Sprintf("color %q is not a var(--token) reference", p.Color),
		})
	}

	for i, l := range p.StatusLabels {
		// NaN fails both comparisons, so test the accepted range directly.
		if !(l.MinValue >= 0 && l.MinValue <= 1) {
			result.Errors = append(result.Errors, ValidationError{
				ID:      p.ID,
				Field:   fmt.Sprintf("status_labels[%d].min_value", i),
				Message: fmt.Sprintf("%v outside [0, 1]", l.MinValue),
			})
		}
		if strings.TrimSpace(l.Label) == "" {
			result.Errors = append(result.Errors, ValidationError{
				ID:      p.ID,
				Field:   fmt.Sprintf("status_labels[%d].label", i),
				Message: "missing label",
			})
		}
		if i == 0 {
			continue
		}
		prev := p.StatusLabels[i-1].MinValue
		switch {
		case l.MinValue < prev:
			result.Errors = append(result.Errors, ValidationError{
				ID:      p.ID,
				Field:   fmt.Sprintf("status_labels[%d].min_value", i),
				Message: fmt.Sprintf("%v is below previous threshold %v", l.MinValue, prev),
			})
		case l.MinValue == prev:
			result.Warnings = append(result.Warnings, ValidationError{
				ID:      p.ID,
				Field:   fmt.Sprintf("status_labels[%d].min_value", i),
				Message: fmt.Sprintf("duplicate threshold %v; the later label wins", l.MinValue),
			})
		}
	}
}
