package programs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNoActiveProgram indicates a device status with no running program.
var ErrNoActiveProgram = errors.New("no active program")

const deviceKeyPrefix = "program"

// DeviceKey returns the firmware's name for the program, e.g. "program01".
func (p Program) DeviceKey() string {
	return DeviceKey(p.ID)
}

// DeviceKey formats a program id the way the firmware reports it.
func DeviceKey(id int) string {
	return fmt.Sprintf("%s%02d", deviceKeyPrefix, id)
}

// ParseDeviceKey parses a firmware program key ("program01") into an id.
func ParseDeviceKey(key string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(key))
	if !strings.HasPrefix(s, deviceKeyPrefix) {
		return 0, fmt.Errorf("invalid device program key %q", key)
	}
	id, err := strconv.Atoi(s[len(deviceKeyPrefix):])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid device program key %q", key)
	}
	return id, nil
}

// DeviceStatus is the subset of the device status document that concerns
// the running program.
type DeviceStatus struct {
	MachineState  string        `json:"machineState"`
	ActiveProgram ActiveProgram `json:"activeProgram"`
}

// ActiveProgram mirrors the device's activeProgram status object.
// Fields are null while the machine is idle.
type ActiveProgram struct {
	ProgramID     *string `json:"programId"`
	CurrentAction *string `json:"currentAction"`
	// Progress is a percentage, 0 to 100.
	Progress          *float64 `json:"progress"`
	EstimatedTimeLeft *float64 `json:"estimatedTimeLeft"`
	TimeElapsed       *float64 `json:"timeElapsed"`
	Warning           *string  `json:"warning"`
	ErrorMessage      *string  `json:"errorMessage"`
}

// Fraction returns progress as a fraction in the catalog's [0, 1] scale.
func (a ActiveProgram) Fraction() (float64, bool) {
	if a.Progress == nil {
		return 0, false
	}
	return *a.Progress / 100, true
}

// PhaseStatus is a running program resolved against a catalog.
type PhaseStatus struct {
	Program  Program
	Fraction float64
	// Label is empty when no threshold applies.
	Label string
}

// HasLabel reports whether a phase label applies.
func (s PhaseStatus) HasLabel() bool {
	return s.Label != ""
}

// PhaseFor resolves a device status into the running program and its
// phase label. It returns ErrNoActiveProgram while the device is idle and
// an error wrapping ErrNotFound for programs missing from the catalog.
func (c *Catalog) PhaseFor(status ActiveProgram) (PhaseStatus, error) {
	if status.ProgramID == nil {
		return PhaseStatus{}, ErrNoActiveProgram
	}
	key := strings.TrimSpace(*status.ProgramID)
	if key == "" || strings.EqualFold(key, "none") {
		return PhaseStatus{}, ErrNoActiveProgram
	}

	p, err := c.ByDeviceKey(key)
	if err != nil {
		return PhaseStatus{}, err
	}

	out := PhaseStatus{Program: p}
	fraction, ok := status.Fraction()
	if !ok {
		return out, nil
	}
	out.Fraction = fraction
	if label, err := p.LabelFor(fraction); err == nil {
		out.Label = label
	}
	return out, nil
}

// RunRequest is the message that starts a program on the device.
type RunRequest struct {
	Action            string        `json:"action"`
	Program           string        `json:"program"`
	ProgramParameters RunParameters `json:"programParameters"`
}

// RunParameters holds per-run overrides.
type RunParameters struct {
	// SoakTime is in seconds, as the device expects.
	SoakTime *int `json:"soakTime,omitempty"`
}

// NewRunRequest builds a start request for p. A nil soak uses the
// program's default. Soak overrides are rejected for programs without a
// soak phase.
func NewRunRequest(p Program, soak *time.Duration) (RunRequest, error) {
	req := RunRequest{
		Action:  "start",
		Program: p.DeviceKey(),
	}

	d, hasSoak := p.SoakDuration()
	if soak != nil {
		if !hasSoak {
			return RunRequest{}, ValidationError{ID: p.ID, Field: "soak_time", Message: "program has no soak phase"}
		}
		if *soak < 0 {
			return RunRequest{}, ValidationError{ID: p.ID, Field: "soak_time", Message: fmt.Sprintf("negative soak time %s", *soak)}
		}
		d = *soak
	}
	if hasSoak {
		seconds := int(d.Round(time.Second) / time.Second)
		req.ProgramParameters.SoakTime = &seconds
	}
	return req, nil
}
