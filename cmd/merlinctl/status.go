package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	merlinErrors "github.com/tonylturner/merlinctl/internal/errors"
	"github.com/tonylturner/merlinctl/internal/programs"
	"github.com/tonylturner/merlinctl/internal/progress"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <file>",
		Short: "Explain a device status document",
		Long: `Read the JSON status document reported by a Merlin 400 and print the
running program with its current phase label. Use - to read from stdin.`,
		Example: `  merlinctl status status.json
  curl -s http://merlin.local/status | merlinctl status -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()

			status, err := readStatus(cmd.InOrStdin(), args[0])
			if err != nil {
				return merlinErrors.WrapStatusError(err, args[0])
			}
			return runStatus(cmd.OutOrStdout(), e, status)
		},
	}

	return cmd
}

func readStatus(stdin io.Reader, path string) (programs.DeviceStatus, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return programs.DeviceStatus{}, err
		}
		defer f.Close()
		r = f
	}

	var status programs.DeviceStatus
	if err := json.NewDecoder(r).Decode(&status); err != nil {
		return programs.DeviceStatus{}, fmt.Errorf("parse status: %w", err)
	}
	return status, nil
}

func runStatus(out io.Writer, e *env, status programs.DeviceStatus) error {
	s := e.styles
	state := status.MachineState
	if state == "" {
		state = "unknown"
	}
	fmt.Fprintf(out, "Machine:       %s\n", state)

	phase, err := e.catalog.PhaseFor(status.ActiveProgram)
	if stderrors.Is(err, programs.ErrNoActiveProgram) {
		fmt.Fprintf(out, "Program:       %s\n", s.Render(s.Dim, "none"))
		return nil
	}
	if stderrors.Is(err, programs.ErrNotFound) {
		return merlinErrors.WrapNotFound(err, *status.ActiveProgram.ProgramID)
	}
	if err != nil {
		return err
	}

	active := status.ActiveProgram
	fmt.Fprintf(out, "Program:       %s %s (%s)\n", s.Swatch(phase.Program.Color), s.ProgramName(phase.Program), phase.Program.DeviceKey())
	if active.CurrentAction != nil && *active.CurrentAction != "" {
		fmt.Fprintf(out, "Action:        %s\n", *active.CurrentAction)
	}
	if _, ok := active.Fraction(); ok {
		bar := progress.NewProgramBar(phase.Program, e.cfg.Labels.Fallback)
		bar.SetStyles(s)
		bar.Disable()
		fmt.Fprintf(out, "Progress:      %s\n", bar.Line(phase.Fraction))
	}
	if phase.HasLabel() {
		fmt.Fprintf(out, "Phase:         %s\n", s.Render(s.Label, phase.Label))
	} else {
		fmt.Fprintf(out, "Phase:         %s\n", s.Render(s.Dim, e.cfg.Labels.Fallback))
	}
	if active.TimeElapsed != nil {
		fmt.Fprintf(out, "Elapsed:       %s\n", secondsDuration(*active.TimeElapsed))
	}
	if active.EstimatedTimeLeft != nil {
		fmt.Fprintf(out, "Remaining:     %s\n", secondsDuration(*active.EstimatedTimeLeft))
	}
	if active.Warning != nil && *active.Warning != "" {
		fmt.Fprintf(out, "Warning:       %s\n", s.Render(s.Warning, *active.Warning))
	}
	if active.ErrorMessage != nil && *active.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:         %s\n", s.Render(s.Error, *active.ErrorMessage))
	}
	return nil
}

func secondsDuration(seconds float64) time.Duration {
	return (time.Duration(seconds) * time.Second).Round(time.Second)
}
