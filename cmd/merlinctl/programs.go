package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tonylturner/merlinctl/internal/programs"
	"github.com/tonylturner/merlinctl/internal/progress"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func newProgramsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "Program catalog operations",
		Long: `Browse, label and export the programs in the catalog.

The built-in catalog holds the six Merlin 400 programs. Use --catalog or
catalog.file in the config to work with a YAML, JSON or TOML catalog file.`,
	}

	cmd.AddCommand(newProgramsListCmd(root))
	cmd.AddCommand(newProgramsShowCmd(root))
	cmd.AddCommand(newProgramsLabelCmd(root))
	cmd.AddCommand(newProgramsPhasesCmd(root))
	cmd.AddCommand(newProgramsSimulateCmd(root))
	cmd.AddCommand(newProgramsExportCmd(root))
	cmd.AddCommand(newProgramsValidateCmd(root))

	return cmd
}

// --- programs list ---

type programsListFlags struct {
	format string
	search string
}

func newProgramsListCmd(root *rootFlags) *cobra.Command {
	flags := &programsListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List programs in catalog order",
		Example: `  merlinctl programs list
  merlinctl programs list --format json
  merlinctl programs list --search alcohol`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runProgramsList(cmd.OutOrStdout(), e, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: table, json, yaml, toml (default from config)")
	cmd.Flags().StringVar(&flags.search, "search", "", "Only programs whose name or description contains this text")

	return cmd
}

func runProgramsList(out io.Writer, e *env, flags *programsListFlags) error {
	format := flags.format
	if format == "" {
		format = e.cfg.Output.Format
	}

	list := e.catalog.All()
	if flags.search != "" {
		list = e.catalog.Search(flags.search)
	}

	if format != "table" {
		f, err := programs.ParseFormat(format)
		if err != nil {
			return err
		}
		return programs.Encode(out, &programs.File{Version: programs.FileVersion, Name: e.catalog.Name(), Programs: list}, f)
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No programs found")
		return nil
	}

	s := e.styles
	fmt.Fprintf(out, "%s %s %s %s %s\n",
		pad(s.Render(s.Header, "ID"), 4),
		pad(s.Render(s.Header, "NAME"), 34),
		pad(s.Render(s.Header, "SOAK"), 6),
		pad(s.Render(s.Header, "PHASES"), 7),
		s.Render(s.Header, "ICON"))
	fmt.Fprintln(out, strings.Repeat("-", 64))

	for _, p := range list {
		soak := "-"
		if d, ok := p.SoakDuration(); ok {
			soak = formatMinutes(d)
		}
		name := s.Swatch(p.Color) + " " + s.ProgramName(p)
		fmt.Fprintf(out, "%-4d %s %-6s %-7d %s\n", p.ID, pad(name, 34), soak, len(p.Phases()), p.IconName())
	}

	fmt.Fprintf(out, "\n%d programs\n", len(list))
	return nil
}

// --- programs show ---

type programsShowFlags struct {
	copy bool
}

func newProgramsShowCmd(root *rootFlags) *cobra.Command {
	flags := &programsShowFlags{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show details of a program",
		Long:  `Display a program's definition. The id may be a number or a device key such as program01.`,
		Example: `  merlinctl programs show 1
  merlinctl programs show program04 --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runProgramsShow(cmd.OutOrStdout(), e, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the program definition as JSON to the clipboard")

	return cmd
}

func runProgramsShow(out io.Writer, e *env, arg string, flags *programsShowFlags) error {
	p, err := e.lookupProgram(arg)
	if err != nil {
		return err
	}

	s := e.styles
	fmt.Fprintf(out, "%s %s\n", s.Swatch(p.Color), s.Render(s.Title, p.Name))
	fmt.Fprintf(out, "ID:            %d\n", p.ID)
	fmt.Fprintf(out, "Device key:    %s\n", p.DeviceKey())
	fmt.Fprintf(out, "Description:   %s\n", p.Description)
	fmt.Fprintf(out, "Icon:          %s\n", p.IconName())
	fmt.Fprintf(out, "Color:         %s\n", p.Color)
	if d, ok := p.SoakDuration(); ok {
		fmt.Fprintf(out, "Soak default:  %s\n", formatMinutes(d))
	} else {
		fmt.Fprintf(out, "Soak default:  %s\n", s.Render(s.Dim, "none"))
	}

	if p.HasPhases() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, s.Render(s.Header, "Status labels:"))
		for _, l := range p.StatusLabels {
			fmt.Fprintf(out, "  >= %.2f  %s\n", l.MinValue, l.Label)
		}
	}

	if flags.copy {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal program: %w", err)
		}
		if err := copyToClipboard(string(data)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(out, s.Render(s.Dim, "Copied to clipboard"))
	}
	return nil
}

// --- programs label ---

type programsLabelFlags struct {
	fallback string
	percent  bool
	strict   bool
}

func newProgramsLabelCmd(root *rootFlags) *cobra.Command {
	flags := &programsLabelFlags{}

	cmd := &cobra.Command{
		Use:   "label <id> <progress>",
		Short: "Print the phase label for a progress value",
		Long: `Print the label a program shows at the given progress fraction (0 to 1).

When no threshold has been crossed the fallback label is printed, unless
--strict is set.`,
		Example: `  merlinctl programs label 1 0.45
  merlinctl programs label 1 45 --percent
  merlinctl programs label 3 0.5 --fallback Heating`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runProgramsLabel(cmd.OutOrStdout(), e, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVar(&flags.fallback, "fallback", "", "Label when no threshold applies (default from config)")
	cmd.Flags().BoolVar(&flags.percent, "percent", false, "Treat progress as a percentage (0 to 100)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail instead of printing the fallback label")

	return cmd
}

func runProgramsLabel(out io.Writer, e *env, idArg, progressArg string, flags *programsLabelFlags) error {
	p, err := e.lookupProgram(idArg)
	if err != nil {
		return err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(progressArg), 64)
	if err != nil {
		return fmt.Errorf("invalid progress %q: %w", progressArg, err)
	}
	if flags.percent {
		value /= 100
	}

	label, err := p.LabelFor(value)
	if stderrors.Is(err, programs.ErrNoLabel) {
		e.logger.Debug("program %d: no label at %v", p.ID, value)
		if flags.strict {
			return fmt.Errorf("program %d at %v: %w", p.ID, value, err)
		}
		label = e.fallbackLabel(flags.fallback)
	} else if err != nil {
		return err
	}

	fmt.Fprintln(out, label)
	return nil
}

// --- programs phases ---

func newProgramsPhasesCmd(root *rootFlags) *cobra.Command {
	var fallback string

	cmd := &cobra.Command{
		Use:   "phases <id>",
		Short: "Show a program's phases and how they render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runProgramsPhases(cmd.OutOrStdout(), e, args[0], fallback)
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", "", "Label when no threshold applies (default from config)")

	return cmd
}

func runProgramsPhases(out io.Writer, e *env, arg, fallback string) error {
	p, err := e.lookupProgram(arg)
	if err != nil {
		return err
	}

	s := e.styles
	fmt.Fprintln(out, s.ProgramName(p))
	phases := p.Phases()
	if len(phases) == 0 {
		fmt.Fprintf(out, "%s\n", s.Render(s.Dim, "No phase labels; progress shows \""+e.fallbackLabel(fallback)+"\" throughout"))
		return nil
	}

	fmt.Fprintf(out, "%s %s %s\n",
		pad(s.Render(s.Header, "START"), 7),
		pad(s.Render(s.Header, "END"), 7),
		s.Render(s.Header, "LABEL"))
	for _, ph := range phases {
		fmt.Fprintf(out, "%-7.2f %-7.2f %s\n", ph.Start, ph.End, ph.Label)
	}

	fmt.Fprintln(out)
	bar := progress.NewProgramBar(p, e.fallbackLabel(fallback))
	bar.SetStyles(s)
	bar.Disable()
	if first := phases[0].Start; first > 0 {
		fmt.Fprintln(out, bar.Line(0))
	}
	for _, ph := range phases {
		fmt.Fprintln(out, bar.Line(ph.Start))
	}
	return nil
}

// --- programs simulate ---

type programsSimulateFlags struct {
	duration time.Duration
	step     time.Duration
	fallback string
}

func newProgramsSimulateCmd(root *rootFlags) *cobra.Command {
	flags := &programsSimulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate <id>",
		Short: "Animate a program run with its phase labels",
		Long: `Advance a progress bar from 0 to 100% over --duration, showing the phase
label the device would display. The labels seen are printed at the end.`,
		Example: `  merlinctl programs simulate 1
  merlinctl programs simulate 2 --duration 5s --step 100ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.lookupProgram(args[0])
			if err != nil {
				return err
			}

			bar := progress.NewProgramBar(p, e.fallbackLabel(flags.fallback))
			bar.SetStyles(e.styles)
			bar.SetOutput(cmd.ErrOrStderr())

			seen, err := progress.Simulate(cmd.Context(), bar, flags.duration, flags.step)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, label := range seen {
				fmt.Fprintln(out, label)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&flags.duration, "duration", 10*time.Second, "Length of the simulated run")
	cmd.Flags().DurationVar(&flags.step, "step", 200*time.Millisecond, "Update interval")
	cmd.Flags().StringVar(&flags.fallback, "fallback", "", "Label when no threshold applies (default from config)")

	return cmd
}

// --- programs export ---

type programsExportFlags struct {
	format string
	output string
}

func newProgramsExportCmd(root *rootFlags) *cobra.Command {
	flags := &programsExportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as YAML, JSON or TOML",
		Example: `  merlinctl programs export
  merlinctl programs export --format toml
  merlinctl programs export --output programs.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runProgramsExport(cmd.OutOrStdout(), e, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: yaml, json, toml (default from --output extension, else yaml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func runProgramsExport(out io.Writer, e *env, flags *programsExportFlags) error {
	var (
		format programs.Format
		err    error
	)
	switch {
	case flags.format != "":
		format, err = programs.ParseFormat(flags.format)
	case flags.output != "":
		format, err = programs.FormatForPath(flags.output)
	default:
		format = programs.FormatYAML
	}
	if err != nil {
		return err
	}

	f := e.catalog.File()
	if flags.output == "" {
		return programs.Encode(out, f, format)
	}

	data, err := programs.Marshal(f, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flags.output, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	e.logger.Info("Exported %d programs to %s", len(f.Programs), flags.output)
	fmt.Fprintf(out, "Wrote %d programs to %s\n", len(f.Programs), flags.output)
	return nil
}

// --- programs validate ---

func newProgramsValidateCmd(root *rootFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the active catalog or a catalog file",
		Example: `  merlinctl programs validate
  merlinctl programs validate --file programs.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runProgramsValidate(cmd.OutOrStdout(), e, file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Catalog file to validate (default: the active catalog)")

	return cmd
}

func runProgramsValidate(out io.Writer, e *env, file string) error {
	name := e.catalog.Name()
	list := e.catalog.All()
	if file != "" {
		f, err := programs.Load(file)
		if err != nil {
			return err
		}
		if f.Version != programs.FileVersion {
			return fmt.Errorf("%s: unsupported catalog version: %d", file, f.Version)
		}
		name = file
		list = f.Programs
	}

	s := e.styles
	result := programs.Validate(list)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "%s %v\n", s.Render(s.Warning, "WARN "), w)
	}
	for _, v := range result.Errors {
		fmt.Fprintf(out, "%s %v\n", s.Render(s.Error, "ERROR"), v)
	}

	if !result.IsValid() {
		return fmt.Errorf("%s: %d errors, %d warnings", name, len(result.Errors), len(result.Warnings))
	}
	fmt.Fprintf(out, "OK: %s (%d programs, %d warnings)\n", name, len(list), len(result.Warnings))
	return nil
}

func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%dm", int(d/time.Minute))
}
