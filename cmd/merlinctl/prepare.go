package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tonylturner/merlinctl/internal/programs"
)

type prepareFlags struct {
	id      string
	soak    string
	copy    bool
	noInput bool
}

func newPrepareCmd(root *rootFlags) *cobra.Command {
	flags := &prepareFlags{}

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Build the request that starts a program",
		Long: `Build the JSON start request for a program, with an optional soak time
override. Without --no-input an interactive form asks for anything not
given on the command line.`,
		Example: `  merlinctl prepare
  merlinctl prepare --id 1 --soak 45m --no-input
  merlinctl prepare --id program02 --no-input --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.noInput && flags.id == "" {
				return missingFlagError(cmd, "--id")
			}

			e, err := loadEnv(cmd, root)
			if err != nil {
				return err
			}
			defer e.Close()

			if !flags.noInput {
				if err := buildPrepareForm(e.catalog, flags).Run(); err != nil {
					return fmt.Errorf("prepare form: %w", err)
				}
			}
			return runPrepare(cmd.OutOrStdout(), e, flags)
		},
	}

	cmd.Flags().StringVar(&flags.id, "id", "", "Program id or device key")
	cmd.Flags().StringVar(&flags.soak, "soak", "", "Soak time override, as minutes or a duration such as 45m")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the request to the clipboard")
	cmd.Flags().BoolVar(&flags.noInput, "no-input", false, "Do not prompt; --id is required")

	return cmd
}

func buildPrepareForm(cat *programs.Catalog, flags *prepareFlags) *huh.Form {
	options := make([]huh.Option[string], 0, cat.Len())
	for _, p := range cat.All() {
		options = append(options, huh.NewOption(p.String(), strconv.Itoa(p.ID)))
	}
	if id, err := programs.ParseDeviceKey(flags.id); err == nil {
		flags.id = strconv.Itoa(id)
	}
	if flags.id == "" && len(options) > 0 {
		flags.id = options[0].Value
	}

	programGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Program").
			Description("Program to start.").
			Key("program").
			Options(options...).
			Value(&flags.id),
	)

	soakGroup := huh.NewGroup(
		huh.NewInput().
			Title("Soak time").
			Description("Minutes or a duration such as 45m. Leave empty for the program default.").
			Key("soak").
			Validate(func(s string) error {
				_, err := parseSoak(s)
				return err
			}).
			Value(&flags.soak),
	).WithHideFunc(func() bool {
		id, err := strconv.Atoi(flags.id)
		if err != nil {
			return true
		}
		p, ok := cat.Lookup(id)
		return !ok || !p.HasSoak()
	})

	return huh.NewForm(programGroup, soakGroup)
}

func runPrepare(out io.Writer, e *env, flags *prepareFlags) error {
	p, err := e.lookupProgram(flags.id)
	if err != nil {
		return err
	}

	soak, err := parseSoak(flags.soak)
	if err != nil {
		return err
	}

	req, err := programs.NewRunRequest(p, soak)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run request: %w", err)
	}
	fmt.Fprintln(out, string(data))

	if flags.copy {
		if err := copyToClipboard(string(data)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		e.logger.Verbose("Copied run request for %s", p.DeviceKey())
	}
	return nil
}

// parseSoak accepts whole minutes or a Go duration. Empty means no override.
func parseSoak(s string) (*time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if minutes, err := strconv.Atoi(s); err == nil {
		d := time.Duration(minutes) * time.Minute
		return &d, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("invalid soak time %q: want minutes or a duration such as 45m", s)
	}
	return &d, nil
}
