package main

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonylturner/merlinctl/internal/config"
	merlinErrors "github.com/tonylturner/merlinctl/internal/errors"
	"github.com/tonylturner/merlinctl/internal/logging"
	"github.com/tonylturner/merlinctl/internal/programs"
	"github.com/tonylturner/merlinctl/internal/theme"
)

type rootFlags struct {
	configPath  string
	catalogPath string
	logLevel    string
	logFile     string
	noColor     bool
}

// env is the per-command runtime: config, logger, active catalog and styles.
type env struct {
	cfg         *config.Config
	configPath  string
	logger      *logging.Logger
	catalog     *programs.Catalog
	catalogPath string
	styles      theme.Styles
}

func loadEnv(cmd *cobra.Command, flags *rootFlags) (*env, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Flags override the file
	if flags.logLevel != "" {
		if _, err := logging.ParseLevel(flags.logLevel); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Logging.File = flags.logFile
	}
	if flags.noColor {
		off := false
		cfg.Output.Color = &off
	}

	logger, err := logging.NewLoggerWithOptions(cfg.LogLevel(), cfg.Logging.File, cfg.Logging.Format, cfg.Logging.LogEveryN)
	if err != nil {
		return nil, merlinErrors.WrapConfigError(err, path)
	}

	t, err := theme.DefaultTheme.WithOverrides(cfg.Theme.Colors)
	if err != nil {
		logger.Close()
		return nil, merlinErrors.WrapConfigError(fmt.Errorf("theme.colors: %w", err), path)
	}

	e := &env{
		cfg:         cfg,
		configPath:  path,
		logger:      logger,
		catalog:     programs.Default(),
		catalogPath: flags.catalogPath,
		styles:      theme.NewStyles(t, cfg.ColorEnabled()),
	}
	if e.catalogPath == "" {
		e.catalogPath = cfg.Catalog.File
	}
	if e.catalogPath != "" {
		c, err := programs.LoadCatalog(e.catalogPath)
		if err != nil {
			logger.Close()
			return nil, merlinErrors.WrapCatalogError(err, e.catalogPath)
		}
		e.catalog = c
	}

	logger.LogStartup(cmd.CommandPath(), e.catalog.Name(), e.catalog.Len(), path)
	return e, nil
}

func (e *env) Close() {
	e.logger.Close()
}

// lookupProgram resolves a numeric id or a device key such as program03.
func (e *env) lookupProgram(arg string) (programs.Program, error) {
	arg = strings.TrimSpace(arg)

	var (
		p   programs.Program
		err error
	)
	if strings.HasPrefix(strings.ToLower(arg), "program") {
		p, err = e.catalog.ByDeviceKey(arg)
	} else {
		id, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return programs.Program{}, fmt.Errorf("invalid program id %q: want a number or a device key like program01", arg)
		}
		p, err = e.catalog.ByID(id)
	}

	e.logger.LogLookup("program", arg, err == nil, err)
	if stderrors.Is(err, programs.ErrNotFound) {
		return programs.Program{}, merlinErrors.WrapNotFound(err, arg)
	}
	return p, err
}

// fallbackLabel returns the flag value when set, else the configured one.
func (e *env) fallbackLabel(flag string) string {
	if flag != "" {
		return flag
	}
	return e.cfg.Labels.Fallback
}
