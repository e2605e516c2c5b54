package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netdiagram/internal/codec"
	"netdiagram/internal/config"
	"netdiagram/internal/geometry"
	"netdiagram/internal/service"
)

// app carries the state shared by every subcommand
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg     *config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "netdiagram",
		Short: "Network topology diagrams for small sites",
		Long: `netdiagram keeps an editable network diagram of devices, links, zones,
VLANs and SSIDs, serves it over an HTTP API and converts it between JSON,
YAML, CSV and Ansible inventory.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: first of "+config.ConfigFileName+", $XDG_CONFIG_HOME/netdiagram/config.yaml, /etc/netdiagram/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (json, console)")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.convertCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(versionCmd())

	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
	return root
}

// loadConfig resolves configuration and applies flag overrides
func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg, a.cfgPath = cfg, path
	return nil
}

// serviceOptions maps canvas settings onto the session options
func serviceOptions(c config.CanvasConfig) service.Options {
	return service.Options{
		DeviceSize: geometry.Size{Width: c.DeviceWidth, Height: c.DeviceHeight},
		SnapToGrid: c.SnapToGrid,
		Import: codec.Layout{
			GridColumns: c.ImportGridColumns,
			StartX:      c.ImportStartX,
			StartY:      c.ImportStartY,
			Snap:        c.SnapToGrid,
		},
	}
}

// skipConfig replaces the root pre-run for commands that work without a
// valid configuration
func skipConfig(*cobra.Command, []string) error { return nil }
