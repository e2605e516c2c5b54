package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"netdiagram/internal/codec"
	"netdiagram/internal/logging"
	"netdiagram/internal/service"
)

func (a *app) convertCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [IN] [OUT]",
		Short: "Convert a diagram between formats",
		Long: `Convert reads a diagram and writes it in another format.

Input formats: json, yaml, csv. Output formats: json, yaml, csv, ansible.
IN and OUT default to stdin and stdout; "-" also selects them. When --from
or --to is omitted the format is taken from the file extension.`,
		Example: `  netdiagram convert site.json site.csv
  netdiagram convert --from csv --to ansible devices.csv inventory.yml
  cat site.yaml | netdiagram convert --from yaml --to json`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := "-", "-"
			if len(args) > 0 {
				in = args[0]
			}
			if len(args) > 1 {
				out = args[1]
			}
			return a.runConvert(cmd, in, out, from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input format (json, yaml, csv)")
	cmd.Flags().StringVar(&to, "to", "", "output format (json, yaml, csv, ansible)")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, in, out, from, to string) error {
	if from == "" {
		from = formatFromPath(in)
	}
	if to == "" {
		to = formatFromPath(out)
	}
	if from == "" || to == "" {
		return fmt.Errorf("cannot infer format, pass --from and --to")
	}
	if _, ok := codec.Exporters()[to]; !ok {
		return fmt.Errorf("unsupported output format %q (want %s)", to, strings.Join(formats(codec.Exporters()), ", "))
	}

	log := logging.New(a.cfg.Logging.Level, a.cfg.Logging.Format, cmd.ErrOrStderr())
	svc := service.NewDiagramService(nil, nil, nil, log, serviceOptions(a.cfg.Canvas))

	r, closeIn, err := openInput(cmd, in)
	if err != nil {
		return err
	}
	defer closeIn()

	switch {
	case from == "csv":
		added, err := svc.ImportCSVFrom(r)
		if err != nil {
			return err
		}
		log.Debug().Int("devices", len(added)).Msg("csv imported")
	case codec.Importers()[from] != nil:
		if _, err := svc.Import(from, r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported input format %q (want csv, %s)", from, strings.Join(formats(codec.Importers()), ", "))
	}

	w, closeOut, err := openOutput(cmd, out)
	if err != nil {
		return err
	}
	if err := svc.Export(to, w); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// formatFromPath maps a file extension onto a format name
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".csv":
		return "csv"
	}
	return ""
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}

func formats[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
