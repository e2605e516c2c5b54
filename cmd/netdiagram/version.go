package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: skipConfig,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "netdiagram %s\n", Version)

			if verbose {
				fmt.Fprintf(out, "\nDetails:\n")
				fmt.Fprintf(out, "  Version:    %s\n", Version)
				fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
				fmt.Fprintf(out, "  Built:      %s\n", BuildTime)
				fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
				fmt.Fprintf(out, "  Platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose version output")
	return cmd
}
