package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1homsi/depsweep/cmd/depsweep/patterns"
	"github.com/1homsi/depsweep/cmd/depsweep/scan"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "depsweep",
		Short: "Find Cargo dependencies that look unused",
		Long: `depsweep compares the dependencies declared in Cargo.toml with the crate
names referenced in the project's Rust sources and lists the ones it could
not find. Detection is lexical, so every finding needs a manual check.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		scan.NewCommand(version),
		patterns.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the depsweep version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

func main() {
	err := newRootCommand().Execute()
	switch {
	case err == nil:
	case errors.Is(err, scan.ErrUnusedFound):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "depsweep:", err)
		os.Exit(2)
	}
}
