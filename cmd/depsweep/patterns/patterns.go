// Package patterns implements `depsweep patterns`, which prints the rule
// table and macro-only allowlist the scanner uses.
package patterns

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1homsi/depsweep/internal/config"
	"github.com/1homsi/depsweep/internal/naming"
	"github.com/1homsi/depsweep/internal/usage"
)

func NewCommand() *cobra.Command {
	var configPath, explain string
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the lexical rules and the macro-only allowlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allow := usage.Rust().Allowlist
			if configPath != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				allow = allow.Merge(cfg.Allowlist)
			}
			if explain != "" {
				return explainFile(cmd.OutOrStdout(), explain, allow)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RULE\tPATTERN")
			for _, r := range usage.Rust().Rules {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Re.String())
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "ALLOWLIST\tTRIGGERS")
			for _, e := range allow {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, strings.Join(e.Triggers, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file whose allowlist is merged in")
	cmd.Flags().StringVar(&explain, "explain", "", "show what each rule extracts from this source file")
	return cmd
}

// explainFile prints the tokens every rule extracts from path, then the
// allowlist entries that fire.
func explainFile(w io.Writer, path string, allow usage.Allowlist) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	rs := usage.Rust()
	matches := usage.New(rs.Rules, allow, naming.NewMapping(nil)).Matches(string(src))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tNAMES")
	for _, r := range rs.Rules {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, strings.Join(matches[r.Name], ", "))
	}

	hits := usage.NewUsedSet()
	allow.Apply(string(src), hits)
	fmt.Fprintf(tw, "allowlist\t%s\n", strings.Join(hits.Sorted(), ", "))
	return tw.Flush()
}
