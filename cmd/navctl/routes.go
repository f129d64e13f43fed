package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navstack/nav"
)

func routesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := opts.loadRouter()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tKIND\tNAME\tNAVIGATOR")

			err = r.Walk(func(n nav.Node, fullPath string, ancestors []nav.Node) error {
				indent := strings.Repeat("  ", len(ancestors))
				switch v := n.(type) {
				case *nav.Route:
					kind := "page"
					if v.Redirect != nil {
						kind = "redirect"
					}
					fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", indent, fullPath, kind, v.Name, v.ParentNavigatorKey)
				case *nav.Shell:
					fmt.Fprintf(w, "%s(shell)\tshell\t\t%s\n", indent, v.NavigatorKey)
				case *nav.StatefulShell:
					keys := make([]string, 0, len(v.Branches))
					for _, b := range v.Branches {
						keys = append(keys, b.NavigatorKey)
					}
					fmt.Fprintf(w, "%s(branches)\tstateful-shell\t\t%s\n", indent, strings.Join(keys, ","))
				}
				return nil
			})
			if err != nil {
				return err
			}

			return w.Flush()
		},
	}
}
