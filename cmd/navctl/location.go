package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func locationCmd(opts *options) *cobra.Command {
	var query []string

	cmd := &cobra.Command{
		Use:   "location <name> [param=value...]",
		Short: "Build the location of a named route",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.loadRouter()
			if err != nil {
				return err
			}

			params, err := parsePairs(args[1:])
			if err != nil {
				return err
			}

			q := url.Values{}
			pairs, err := parsePairs(query)
			if err != nil {
				return err
			}
			for k, v := range pairs {
				q.Set(k, v)
			}

			loc, err := r.Location(args[0], params, q)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")

	return cmd
}

// parsePairs splits key=value arguments.
func parsePairs(args []string) (map[string]string, error) {
	pairs := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid pair %q, expected key=value", arg)
		}
		pairs[k] = v
	}
	return pairs, nil
}
