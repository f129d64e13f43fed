package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navstack/nav"
)

// matchReport is the JSON form of a match.
type matchReport struct {
	Location  string            `json:"location"`
	FullPath  string            `json:"fullPath"`
	Params    map[string]string `json:"params"`
	Matches   []matchEntry      `json:"matches"`
	Navigator string            `json:"navigator"`
}

type matchEntry struct {
	PageKey         string `json:"pageKey"`
	MatchedLocation string `json:"matchedLocation"`
	Navigator       string `json:"navigator"`
}

func matchCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match <location>",
		Short: "Show the routes matched by a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.loadRouter()
			if err != nil {
				return err
			}

			l, err := r.Match(args[0], nil)
			if err != nil {
				return err
			}

			report := newMatchReport(l)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "location:  %s\n", report.Location)
			fmt.Fprintf(out, "full path: %s\n", report.FullPath)
			fmt.Fprintf(out, "navigator: %s\n", report.Navigator)
			for _, k := range slices.Sorted(maps.Keys(report.Params)) {
				fmt.Fprintf(out, "param:     %s=%s\n", k, report.Params[k])
			}
			for i, m := range report.Matches {
				fmt.Fprintf(out, "%d. %s (%s) @ %s\n", i+1, m.PageKey, m.MatchedLocation, m.Navigator)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func newMatchReport(l *nav.MatchList) matchReport {
	report := matchReport{
		Location:  l.Location(),
		FullPath:  l.FullPath(),
		Params:    l.PathParams(),
		Navigator: l.NavigatorKey(l.Last()),
	}
	for _, m := range l.Matches() {
		report.Matches = append(report.Matches, matchEntry{
			PageKey:         m.PageKey,
			MatchedLocation: m.MatchedLocation,
			Navigator:       l.NavigatorKey(m),
		})
	}
	return report
}
