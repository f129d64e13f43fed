// Command navctl inspects YAML route tables and persisted navigation state.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navstack/nav"
	"github.com/vitalvas/navstack/navconfig"
)

// Version information set at build time.
var version = "dev"

// options are the flags shared by all commands.
type options struct {
	routesFile string
	verbose    bool
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "navctl",
		Short: "Inspect route tables and navigation state",
		Long: `navctl loads a YAML route table and answers questions about it:
which routes exist, what a location matches, which location a named
route produces and how a navigation stack is persisted.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.routesFile, "routes", "f", "routes.yaml", "YAML route table")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		routesCmd(opts),
		matchCmd(opts),
		locationCmd(opts),
		encodeCmd(opts),
		stateCmd(opts),
	)

	return rootCmd
}

// loadRouter reads the route table with placeholder builders.
func (o *options) loadRouter() (*nav.Router, error) {
	f, err := navconfig.Load(o.routesFile)
	if err != nil {
		return nil, err
	}

	r, err := navconfig.Build(f, navconfig.Placeholders())
	if err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("route table loaded", slog.String("file", o.routesFile), slog.Int("routes", len(f.Routes)))
	}
	return r, nil
}
