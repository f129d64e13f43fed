package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/navstack/navigator"
	"github.com/vitalvas/navstack/navstore"
)

// defaultStateID is the restoration id used when --id is not set.
const defaultStateID = "navctl"

func encodeCmd(opts *options) *cobra.Command {
	var (
		pushes []string
		asYAML bool
		dbPath string
		id     string
	)

	cmd := &cobra.Command{
		Use:   "encode <location>",
		Short: "Navigate to a location, push pages and print the persisted state",
		Long: `encode starts a navigator at the given location, pushes every --push
location on top of it and prints the state the navigator persists.

With --db the state is also saved to a Badger database under --id and can
be inspected later with "navctl state".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.loadRouter()
			if err != nil {
				return err
			}

			var store navstore.Store = navstore.NewMemory()
			if dbPath != "" {
				cfg := navstore.DefaultConfig(dbPath)
				cfg.Logger = opts.logger
				db, err := navstore.Open(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				store = db
			}

			ctx := cmd.Context()

			// Any earlier state under the same id would be restored instead of
			// starting at the requested location.
			if err := store.Delete(ctx, id); err != nil {
				return err
			}

			n, err := navigator.New(ctx, navigator.Config{
				Router:          r,
				InitialLocation: args[0],
				Store:           store,
				RestorationID:   id,
				Logger:          opts.logger,
			})
			if err != nil {
				return err
			}
			if err := n.Current().Err(); err != nil {
				return err
			}

			for _, loc := range pushes {
				if _, err := n.Push(ctx, loc, nil); err != nil {
					return fmt.Errorf("push %s: %w", loc, err)
				}
			}

			state, err := store.Load(ctx, id)
			if err != nil {
				return err
			}

			return writeState(cmd.OutOrStdout(), state, asYAML)
		},
	}

	cmd.Flags().StringArrayVarP(&pushes, "push", "p", nil, "Location to push (repeatable)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the state as YAML instead of JSON")
	cmd.Flags().StringVar(&dbPath, "db", "", "Badger database directory to save the state into")
	cmd.Flags().StringVar(&id, "id", defaultStateID, "Restoration id of the state")

	return cmd
}

func writeState(w io.Writer, state map[string]any, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
