package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navstack/nav"
	"github.com/vitalvas/navstack/navstore"
)

func stateCmd(opts *options) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect navigation state saved in a Badger database",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Badger database directory")
	_ = cmd.MarkPersistentFlagRequired("db")

	open := func() (*navstore.Badger, error) {
		cfg := navstore.DefaultConfig(dbPath)
		cfg.Logger = opts.logger
		return navstore.Open(cfg)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved restoration ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			ids, err := db.IDs(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	var (
		asYAML bool
		check  bool
	)
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved state",
		Long: `show prints the saved state of a restoration id. With --check the state
is also decoded against the route table and the restored location is printed
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			state, err := db.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !check {
				return writeState(cmd.OutOrStdout(), state, asYAML)
			}

			r, err := opts.loadRouter()
			if err != nil {
				return err
			}

			l := nav.NewCodec(r).Decode(state)
			if l == nil {
				return errors.New("state does not match the route table")
			}
			fmt.Fprintln(cmd.OutOrStdout(), l.CurrentLocation())
			return nil
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "Print the state as YAML instead of JSON")
	show.Flags().BoolVar(&check, "check", false, "Decode the state against the route table")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			return db.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, show, rm)

	return cmd
}
