/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"github.com/spf13/cobra"

	"github.com/suparena/indexstore"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	IndexID string
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Revive a single index",
		Long: `Revive a single index struct. Without --id the store must hold exactly one.

Examples:
  indexctl load
  indexctl load --id 6f1c9a`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := openStorage(ctx, opts.RootOptions)
			if err != nil {
				return err
			}
			defer sc.Close()

			idx, err := indexstore.LoadIndexFromStorage(ctx, sc, opts.IndexID)
			if err != nil {
				return loadError("failed to load index", err)
			}
			return writeJSON(cmd.OutOrStdout(), summarize(idx))
		},
	}

	cmd.Flags().StringVar(&opts.IndexID, "id", "", "index id to load")

	return cmd
}
