/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"github.com/spf13/cobra"

	"github.com/suparena/indexstore"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Revive every persisted index",
		Long: `Revive every persisted index struct, in storage order, and print a summary of each.

Examples:
  indexctl list --config ./indexstore.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := openStorage(ctx, opts)
			if err != nil {
				return err
			}
			defer sc.Close()

			indices, err := indexstore.LoadIndicesFromStorage(ctx, sc, nil)
			if err != nil {
				return loadError("failed to load indices", err)
			}

			out := struct {
				Indices []IndexSummary `json:"indices"`
			}{Indices: make([]IndexSummary, 0, len(indices))}
			for _, idx := range indices {
				out.Indices = append(out.Indices, summarize(idx))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
