/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"github.com/spf13/cobra"

	"github.com/suparena/indexstore"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	RootID  string
	Lenient bool
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Compose every index under a root",
		Long: `Revive every persisted index and compose them into a graph under --root.

The root must name a persisted index unless --lenient is set.

Examples:
  indexctl graph --root 6f1c9a
  indexctl graph --root planned-root --lenient`,
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

			var loaderOpts []indexstore.LoaderOption
			if opts.Lenient {
				loaderOpts = append(loaderOpts, indexstore.WithUnvalidatedRoot())
			}
			g, err := indexstore.NewLoader(loaderOpts...).LoadGraph(ctx, opts.RootID, sc)
			if err != nil {
				return loadError("failed to load graph", err)
			}

			out := struct {
				RootID  string         `json:"root_id"`
				Indices []IndexSummary `json:"indices"`
			}{RootID: g.RootID(), Indices: make([]IndexSummary, 0, g.Len())}
			for _, id := range g.IndexIDs() {
				idx, _ := g.Get(id)
				out.Indices = append(out.Indices, summarize(idx))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&opts.RootID, "root", "", "id of the root index (required)")
	_ = cmd.MarkFlagRequired("root")
	cmd.Flags().BoolVar(&opts.Lenient, "lenient", false, "accept a root with no persisted index")

	return cmd
}
