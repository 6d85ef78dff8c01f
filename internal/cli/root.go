/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package cli implements the indexctl command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/suparena/indexstore/config"
	"github.com/suparena/indexstore/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for indexctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "indexctl",
		Short: "Inspect persisted index structs",
		Long:  "Load index structs from a record store and print the live indices they revive into.",
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(NewVersionCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))

	return cmd
}

// openStorage builds the storage context described by the config flag and environment.
func openStorage(ctx context.Context, opts *RootOptions) (*storage.Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}

	sc, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}
	return sc, nil
}
