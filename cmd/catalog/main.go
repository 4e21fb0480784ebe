// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command catalog loads the tag and ingredient catalogs from CSV files.
//
// Usage:
//
//	catalog ingredients --file data/ingredients.csv [--append] [--skip-header=false]
//	catalog tags --file data/tags.csv
//
// Migrations are applied before loading. When REDIS_URL is set the catalog
// cache is invalidated after a successful load.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/foodgram/internal/platform/constants"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName+"-catalog"))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(log).ExecuteContext(ctx); err != nil {
		log.Error("catalog_load_failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func newRootCommand(log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Load the Foodgram tag and ingredient catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newIngredientsCommand(log), newTagsCommand(log))
	return root
}
