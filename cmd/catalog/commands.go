// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/foodgram/internal/core/ingredient"
	"github.com/taibuivan/foodgram/internal/core/tag"
	"github.com/taibuivan/foodgram/internal/platform/cache"
	"github.com/taibuivan/foodgram/internal/platform/config"
	"github.com/taibuivan/foodgram/internal/platform/migration"
	pgstore "github.com/taibuivan/foodgram/internal/platform/postgres"
	redisstore "github.com/taibuivan/foodgram/internal/platform/redis"
)

// runtime bundles the connections shared by every subcommand.
type runtime struct {
	pool  *pgxpool.Pool
	cache *cache.Cache
	close func()
}

// connect loads the configuration, opens the pool and applies migrations.
// Redis is optional; without it the cache handle stays nil.
func connect(ctx context.Context, log *slog.Logger) (*runtime, error) {
	cfg, err := config.LoadCatalog()
	if err != nil {
		return nil, err
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return nil, err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	rt := &runtime{pool: pool, close: pool.Close}
	if cfg.RedisURL == "" {
		return rt, nil
	}

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	rt.cache = cache.New(rdb, 0, log)
	rt.close = func() {
		_ = rdb.Close()
		pool.Close()
	}
	return rt, nil
}

func openFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	return file, nil
}

func newIngredientsCommand(log *slog.Logger) *cobra.Command {
	var (
		path       string
		appendRows bool
		skipHeader bool
	)

	command := &cobra.Command{
		Use:   "ingredients",
		Short: "Import (name, measurement_unit) rows into the ingredient catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			file, err := openFile(path)
			if err != nil {
				return err
			}
			defer file.Close()

			rows, err := ingredient.ParseCSV(file, skipHeader)
			if err != nil {
				return err
			}

			rt, err := connect(ctx, log)
			if err != nil {
				return err
			}
			defer rt.close()

			mode := ingredient.ImportSkipIfPopulated
			if appendRows {
				mode = ingredient.ImportAppend
			}

			service := ingredient.NewService(ingredient.NewPostgresRepository(rt.pool), rt.cache, log)
			result, err := service.Import(ctx, rows, mode)
			if err != nil {
				return err
			}

			if result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "catalog already holds %d ingredients, nothing loaded (use --append)\n", result.Existing)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d ingredients\n", result.Inserted)
			return nil
		},
	}

	command.Flags().StringVar(&path, "file", "data/ingredients.csv", "CSV file with name,measurement_unit rows")
	command.Flags().BoolVar(&appendRows, "append", false, "insert even when the catalog is not empty")
	command.Flags().BoolVar(&skipHeader, "skip-header", true, "discard the first CSV record")
	return command
}

func newTagsCommand(log *slog.Logger) *cobra.Command {
	var (
		path       string
		skipHeader bool
	)

	command := &cobra.Command{
		Use:   "tags",
		Short: "Upsert (name, color[, slug]) rows into the tag catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			file, err := openFile(path)
			if err != nil {
				return err
			}
			defer file.Close()

			rows, err := tag.ParseCSV(file, skipHeader)
			if err != nil {
				return err
			}

			rt, err := connect(ctx, log)
			if err != nil {
				return err
			}
			defer rt.close()

			service := tag.NewService(tag.NewPostgresRepository(rt.pool), rt.cache, log)
			written, err := service.ImportTags(ctx, rows)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "upserted %d tags\n", written)
			return nil
		},
	}

	command.Flags().StringVar(&path, "file", "data/tags.csv", "CSV file with name,color[,slug] rows")
	command.Flags().BoolVar(&skipHeader, "skip-header", true, "discard the first CSV record")
	return command
}
