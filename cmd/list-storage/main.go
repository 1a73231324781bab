// Command list-storage prints an inventory of the S3 media bucket: every
// object grouped by top-level directory, plus totals and a per-extension
// summary. Orphaned files show up here too, which is the point.
package main

import (
	"context"
	"os"

	"github.com/idance/opstools/internal/core/service"
	"github.com/idance/opstools/internal/infrastructure/storage"
	"github.com/idance/opstools/internal/pkg/config"
	"github.com/idance/opstools/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Error().Err(err).Msg("loading configuration failed")
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	log.Info().
		Str("bucket", cfg.AWS.Bucket).
		Str("region", cfg.AWS.Region).
		Msg("listing bucket contents")

	lister, err := storage.NewBucketLister(ctx, storage.Config{
		Bucket:          cfg.AWS.Bucket,
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		log.Error().Err(err).Msg("building bucket lister failed")
		return err
	}

	report := service.NewBucketReport(lister, cfg.AWS.Bucket)
	if err := report.Write(ctx, os.Stdout); err != nil {
		log.Error().Err(err).Msg("listing bucket failed")
		return err
	}
	return nil
}
