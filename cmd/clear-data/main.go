// Command clear-data deletes documents from the development collections.
// Takes a scope argument: "all" wipes every development collection, "videos"
// wipes only video-derived data while preserving user accounts. Refuses to
// run against the production environment.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/idance/opstools/internal/core/service"
	mongodb "github.com/idance/opstools/internal/infrastructure/db/mongo"
	"github.com/idance/opstools/internal/pkg/config"
	"github.com/idance/opstools/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: clear-data [all|videos]")
		os.Exit(2)
	}
	scope, err := service.ParseWipeScope(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "clear-data: %v\n", err)
		os.Exit(2)
	}

	if err := run(context.Background(), scope); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, scope service.WipeScope) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Error().Err(err).Msg("loading configuration failed")
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	if cfg.IsProduction() {
		err := fmt.Errorf("refusing to clear data in production")
		log.Error().Err(err).Msg("aborting")
		return err
	}

	log.Info().
		Str("environment", cfg.Env).
		Str("database", cfg.Mongo.Database).
		Str("scope", string(scope)).
		Msg("clearing data")

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Error().Err(err).Msg("connecting to mongo failed")
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("disconnect failed")
		}
	}()

	wipe := service.NewWipe(mongodb.NewCollectionAdmin(db), log)
	if _, err := wipe.Run(ctx, scope, os.Stdout); err != nil {
		log.Error().Err(err).Msg("wipe failed")
		return err
	}
	return nil
}
