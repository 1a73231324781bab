// Command fix-usernames repairs user documents whose username is null or
// missing by allocating a unique username for each one.
package main

import (
	"context"
	"os"

	"github.com/idance/opstools/internal/core/service"
	mongodb "github.com/idance/opstools/internal/infrastructure/db/mongo"
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

	collection := cfg.UsersCollection()
	log.Info().
		Str("environment", cfg.Env).
		Str("database", cfg.Mongo.Database).
		Str("collection", collection).
		Msg("fixing missing usernames")

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

	repo := mongodb.NewUserRepository(db, collection)
	repair := service.NewRepair(repo, service.NewAllocator(repo, log), log)

	summary, err := repair.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("repair run failed")
		return err
	}
	if summary.Fixed > 0 {
		log.Info().Int("fixed", summary.Fixed).Msg("successfully fixed users")
	}
	return nil
}
