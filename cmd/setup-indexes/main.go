// Command setup-indexes ensures the MongoDB indexes exist, then lists what
// is present. Takes an optional scope argument: "users", "challenges", or
// "all" (the default). Safe to re-run; conflicting pre-existing indexes are
// reported as warnings.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/idance/opstools/internal/core/domain"
	"github.com/idance/opstools/internal/core/service"
	mongodb "github.com/idance/opstools/internal/infrastructure/db/mongo"
	"github.com/idance/opstools/internal/pkg/config"
	"github.com/idance/opstools/pkg/logger"
)

func main() {
	scope := "all"
	if len(os.Args) > 1 {
		scope = os.Args[1]
	}
	if scope != "all" && scope != "users" && scope != "challenges" {
		fmt.Fprintf(os.Stderr, "usage: setup-indexes [users|challenges|all]\n")
		os.Exit(2)
	}

	if err := run(context.Background(), scope); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, scope string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Error().Err(err).Msg("loading configuration failed")
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	log.Info().
		Str("environment", cfg.Env).
		Str("database", cfg.Mongo.Database).
		Str("scope", scope).
		Msg("setting up indexes")

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

	var defs []domain.Index
	var collections []string
	if scope == "users" || scope == "all" {
		users := cfg.UsersCollection()
		defs = append(defs, domain.UserIndexes(users)...)
		collections = append(collections, users)
	}
	if scope == "challenges" || scope == "all" {
		defs = append(defs, domain.ChallengeIndexes()...)
		collections = append(collections, domain.ChallengeCollections()...)
	}

	setup := service.NewIndexSetup(mongodb.NewIndexAdmin(db), log)
	created := setup.Ensure(ctx, defs)
	log.Info().Int("created", created).Int("requested", len(defs)).Msg("index setup done")

	if err := setup.Verify(ctx, collections); err != nil {
		log.Error().Err(err).Msg("index verification failed")
		return err
	}
	return nil
}
