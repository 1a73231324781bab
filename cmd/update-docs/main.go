// Command update-docs maintains API_DOCUMENTATION.md. With "update" it
// refreshes the Last Updated line; with "template" it prints the markdown
// skeleton for documenting a new endpoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/idance/opstools/internal/core/service"
	"github.com/idance/opstools/internal/pkg/config"
	"github.com/idance/opstools/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: update-docs update      refresh the Last Updated date")
	fmt.Fprintln(os.Stderr, "       update-docs template    print the new-endpoint template")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "template":
		fmt.Print(service.EndpointTemplate())
	case "update":
		if err := run(context.Background()); err != nil {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
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

	date, err := service.NewDocs(cfg.DocsPath).Update()
	if err != nil {
		log.Error().Err(err).Msg("updating documentation failed")
		return err
	}
	log.Info().Str("path", cfg.DocsPath).Str("date", date).Msg("documentation updated")
	return nil
}
