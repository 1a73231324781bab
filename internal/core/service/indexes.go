package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/idance/opstools/internal/core/domain"
	"github.com/idance/opstools/internal/core/ports"
)

// IndexSetup ensures a set of indexes exists. Creation failures are isolated
// per index: a conflicting pre-existing index is a warning, not a fatal
// error, so re-running the script against an already-indexed collection
// succeeds.
type IndexSetup struct {
	admin ports.IndexAdmin
	log   zerolog.Logger
}

func NewIndexSetup(admin ports.IndexAdmin, log zerolog.Logger) *IndexSetup {
	return &IndexSetup{admin: admin, log: log}
}

// Ensure creates every index in defs and returns how many were created.
func (s *IndexSetup) Ensure(ctx context.Context, defs []domain.Index) int {
	created := 0
	for _, def := range defs {
		name, err := s.admin.CreateIndex(ctx, def)
		if err != nil {
			s.log.Warn().Err(err).
				Str("collection", def.Collection).
				Str("index", def.Name).
				Msg("index creation failed")
			continue
		}
		s.log.Info().
			Str("collection", def.Collection).
			Str("index", name).
			Bool("unique", def.Unique).
			Bool("sparse", def.Sparse).
			Msg("index created")
		created++
	}
	return created
}

// Verify lists the indexes present on each collection.
func (s *IndexSetup) Verify(ctx context.Context, collections []string) error {
	for _, coll := range collections {
		infos, err := s.admin.ListIndexes(ctx, coll)
		if err != nil {
			return fmt.Errorf("list indexes on %s: %w", coll, err)
		}
		s.log.Info().Str("collection", coll).Int("indexes", len(infos)).Msg("collection indexed")
		for _, info := range infos {
			s.log.Info().
				Str("collection", coll).
				Str("index", info.Name).
				Str("keys", formatKeys(info.Keys)).
				Msg("index")
		}
	}
	return nil
}

func formatKeys(keys []domain.IndexKey) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s:%d", k.Field, k.Order)
	}
	return out
}
