package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/idance/opstools/internal/core/ports"
)

// RepairSummary reports the outcome of one repair run.
type RepairSummary struct {
	Found  int
	Fixed  int
	Failed int
}

// Repair assigns usernames to user documents that lack one. One bad record
// never aborts the batch; it is logged, counted as failed, and the run moves
// on.
type Repair struct {
	repo      ports.UserRepository
	allocator *Allocator
	log       zerolog.Logger
}

func NewRepair(repo ports.UserRepository, allocator *Allocator, log zerolog.Logger) *Repair {
	return &Repair{repo: repo, allocator: allocator, log: log}
}

// Run finds every user with a null or missing username, allocates a unique
// username for each, and persists it.
func (r *Repair) Run(ctx context.Context) (RepairSummary, error) {
	users, err := r.repo.FindMissingUsernames(ctx)
	if err != nil {
		return RepairSummary{}, fmt.Errorf("find users with missing usernames: %w", err)
	}

	summary := RepairSummary{Found: len(users)}
	r.log.Info().Int("count", summary.Found).Msg("users with missing usernames")
	if summary.Found == 0 {
		r.log.Info().Msg("nothing to fix")
		return summary, nil
	}

	for _, user := range users {
		username, err := r.allocator.Allocate(ctx, user.SeedName())
		if err != nil {
			r.log.Error().Err(err).Str("user_id", user.ID).Msg("allocating username failed")
			summary.Failed++
			continue
		}

		modified, err := r.repo.SetUsername(ctx, user.ID, username)
		if err != nil {
			r.log.Error().Err(err).Str("user_id", user.ID).Msg("updating user failed")
			summary.Failed++
			continue
		}
		if !modified {
			r.log.Warn().Str("user_id", user.ID).Msg("no changes applied")
			summary.Failed++
			continue
		}

		r.log.Info().Str("user_id", user.ID).Str("username", username).Msg("fixed user")
		summary.Fixed++
	}

	r.log.Info().
		Int("found", summary.Found).
		Int("fixed", summary.Fixed).
		Int("failed", summary.Failed).
		Msg("repair summary")
	return summary, nil
}
