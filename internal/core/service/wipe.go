package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/rs/zerolog"

	"github.com/idance/opstools/internal/core/domain"
	"github.com/idance/opstools/internal/core/ports"
)

// WipeScope selects which collections a wipe run touches.
type WipeScope string

const (
	// WipeAll clears every development collection.
	WipeAll WipeScope = "all"
	// WipeVideos clears only video-derived data, including challenge
	// submissions and leaderboards, while preserving user accounts,
	// challenge definitions, and the background job queues.
	WipeVideos WipeScope = "videos"
)

// ParseWipeScope validates a scope argument.
func ParseWipeScope(s string) (WipeScope, error) {
	switch WipeScope(s) {
	case WipeAll, WipeVideos:
		return WipeScope(s), nil
	default:
		return "", fmt.Errorf("unknown scope %q (want %q or %q)", s, WipeAll, WipeVideos)
	}
}

// Collections returns the collection names a scope clears.
func (s WipeScope) Collections() []string {
	if s == WipeVideos {
		return domain.VideoCollections
	}
	return domain.DevelopmentCollections
}

// WipeSummary reports the outcome of one wipe run.
type WipeSummary struct {
	Cleared   int
	Documents int64
	Failed    int
}

// Wipe deletes all documents from a fixed set of collections. Collections
// that do not exist are skipped, and a failure on one collection does not
// stop the rest.
type Wipe struct {
	admin ports.CollectionAdmin
	log   zerolog.Logger
}

func NewWipe(admin ports.CollectionAdmin, log zerolog.Logger) *Wipe {
	return &Wipe{admin: admin, log: log}
}

// Run clears every collection selected by scope, writing a before/after
// inventory to w.
func (wp *Wipe) Run(ctx context.Context, scope WipeScope, w io.Writer) (WipeSummary, error) {
	existing, err := wp.admin.CollectionNames(ctx)
	if err != nil {
		return WipeSummary{}, fmt.Errorf("list collections: %w", err)
	}
	sort.Strings(existing)

	targets := scope.Collections()

	fmt.Fprintln(w, "Current collections:")
	for _, name := range existing {
		count, err := wp.admin.CountDocuments(ctx, name)
		if err != nil {
			return WipeSummary{}, fmt.Errorf("count %s: %w", name, err)
		}
		status := "preserve"
		if slices.Contains(targets, name) {
			status = "clear"
		}
		fmt.Fprintf(w, "  - %s: %d documents (%s)\n", name, count, status)
	}

	var summary WipeSummary
	for _, name := range targets {
		if !slices.Contains(existing, name) {
			wp.log.Debug().Str("collection", name).Msg("collection does not exist, skipping")
			continue
		}
		deleted, err := wp.admin.DeleteAll(ctx, name)
		if err != nil {
			wp.log.Error().Err(err).Str("collection", name).Msg("clearing collection failed")
			summary.Failed++
			continue
		}
		wp.log.Info().Str("collection", name).Int64("deleted", deleted).Msg("collection cleared")
		summary.Cleared++
		summary.Documents += deleted
	}

	fmt.Fprintf(w, "\nCleared %d collections (%d documents), %d failures\n",
		summary.Cleared, summary.Documents, summary.Failed)
	return summary, nil
}
