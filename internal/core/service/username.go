package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idance/opstools/internal/core/ports"
)

const (
	// maxProbes bounds the incremental probing loop before the random
	// fallback kicks in.
	maxProbes = 1000

	fallbackBase      = "user"
	fallbackSuffixLen = 6
	suffixAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Allocator produces usernames that do not collide with any stored one at
// the time of the check. It only reads; persisting the chosen username is
// the caller's job, and the unique index on the username field remains the
// real guarantee against two racing allocators picking the same value.
type Allocator struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewAllocator(repo ports.UserRepository, log zerolog.Logger) *Allocator {
	return &Allocator{repo: repo, log: log}
}

// Normalize reduces a seed to its username base: ASCII letters and digits
// only, lowercased, with an empty result coerced to "user".
func Normalize(seed string) string {
	base := nonAlphanumeric.ReplaceAllString(strings.ToLower(seed), "")
	if base == "" {
		base = fallbackBase
	}
	return base
}

// Allocate derives a free username from seed. It tries the normalized base
// first, then base1, base2, … in order. After maxProbes collisions it gives
// up on incremental probing and synthesizes "user" plus a random 6-character
// suffix; that candidate is checked once and returned even if the check
// reports a collision, with the unique index left to reject the write.
func (a *Allocator) Allocate(ctx context.Context, seed string) (string, error) {
	base := Normalize(seed)

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := a.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check username %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		// counter == maxProbes means base through base999 all collided;
		// base1000 is never tried.
		if counter >= maxProbes {
			break
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}

	candidate = fallbackBase + randomSuffix(fallbackSuffixLen)
	exists, err := a.repo.UsernameExists(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("check username %q: %w", candidate, err)
	}
	if exists {
		// Known gap: the random candidate is not re-probed, so it is
		// handed back despite the collision.
		a.log.Warn().Str("username", candidate).
			Msg("random fallback username collides, returning it anyway")
	}
	return candidate, nil
}

func randomSuffix(n int) string {
	var sb strings.Builder
	for range n {
		sb.WriteByte(suffixAlphabet[rand.IntN(len(suffixAlphabet))])
	}
	return sb.String()
}
