package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/rs/zerolog"

	"github.com/idance/opstools/internal/core/domain"
)

// stubUserRepo backs the allocator and repair tests with an in-memory
// username set.
type stubUserRepo struct {
	usernames map[string]bool
	probes    []string

	missing     []domain.User
	setErr      map[string]error
	notModified map[string]bool
	updates     map[string]string

	existsErr error
}

func newStubUserRepo(usernames ...string) *stubUserRepo {
	r := &stubUserRepo{
		usernames:   make(map[string]bool),
		setErr:      make(map[string]error),
		notModified: make(map[string]bool),
		updates:     make(map[string]string),
	}
	for _, u := range usernames {
		r.usernames[u] = true
	}
	return r
}

func (r *stubUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	r.probes = append(r.probes, username)
	return r.usernames[username], nil
}

func (r *stubUserRepo) FindMissingUsernames(_ context.Context) ([]domain.User, error) {
	return r.missing, nil
}

func (r *stubUserRepo) SetUsername(_ context.Context, id, username string) (bool, error) {
	if err := r.setErr[id]; err != nil {
		return false, err
	}
	if r.notModified[id] {
		return false, nil
	}
	r.updates[id] = username
	r.usernames[username] = true
	return true, nil
}

func newTestAllocator(repo *stubUserRepo) *Allocator {
	return NewAllocator(repo, zerolog.Nop())
}

var lowercaseAlnum = regexp.MustCompile(`^[a-z0-9]+$`)

func TestAllocate_ReturnsLowercaseAlphanumeric(t *testing.T) {
	repo := newStubUserRepo()
	allocator := newTestAllocator(repo)

	for _, seed := range []string{"Alice!", "BOB-the_builder", "émilie@", "  ", "user.name+tag"} {
		got, err := allocator.Allocate(context.Background(), seed)
		if err != nil {
			t.Fatalf("Allocate(%q) returned error: %v", seed, err)
		}
		if !lowercaseAlnum.MatchString(got) {
			t.Errorf("Allocate(%q) = %q, want lowercase alphanumeric", seed, got)
		}
	}
}

func TestAllocate_EmptySeedProbesUserFirst(t *testing.T) {
	repo := newStubUserRepo()
	allocator := newTestAllocator(repo)

	got, err := allocator.Allocate(context.Background(), "!!!")
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if got != "user" {
		t.Errorf("Allocate = %q, want %q", got, "user")
	}
	if len(repo.probes) == 0 || repo.probes[0] != "user" {
		t.Errorf("first probe = %v, want \"user\"", repo.probes)
	}
}

func TestAllocate_ProbesInCounterOrder(t *testing.T) {
	repo := newStubUserRepo("alice", "alice1", "alice2")
	allocator := newTestAllocator(repo)

	got, err := allocator.Allocate(context.Background(), "Alice!")
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if got != "alice3" {
		t.Errorf("Allocate = %q, want %q", got, "alice3")
	}

	want := []string{"alice", "alice1", "alice2", "alice3"}
	if len(repo.probes) != len(want) {
		t.Fatalf("probes = %v, want %v", repo.probes, want)
	}
	for i, p := range want {
		if repo.probes[i] != p {
			t.Errorf("probe %d = %q, want %q", i, repo.probes[i], p)
		}
	}
}

func TestAllocate_RandomFallbackAfterExhaustion(t *testing.T) {
	taken := make([]string, 0, 1000)
	taken = append(taken, "bob")
	for i := 1; i < 1000; i++ {
		taken = append(taken, fmt.Sprintf("bob%d", i))
	}
	repo := newStubUserRepo(taken...)
	allocator := newTestAllocator(repo)

	got, err := allocator.Allocate(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if got == "bob1000" {
		t.Fatalf("Allocate = %q, want random fallback instead of continued probing", got)
	}
	if !regexp.MustCompile(`^user[a-z0-9]{6}$`).MatchString(got) {
		t.Errorf("Allocate = %q, want user followed by 6 alphanumerics", got)
	}

	// 1000 incremental probes plus the single fallback check.
	if len(repo.probes) != 1001 {
		t.Errorf("probe count = %d, want 1001", len(repo.probes))
	}
	for _, p := range repo.probes {
		if p == "bob1000" {
			t.Errorf("probed %q, counter should stop at bob999", p)
		}
	}
}

func TestAllocate_FallbackReturnedEvenOnCollision(t *testing.T) {
	allocator := NewAllocator(&collidingRepo{}, zerolog.Nop())

	got, err := allocator.Allocate(context.Background(), "carol")
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if !regexp.MustCompile(`^user[a-z0-9]{6}$`).MatchString(got) {
		t.Errorf("Allocate = %q, want the colliding fallback candidate", got)
	}
}

// collidingRepo reports every username as taken.
type collidingRepo struct{}

func (collidingRepo) UsernameExists(context.Context, string) (bool, error) { return true, nil }
func (collidingRepo) FindMissingUsernames(context.Context) ([]domain.User, error) {
	return nil, nil
}
func (collidingRepo) SetUsername(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestAllocate_PropagatesStoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.existsErr = errors.New("connection reset")
	allocator := newTestAllocator(repo)

	if _, err := allocator.Allocate(context.Background(), "dave"); err == nil {
		t.Fatal("Allocate succeeded, want store error")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		seed string
		want string
	}{
		{"Alice!", "alice"},
		{"", "user"},
		{"___", "user"},
		{"Bob Smith 99", "bobsmith99"},
		{"user", "user"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.seed); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.seed, got, tc.want)
		}
	}
}
