package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/idance/opstools/internal/core/domain"
)

func userWithDisplayName(id, name string) domain.User {
	u := domain.User{ID: id}
	u.Profile.DisplayName = name
	return u
}

func newTestRepair(repo *stubUserRepo) *Repair {
	return NewRepair(repo, NewAllocator(repo, zerolog.Nop()), zerolog.Nop())
}

func TestRepair_FixesAllUsers(t *testing.T) {
	repo := newStubUserRepo()
	repo.missing = []domain.User{
		userWithDisplayName("u1", "Alice!"),
		userWithDisplayName("u2", "Bob"),
	}
	repair := newTestRepair(repo)

	summary, err := repair.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Found != 2 || summary.Fixed != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want Found=2 Fixed=2 Failed=0", summary)
	}
	if repo.updates["u1"] != "alice" {
		t.Errorf("u1 username = %q, want %q", repo.updates["u1"], "alice")
	}
	if repo.updates["u2"] != "bob" {
		t.Errorf("u2 username = %q, want %q", repo.updates["u2"], "bob")
	}
}

func TestRepair_ZeroModifiedCountsAsFailed(t *testing.T) {
	repo := newStubUserRepo()
	repo.missing = []domain.User{
		userWithDisplayName("u1", "Alice"),
		userWithDisplayName("u2", "Bob"),
		userWithDisplayName("u3", "Carol"),
	}
	repo.notModified["u2"] = true
	repair := newTestRepair(repo)

	summary, err := repair.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Fixed != 2 {
		t.Errorf("Fixed = %d, want 2", summary.Fixed)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
}

func TestRepair_UpdateErrorDoesNotAbortBatch(t *testing.T) {
	repo := newStubUserRepo()
	repo.missing = []domain.User{
		userWithDisplayName("u1", "Alice"),
		userWithDisplayName("u2", "Bob"),
		userWithDisplayName("u3", "Carol"),
	}
	repo.setErr["u1"] = errors.New("write conflict")
	repair := newTestRepair(repo)

	summary, err := repair.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Fixed != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want Fixed=2 Failed=1", summary)
	}
	if _, ok := repo.updates["u3"]; !ok {
		t.Error("u3 was not processed after u1 failed")
	}
}

func TestRepair_SeedFallsBackToEmailLocalPart(t *testing.T) {
	repo := newStubUserRepo()
	u := domain.User{ID: "u1"}
	u.Auth.Email = "Dane.Joe+x@example.com"
	repo.missing = []domain.User{u}
	repair := newTestRepair(repo)

	if _, err := repair.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if repo.updates["u1"] != "danejoex" {
		t.Errorf("username = %q, want %q", repo.updates["u1"], "danejoex")
	}
}

func TestRepair_NothingToFix(t *testing.T) {
	repo := newStubUserRepo()
	repair := newTestRepair(repo)

	summary, err := repair.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary != (RepairSummary{}) {
		t.Errorf("summary = %+v, want zero", summary)
	}
}
