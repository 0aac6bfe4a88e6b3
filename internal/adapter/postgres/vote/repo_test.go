package vote_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sipalaciosv/dupe/internal/adapter/postgres/testhelper"
	"github.com/sipalaciosv/dupe/internal/adapter/postgres/vote"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*vote.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return vote.New(pool), pool
}

func seedDupe(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	creator := uuid.New()
	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO dupes (group_id, original_id, nombre, slug, created_by, updated_by)
		 VALUES ($1, $2, 'Test Dupe', 'test-dupe', $3, $3) RETURNING id`,
		uuid.New(), uuid.New(), creator,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed dupe: %v", err)
	}
	return id
}

func seedOriginal(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	creator := uuid.New()
	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO originals (group_id, nombre, slug, created_by, updated_by)
		 VALUES ($1, 'Test Original', 'test-original', $2, $2) RETURNING id`,
		uuid.New(), creator,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed original: %v", err)
	}
	return id
}

func ptrStr(s string) *string { return &s }

func TestRepo_Upsert_InsertThenOverwrite(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dupeID := seedDupe(t, pool)
	userID := uuid.New()

	first, err := repo.Upsert(ctx, &domain.Vote{
		DupeID:         &dupeID,
		UserID:         userID,
		Parecido:       5,
		GustoAlAplicar: 6,
		GustoDespues:   7,
		Comentario:     ptrStr("first impression"),
		DisplayName:    "Voter",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if first.Parecido != 5 {
		t.Errorf("Parecido = %d", first.Parecido)
	}

	second, err := repo.Upsert(ctx, &domain.Vote{
		DupeID:         &dupeID,
		UserID:         userID,
		Parecido:       9,
		GustoAlAplicar: 8,
		GustoDespues:   8,
		DisplayName:    "Voter Renamed",
	})
	if err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}
	if second.ID != first.ID {
		t.Error("overwrite should keep the same vote row")
	}
	if second.Parecido != 9 {
		t.Errorf("Parecido = %d, want 9", second.Parecido)
	}
	if second.Comentario != nil {
		t.Error("overwrite should clear the old comment")
	}
	if second.DisplayName != "Voter Renamed" {
		t.Errorf("DisplayName = %q", second.DisplayName)
	}

	votes, err := repo.ListByDupe(ctx, dupeID)
	if err != nil {
		t.Fatalf("ListByDupe: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected 1 vote after overwrite, got %d", len(votes))
	}
}

func TestRepo_Upsert_OriginalVote(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	originalID := seedOriginal(t, pool)
	userID := uuid.New()

	saved, err := repo.Upsert(ctx, &domain.Vote{
		OriginalID:     &originalID,
		UserID:         userID,
		Parecido:       10,
		GustoAlAplicar: 10,
		GustoDespues:   10,
		DisplayName:    "Fan",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.OriginalID == nil || *saved.OriginalID != originalID {
		t.Error("expected vote bound to the original")
	}
	if saved.DupeID != nil {
		t.Error("DupeID should be nil for an original vote")
	}

	votes, err := repo.ListByOriginal(ctx, originalID)
	if err != nil {
		t.Fatalf("ListByOriginal: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected 1 vote, got %d", len(votes))
	}
}

func TestRepo_Upsert_NoSubject(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Upsert(context.Background(), &domain.Vote{
		UserID:         uuid.New(),
		Parecido:       5,
		GustoAlAplicar: 5,
		GustoDespues:   5,
		DisplayName:    "Nobody",
	})
	if err == nil {
		t.Fatal("expected error for vote without subject")
	}
}

func TestRepo_ListByDupe_MultipleVoters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	dupeID := seedDupe(t, pool)

	for i, score := range []int{3, 7} {
		_, err := repo.Upsert(ctx, &domain.Vote{
			DupeID:         &dupeID,
			UserID:         uuid.New(),
			Parecido:       score,
			GustoAlAplicar: score,
			GustoDespues:   score,
			DisplayName:    "Voter",
		})
		if err != nil {
			t.Fatalf("Upsert %d: %v", i, err)
		}
	}

	votes, err := repo.ListByDupe(ctx, dupeID)
	if err != nil {
		t.Fatalf("ListByDupe: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(votes))
	}

	avg := domain.AverageVotes(votes)
	if avg.Count != 2 {
		t.Errorf("Count = %d", avg.Count)
	}
	if avg.Parecido != 5 {
		t.Errorf("Parecido avg = %v, want 5", avg.Parecido)
	}
}

func TestRepo_ListByDupe_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	votes, err := repo.ListByDupe(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListByDupe: %v", err)
	}
	if votes == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(votes) != 0 {
		t.Errorf("expected no votes, got %d", len(votes))
	}
}
