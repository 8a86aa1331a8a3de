package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelDebug)

func newTestStore() *MemoryStore {
	return NewMemoryStore(testLogger)
}

func seedResume() *types.Resume {
	return &types.Resume{
		Title:     "Backend Engineer",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Summary:   "Engineer with a decade of distributed systems work.",
		Skills: []types.Skill{
			{Name: "Go", Rating: 5},
			{Name: "Postgres", Rating: 4},
		},
		Experience: []types.Experience{
			{Title: "Engineer", CompanyName: "Analytical Engines", StartDate: "Jan 2015"},
		},
	}
}

func TestMemoryStoreCreate(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.Create(ctx, seedResume())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected a generated ID")
	}

	t.Run("ratings stripped on write", func(t *testing.T) {
		for _, skill := range created.Skills {
			if skill.Rating != 0 {
				t.Errorf("Expected rating stripped for %s, got %d", skill.Name, skill.Rating)
			}
		}
	})

	t.Run("nil resume rejected", func(t *testing.T) {
		if _, err := s.Create(ctx, nil); err == nil {
			t.Error("Expected error for nil resume")
		}
	})

	t.Run("duplicate ID rejected", func(t *testing.T) {
		dup := seedResume()
		dup.ID = created.ID
		if _, err := s.Create(ctx, dup); err == nil {
			t.Error("Expected error for duplicate ID")
		}
	})
}

func TestMemoryStoreGet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.Create(ctx, seedResume())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Backend Engineer" {
		t.Errorf("Expected title 'Backend Engineer', got '%s'", got.Title)
	}

	// Mutating the returned copy must not touch stored state.
	got.Title = "mutated"
	again, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Title != "Backend Engineer" {
		t.Error("Stored resume was mutated through a returned copy")
	}

	if _, err := s.Get(ctx, "no-such-id"); err == nil {
		t.Error("Expected not found error")
	}
}

func TestMemoryStoreUpdateShallowMerge(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.Create(ctx, seedResume())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("patched field replaced, siblings preserved", func(t *testing.T) {
		patch := map[string]json.RawMessage{
			"summary": json.RawMessage(`"Rewritten summary."`),
		}
		updated, err := s.Update(ctx, created.ID, patch)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Summary != "Rewritten summary." {
			t.Errorf("Expected patched summary, got '%s'", updated.Summary)
		}
		if updated.FirstName != "Ada" || len(updated.Experience) != 1 {
			t.Error("Unpatched fields should be preserved")
		}
	})

	t.Run("list replaced wholesale", func(t *testing.T) {
		patch := map[string]json.RawMessage{
			"skills": json.RawMessage(`[{"name":"Rust"}]`),
		}
		updated, err := s.Update(ctx, created.ID, patch)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if len(updated.Skills) != 1 || updated.Skills[0].Name != "Rust" {
			t.Errorf("Expected skills replaced, got %+v", updated.Skills)
		}
	})

	t.Run("id is immutable", func(t *testing.T) {
		patch := map[string]json.RawMessage{
			"id": json.RawMessage(`"hijacked"`),
		}
		updated, err := s.Update(ctx, created.ID, patch)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.ID != created.ID {
			t.Errorf("Expected ID %s, got %s", created.ID, updated.ID)
		}
	})

	t.Run("invalid patch rejected", func(t *testing.T) {
		patch := map[string]json.RawMessage{
			"skills": json.RawMessage(`"not a list"`),
		}
		if _, err := s.Update(ctx, created.ID, patch); err == nil {
			t.Error("Expected schema validation error")
		}
	})

	t.Run("unknown resume", func(t *testing.T) {
		patch := map[string]json.RawMessage{"title": json.RawMessage(`"x"`)}
		if _, err := s.Update(ctx, "no-such-id", patch); err == nil {
			t.Error("Expected not found error")
		}
	})
}

func TestMemoryStoreUpdateSanitizesRichText(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.Create(ctx, seedResume())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	patch := map[string]json.RawMessage{
		"experience": json.RawMessage(`[{"title":"Engineer","workSummary":"<p onclick=\"x()\">built things</p><script>evil()</script>"}]`),
	}
	updated, err := s.Update(ctx, created.ID, patch)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	summary := updated.Experience[0].WorkSummary
	if summary != "<p>built things</p>" {
		t.Errorf("Expected sanitized work summary, got '%s'", summary)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.Create(ctx, seedResume())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); err == nil {
		t.Error("Expected resume to be gone")
	}
	if err := s.Delete(ctx, created.ID); err == nil {
		t.Error("Expected not found error on second delete")
	}
}

func TestMemoryStoreListAll(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty store, got %d resumes", len(all))
	}

	for range 3 {
		if _, err := s.Create(ctx, seedResume()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err = s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 resumes, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID > all[i].ID {
			t.Error("Expected listing ordered by ID")
		}
	}
}
