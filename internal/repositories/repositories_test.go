package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/shared"
	tu "github.com/desertthunder/flashdeck/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func seed(t *testing.T, repo *CardRepository, cards []models.Card) []*models.CardRecord {
	t.Helper()
	records := make([]*models.CardRecord, len(cards))
	for i, c := range cards {
		rec := models.NewCardRecord(c, "test.json")
		if err := repo.Create(rec); err != nil {
			t.Fatalf("failed to create card %s: %v", c.Word, err)
		}
		records[i] = rec
	}
	return records
}

func TestCardRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		records := seed(t, repo, tu.SampleCards()[:2])

		if records[0].ID == "" {
			t.Error("card ID should be set after creation")
		}
		if records[0].Sequence != 1 || records[1].Sequence != 2 {
			t.Errorf("expected sequences 1 and 2, got %d and %d", records[0].Sequence, records[1].Sequence)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		records := seed(t, repo, tu.SampleCards())

		got, err := repo.Get(records[1].ID)
		if err != nil {
			t.Fatalf("failed to get card: %v", err)
		}
		if got.Word != "das Brot" || got.MeaningFa != "نان" || got.Example != "Ich esse Brot." {
			t.Errorf("unexpected card %+v", got.Card)
		}
		if got.Source != "test.json" {
			t.Errorf("expected source test.json, got %s", got.Source)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		records := seed(t, repo, tu.SampleCards()[:1])

		records[0].Meaning = "Hi"
		if err := repo.Update(records[0]); err != nil {
			t.Fatalf("failed to update card: %v", err)
		}

		got, _ := repo.Get(records[0].ID)
		if got.Meaning != "Hi" {
			t.Errorf("expected updated meaning, got %s", got.Meaning)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		records := seed(t, repo, tu.SampleCards())

		if err := repo.Delete(records[0].ID); err != nil {
			t.Fatalf("failed to delete card: %v", err)
		}
		if _, err := repo.Get(records[0].ID); !errors.Is(err, shared.ErrCardNotFound) {
			t.Errorf("expected ErrCardNotFound after delete, got %v", err)
		}
		if err := repo.Delete(records[0].ID); err == nil {
			t.Error("deleting twice should fail")
		}

		n, err := repo.Count()
		if err != nil || n != 4 {
			t.Errorf("expected 4 live cards, got %d (%v)", n, err)
		}
	})

	t.Run("DeleteAll", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		seed(t, repo, tu.SampleCards())

		n, err := repo.DeleteAll()
		if err != nil || n != 5 {
			t.Fatalf("expected 5 deleted, got %d (%v)", n, err)
		}
		if count, _ := repo.Count(); count != 0 {
			t.Errorf("expected empty catalog, got %d", count)
		}

		seed(t, repo, tu.SampleCards()[:1])
		if count, _ := repo.Count(); count != 1 {
			t.Errorf("re-import after delete should succeed, got %d", count)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		seed(t, repo, tu.SampleCards())

		tt := []struct {
			name     string
			criteria map[string]any
			want     int
		}{
			{name: "no criteria", criteria: nil, want: 5},
			{name: "category", criteria: map[string]any{"category": "greetings"}, want: 2},
			{name: "all category", criteria: map[string]any{"category": models.CategoryAll}, want: 5},
			{name: "source", criteria: map[string]any{"source": "other.json"}, want: 0},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				got, err := repo.List(tc.criteria)
				if err != nil {
					t.Fatalf("failed to list: %v", err)
				}
				if len(got) != tc.want {
					t.Errorf("expected %d cards, got %d", tc.want, len(got))
				}
			})
		}
	})

	t.Run("Cards keeps import order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		seed(t, repo, tu.SampleCards())

		cards, err := repo.Cards()
		if err != nil {
			t.Fatalf("failed to load cards: %v", err)
		}
		for i, want := range tu.SampleCards() {
			if cards[i].Word != want.Word {
				t.Errorf("card %d: expected %s, got %s", i, want.Word, cards[i].Word)
			}
		}
	})

	t.Run("Upsert", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCardRepository(db)
		card := tu.SampleCards()[0]

		inserted, err := repo.Upsert(card, "a.json")
		if err != nil || !inserted {
			t.Fatalf("expected insert, got inserted=%v err=%v", inserted, err)
		}

		card.Meaning = "Hi there"
		inserted, err = repo.Upsert(card, "b.json")
		if err != nil || inserted {
			t.Fatalf("expected update, got inserted=%v err=%v", inserted, err)
		}

		got, err := repo.GetByWord(card.Word, card.Category)
		if err != nil {
			t.Fatalf("failed to get by word: %v", err)
		}
		if got.Meaning != "Hi there" || got.Source != "b.json" {
			t.Errorf("upsert did not refresh card: %+v", got)
		}
		if n, _ := repo.Count(); n != 1 {
			t.Errorf("expected one card, got %d", n)
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "cards")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for missing sequence table")
	}
}
