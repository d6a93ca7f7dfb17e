package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/shared"
)

const cardColumns = `id, sequence, word, pronunciation, example, meaning, meaning_fa, category, source, created_at, updated_at, deleted_at`

// CardRepository stores [models.CardRecord] values in the cards table.
type CardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository with the given database connection
func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create inserts a new record with a generated ID and sequence.
func (r *CardRepository) Create(record *models.CardRecord) error {
	record.ID = shared.GenerateID()
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCard, err)
	}

	sequence, err := NextSequence(r.db, "cards")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	record.Sequence = sequence

	_, err = r.db.Exec(`
		INSERT INTO cards (id, sequence, word, pronunciation, example, meaning, meaning_fa, category, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.Sequence,
		record.Word,
		record.Pronunciation,
		record.Example,
		record.Meaning,
		record.MeaningFa,
		record.Category,
		record.Source,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}

	return nil
}

// Upsert inserts card, or refreshes the existing live card with the same word and category.
//
// Returns true when a new row was inserted.
func (r *CardRepository) Upsert(card models.Card, source string) (bool, error) {
	existing, err := r.GetByWord(card.Word, card.Category)
	if err != nil && !errors.Is(err, shared.ErrCardNotFound) {
		return false, err
	}

	if existing == nil {
		return true, r.Create(models.NewCardRecord(card, source))
	}

	id := existing.ID
	existing.Card = card
	existing.ID = id
	existing.Source = source
	return false, r.Update(existing)
}

// Get retrieves a card by ID, excluding soft-deleted cards
func (r *CardRepository) Get(id string) (*models.CardRecord, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByWord retrieves the live card with the given word and category.
func (r *CardRepository) GetByWord(word, category string) (*models.CardRecord, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE word = ? AND category = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, word, category))
}

// Update modifies an existing card in the database
func (r *CardRepository) Update(record *models.CardRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCard, err)
	}

	now := time.Now()
	record.UpdatedAt = now

	result, err := r.db.Exec(`
		UPDATE cards
		SET word = ?, pronunciation = ?, example = ?, meaning = ?, meaning_fa = ?, category = ?, source = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`,
		record.Word,
		record.Pronunciation,
		record.Example,
		record.Meaning,
		record.MeaningFa,
		record.Category,
		record.Source,
		now,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	return expectRows(result, record.ID)
}

// Delete soft-deletes a card by ID
func (r *CardRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE cards SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return expectRows(result, id)
}

// DeleteAll soft-deletes every live card and returns how many were removed.
func (r *CardRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec(`UPDATE cards SET deleted_at = ? WHERE deleted_at IS NULL`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete cards: %w", err)
	}
	return result.RowsAffected()
}

// List retrieves all cards matching the given criteria in import order, excluding soft-deleted cards.
//
// Supported criteria: "category" and "source" (string).
func (r *CardRepository) List(criteria map[string]any) ([]*models.CardRecord, error) {
	var (
		clauses = []string{"deleted_at IS NULL"}
		args    []any
	)

	if category, ok := criteria["category"].(string); ok && category != "" && category != models.CategoryAll {
		clauses = append(clauses, "category = ?")
		args = append(args, category)
	}
	if source, ok := criteria["source"].(string); ok && source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, source)
	}

	query := `SELECT ` + cardColumns + ` FROM cards WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY sequence ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var records []*models.CardRecord
	for rows.Next() {
		record, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Cards returns every live card in import order.
func (r *CardRepository) Cards() ([]models.Card, error) {
	records, err := r.List(nil)
	if err != nil {
		return nil, err
	}
	cards := make([]models.Card, len(records))
	for i, rec := range records {
		cards[i] = rec.Card
	}
	return cards, nil
}

// Count returns the number of live cards.
func (r *CardRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM cards WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row in cardColumns order from a [sql.Row] or [sql.Rows].
func (r *CardRepository) scan(row scanner) (*models.CardRecord, error) {
	var (
		record    models.CardRecord
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.Sequence,
		&record.Word,
		&record.Pronunciation,
		&record.Example,
		&record.Meaning,
		&record.MeaningFa,
		&record.Category,
		&record.Source,
		&record.CreatedAt,
		&record.UpdatedAt,
		&deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	if deletedAt.Valid {
		record.DeletedAt = &deletedAt.Time
	}

	return &record, nil
}

func expectRows(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrCardNotFound, id)
	}
	return nil
}
