package models

import (
	"fmt"
	"time"
)

// CardRecord is a [Card] stored in the SQLite catalog.
type CardRecord struct {
	Card
	Sequence  int
	Source    string // where the card was imported from
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCardRecord wraps card for insertion into the catalog.
func NewCardRecord(card Card, source string) *CardRecord {
	now := time.Now()
	return &CardRecord{Card: card, Source: source, CreatedAt: now, UpdatedAt: now}
}

// Validate checks the wrapped card and the bookkeeping fields.
func (r *CardRecord) Validate() error {
	if err := r.Card.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("card %q: id is required", r.Word)
	}
	return nil
}

// IsDeleted reports whether the record was soft-deleted.
func (r *CardRecord) IsDeleted() bool { return r.DeletedAt != nil }
