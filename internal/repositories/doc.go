// Package repositories implements SQLite persistence for the vocabulary catalog.
//
// [CardRepository] stores imported cards with soft deletes via deleted_at timestamps and excludes deleted records from
// queries by default. Sequence numbers give cards a stable import order independent of their UUIDs; the
// [NextSequence] function atomically increments the counter in the cards_sequence table.
//
// The catalog is a vocabulary source only. Study sessions never write to it.
package repositories
