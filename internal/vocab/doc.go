// Package vocab loads the vocabulary list a study session runs on.
//
// A [Source] yields cards from one place:
//   - [FileSource] : a local .json or .toml file
//   - [HTTPSource] : a single GET of a JSON document
//   - [CatalogSource] : the SQLite catalog filled by the import command
//
// [Open] picks the source from a source string and [LoadDeck] turns its cards into a validated [models.Deck].
// Loading happens once; a failure is returned to the caller and never retried.
package vocab
