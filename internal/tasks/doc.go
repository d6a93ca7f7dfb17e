// Package tasks runs long vocabulary operations with real-time progress reporting.
//
// # Import
//
// [ImportEngine.Import] loads one or more vocabulary sources and stores their cards in
// the SQLite catalog:
//   - remote sources are fetched by a small worker pool under a shared rate limiter
//   - every fetched card is upserted into the catalog by (word, category)
//   - a failed source is recorded in the result and does not stop the others
//
// With [ImportOpts.Replace] the live catalog is soft-deleted before anything is written.
//
// # Progress Reporting
//
// Operations report through a [ProgressUpdate] channel. Sends use select with default
// so a slow reader never stalls an import.
package tasks
