// Package models defines the vocabulary entities shared by the loader, the catalog and the study session.
//
//   - [Card] : one vocabulary entry with front/back content and a category tag
//   - [Deck] : the ordered, read-only set of cards loaded at startup
//   - [Labels] : display names for category identifiers, per UI language
//
// Cards are values. Nothing in the study session mutates a card after load.
package models
