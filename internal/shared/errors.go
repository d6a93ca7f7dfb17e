package shared

import "errors"

var (
	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// Vocabulary errors
	ErrLoadFailed    = errors.New("vocabulary load failed")
	ErrEmptyDeck     = errors.New("vocabulary is empty")
	ErrInvalidCard   = errors.New("invalid card")
	ErrUnknownSource = errors.New("unknown vocabulary source")
	ErrCardNotFound  = errors.New("card not found")

	// Input validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidFlag     = errors.New("invalid flag value")
)
