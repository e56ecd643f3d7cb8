package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file format, tokeniser or unit kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// Corpus Errors.

	// ErrInvalidCorpus indicates the corpus is structurally invalid.
	// No position semantics can be trusted, so the run is aborted
	// before evidence collection begins.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrDuplicatePosition indicates two units share a global position.
	ErrDuplicatePosition = errors.New("duplicate global position")

	// Configuration Errors.

	// ErrInvalidRules indicates the rule configuration failed validation.
	ErrInvalidRules = errors.New("invalid rule configuration")

	// Gate Errors.

	// ErrAvailabilityFrozen indicates a frozen availability structure was
	// asked to sweep a different corpus version.
	ErrAvailabilityFrozen = errors.New("availability already frozen")

	// ErrAvailabilityNotFrozen indicates the availability structure was
	// queried before its sweep completed.
	ErrAvailabilityNotFrozen = errors.New("availability not frozen")
)
