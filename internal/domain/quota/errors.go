package quota

import "errors"

var (
	ErrQuotaNotFound = errors.New("quota not found")

	// ErrInvalidDelta means a guarded ledger update matched no row: either
	// the row is missing or the delta would drive a balance negative. It
	// indicates a bypass of submission-time checks and is logged as a defect.
	ErrInvalidDelta = errors.New("quota delta rejected")
)
