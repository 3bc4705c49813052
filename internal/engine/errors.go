package engine

import "errors"

// Estimate flow errors. The UI shows each one differently.
var (
	// ErrNoLocation means no address has been selected yet.
	ErrNoLocation = errors.New("please select a valid address from the list")

	// ErrTotalsNotFound means the service answered without yearly totals.
	ErrTotalsNotFound = errors.New("could not find solar data totals")
)
