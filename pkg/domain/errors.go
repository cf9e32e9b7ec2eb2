package domain

import "errors"

// Configuration errors, raised at registration/build time by pkg/dsl.
// Execution and search never raise these: Execute returns structured
// results and FindPathToAll signals absence with a nil path.
var (
	// ErrDuplicateID is returned when a definition document declares the
	// same state, group, or transition ID twice.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrGroupConflict is returned when a state is inserted into a second
	// group.
	ErrGroupConflict = errors.New("state already belongs to another group")

	// ErrUnknownReference is returned when a transition or group refers to
	// a state or group that was never registered.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrInvalidCost is returned for negative transition costs.
	ErrInvalidCost = errors.New("transition cost must be non-negative")
)
