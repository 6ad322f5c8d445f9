package engine

import "errors"

// Sentinel errors. Call sites wrap them with context, so compare with errors.Is.
var (
	// ErrInvalidConfiguration is returned by NewGame for bad rules.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrIllegalAction is returned by ApplyAction for any action that is not in
	// the current legal set, including actions after the game is over.
	ErrIllegalAction = errors.New("illegal action")

	ErrColorNotPresent    = errors.New("color not present")
	ErrColorConflict      = errors.New("row holds a different color")
	ErrRowFull            = errors.New("row is full")
	ErrColorAlreadyStaged = errors.New("color is already staged in another row")
	ErrColorAlreadyOnWall = errors.New("color is already on the wall row")

	// ErrInvariantViolation means wall-tiling found no column for a complete
	// row, or the tile source yielded a non-color. Neither can happen while
	// the board invariants and the TileSource contract hold.
	ErrInvariantViolation = errors.New("invariant violation")
)
