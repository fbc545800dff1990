package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrReadRoster    = errors.New("read roster failed")
	ErrParseRoster   = errors.New("parse roster failed")
	ErrInvalidRoster = errors.New("invalid roster")
)
