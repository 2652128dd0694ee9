package engine

import "errors"

var (
	// ErrInvalidRiskInput is returned when position sizing has no defined
	// risk, e.g. the entry price equals the protective stop.
	ErrInvalidRiskInput = errors.New("invalid risk input")

	// ErrDuplicatePosition is returned when a symbol already has an open
	// trade or the concurrent-position ceiling is reached.
	ErrDuplicatePosition = errors.New("duplicate position")

	// ErrUnknownTrade is returned for operations on a nonexistent trade id.
	ErrUnknownTrade = errors.New("unknown trade")

	// ErrInvalidConfig is returned when a config update carries
	// out-of-range risk parameters. Values are rejected, never clamped.
	ErrInvalidConfig = errors.New("invalid config")
)
