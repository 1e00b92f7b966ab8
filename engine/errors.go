package engine

import (
	"errors"
	"fmt"
)

// ErrMissingComponent signals a live entity lacking an expected component.
// It marks an engine or layout bug, never a user-triggerable condition;
// lookups that hit it fail the whole call without mutating the World.
var ErrMissingComponent = errors.New("engine: missing component")

// ErrSeed signals a malformed seed at the configuration boundary. The engine
// itself accepts any uint64; only external string input can produce this.
var ErrSeed = errors.New("engine: invalid seed")

// IllegalMoveReason classifies why a proposed move was rejected.
type IllegalMoveReason uint8

const (
	NotTopOfPile IllegalMoveReason = iota + 1
	WrongRank
	WrongColor
	DestinationFull
	StockEmpty
	StockNotEmpty
	RecycleLimitExceeded
	UnknownMove
)

var reasonNames = map[IllegalMoveReason]string{
	NotTopOfPile:         "not top of pile",
	WrongRank:            "wrong rank",
	WrongColor:           "wrong color",
	DestinationFull:      "destination full",
	StockEmpty:           "stock empty",
	StockNotEmpty:        "stock not empty",
	RecycleLimitExceeded: "recycle limit exceeded",
	UnknownMove:          "unknown move",
}

// String returns the human-readable form of the reason.
func (r IllegalMoveReason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("illegal move reason %d", uint8(r))
}

// IllegalMoveError is the expected, recoverable rejection of a proposed move.
// The World is never mutated when one is returned.
type IllegalMoveError struct {
	Reason IllegalMoveReason
	Move   Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

// illegal builds an IllegalMoveError for the given move.
func illegal(m Move, reason IllegalMoveReason) *IllegalMoveError {
	return &IllegalMoveError{Reason: reason, Move: m}
}

// IsIllegalMove reports whether err is a move rejection, and if so its reason.
func IsIllegalMove(err error) (IllegalMoveReason, bool) {
	var ill *IllegalMoveError
	if errors.As(err, &ill) {
		return ill.Reason, true
	}
	return 0, false
}
