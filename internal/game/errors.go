// internal/game/errors.go
//
// Rejection classes and application errors.
//
// Every rejected action wraps exactly one class sentinel, so callers can
// classify with errors.Is (see Classify). Rejections never mutate state.
// ErrUnknownPlayer and the lobby errors are application-level failures.

package game

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	ErrUnknownPlayer = errors.New("player not found")
	ErrRoomFull      = errors.New("room is full")
	ErrNotInLobby    = errors.New("game already started")
	ErrUnknownAction = errors.New("unknown action")
)

// Rejection classes.
var (
	ErrStaleState            = errors.New("stale state")
	ErrIllegalPhase          = errors.New("illegal phase")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrNotYourTurn           = errors.New("not your turn")
)

// Specific rejections.
var (
	ErrTooFewPlayers   = fmt.Errorf("%w: not enough players to start", ErrIllegalPhase)
	ErrAlreadyRolled   = fmt.Errorf("%w: dice already rolled this turn", ErrIllegalPhase)
	ErrWrongSetupStep  = fmt.Errorf("%w: other placement expected", ErrIllegalPhase)
	ErrNoPiecesLeft    = fmt.Errorf("%w: no pieces left", ErrInsufficientResources)
	ErrDeckEmpty       = fmt.Errorf("%w: development deck is empty", ErrInsufficientResources)
	ErrBadPayload      = fmt.Errorf("%w: malformed payload", ErrInvalidTarget)
	ErrBadBankRatio    = fmt.Errorf("%w: bank trades are 4:1 on one pair", ErrInvalidTarget)
	ErrCardNotPlayable = fmt.Errorf("%w: card cannot be played now", ErrInvalidTarget)
	ErrEmptyMessage    = fmt.Errorf("%w: empty message", ErrInvalidTarget)
	ErrOwnOffer        = fmt.Errorf("%w: own offer", ErrInvalidTarget)
	ErrNotAddressee    = fmt.Errorf("%w: offer addressed to another player", ErrInvalidTarget)
	ErrAlreadyDeclined = fmt.Errorf("%w: offer already declined", ErrInvalidTarget)
	ErrNoOffer         = fmt.Errorf("%w: no matching trade offer", ErrStaleState)
)

// Code is the reason reported privately to the acting participant.
type Code string

const (
	CodeStaleState            Code = "stale_state"
	CodeIllegalPhase          Code = "illegal_phase"
	CodeInsufficientResources Code = "insufficient_resources"
	CodeInvalidTarget         Code = "invalid_target"
	CodeNotYourTurn           Code = "not_your_turn"
	CodeUnknownAction         Code = "unknown_action"
	CodeUnknownPlayer         Code = "unknown_player"
	CodeRejected              Code = "rejected"
)

// Classify maps an error returned by Apply to its Code.
func Classify(err error) Code {
	switch {
	case errors.Is(err, ErrStaleState):
		return CodeStaleState
	case errors.Is(err, ErrIllegalPhase):
		return CodeIllegalPhase
	case errors.Is(err, ErrInsufficientResources):
		return CodeInsufficientResources
	case errors.Is(err, ErrInvalidTarget):
		return CodeInvalidTarget
	case errors.Is(err, ErrNotYourTurn):
		return CodeNotYourTurn
	case errors.Is(err, ErrUnknownAction):
		return CodeUnknownAction
	case errors.Is(err, ErrUnknownPlayer):
		return CodeUnknownPlayer
	}
	return CodeRejected
}

// IsRejection reports whether err is an ordinary rule rejection (as opposed
// to an application error such as an unknown player).
func IsRejection(err error) bool {
	switch Classify(err) {
	case CodeUnknownPlayer, CodeRejected:
		return false
	}
	return true
}

// rejectBoard wraps a board placement error into the invalid-target class.
func rejectBoard(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
}
