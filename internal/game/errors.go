// internal/game/errors.go
package game

import "errors"

// Every operation validates before it mutates; on any of these errors the
// room is untouched and the error goes back to the originating client only.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomExists     = errors.New("room already exists")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownRequest = errors.New("unknown bank request")
	ErrGameStarted    = errors.New("game has already started")
	ErrNotConfigured  = errors.New("room is not configured")
	ErrAlreadyVoted   = errors.New("player has already voted on this request")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Code returns the stable wire code for an engine error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomExists):
		return "room_already_exists"
	case errors.Is(err, ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, ErrUnknownRequest):
		return "unknown_request"
	case errors.Is(err, ErrGameStarted):
		return "game_already_started"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "internal_error"
	}
}
