// internal/models/messages.go
package models

import "encoding/json"

// Envelope is the framing for every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound server events.
const (
	EventError               = "error"
	EventJoinSuccess         = "join_success"
	EventLeaveSuccess        = "leave_success"
	EventUserJoined          = "user_joined"
	EventUserLeft            = "user_left"
	EventMessage             = "message"
	EventRoomData            = "roomData"
	EventNewRoomData         = "newRoomData"
	EventPaymentSent         = "paymentSent"
	EventPaymentReceived     = "paymentReceived"
	EventNewBankRequest      = "newBankRequest"
	EventBankRequestUpdated  = "bankRequestUpdated"
	EventBankRequestApproved = "bankRequestApproved"
	EventBankRequestRejected = "bankRequestRejected"
)

type JoinPayload struct {
	RoomID string `json:"roomId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

type LeavePayload struct {
	RoomID string `json:"roomId" binding:"required"`
}

type ChatPayload struct {
	RoomID  string `json:"room" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// PassGoMoney is a pointer so that an explicit 0 (no pass-go bonus) passes
// the required check while a missing field still fails validation.
type ConfigurePayload struct {
	RoomID        string `json:"room" binding:"required"`
	StartingMoney int    `json:"startingMoney" binding:"required,min=1"`
	PassGoMoney   *int   `json:"passGoMoney" binding:"required,min=0"`
}

type JoinGamePayload struct {
	RoomID     string `json:"room" binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
	UserID     string `json:"userId" binding:"required"`
}

type StartGamePayload struct {
	RoomID string `json:"room" binding:"required"`
}

type PayPayload struct {
	RoomID string `json:"room" binding:"required"`
	FromID string `json:"from" binding:"required"`
	ToID   string `json:"to" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1"`
}

type BankRequestPayload struct {
	RoomID   string `json:"room" binding:"required"`
	PlayerID string `json:"player_id" binding:"required"`
	Amount   int    `json:"amount" binding:"required,min=1"`
}

type VotePayload struct {
	RoomID    string `json:"room" binding:"required"`
	RequestID string `json:"request_id" binding:"required"`
	PlayerID  string `json:"player_id" binding:"required"`
	Approved  *bool  `json:"approved" binding:"required"`
}

// PaymentNotice is sent point-to-point to the payer and (for non-bank
// transfers) the payee.
type PaymentNotice struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int    `json:"amount"`
}

// ChatMessage is the room-wide chat broadcast.
type ChatMessage struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// ErrorNotice is delivered only to the client whose request failed.
type ErrorNotice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateRoomRequest is the REST body for POST /create_room.
type CreateRoomRequest struct {
	ID string `json:"id" binding:"required"`
}

// RoomStatusResponse mirrors the create/check room response shape.
type RoomStatusResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
