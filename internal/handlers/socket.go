// internal/handlers/socket.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/websocket"

	"monopoly-bank-backend/internal/game"
	"monopoly-bank-backend/internal/hub"
	"monopoly-bank-backend/internal/models"
)

// Client events accepted by the socket dispatch loop.
const (
	evJoin        = "join"
	evLeave       = "leave"
	evMessage     = "message"
	evSetRoomData = "setRoomData"
	evJoinGame    = "joinGame"
	evStartGame   = "startGame"
	evPay         = "pay"
	evBankRequest = "requestFromBank"
	evBankRespond = "respondToBankRequest"
)

type SocketHandler struct {
	registry *game.Registry
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewSocketHandler(registry *game.Registry, h *hub.Hub, allowedOrigin string) *SocketHandler {
	return &SocketHandler{
		registry: registry,
		hub:      h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// session is what one connection has told us about itself. roomID/userID are
// set by a successful join and cleared by leave.
type session struct {
	client *hub.Client
	roomID string
	userID string
}

// Serve upgrades the request and runs the read loop until the peer goes away.
func (h *SocketHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s := &session{client: hub.NewClient(conn)}
	defer h.drop(s)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.sendError(s, game.ErrInvalidPayload)
			continue
		}
		h.dispatch(s, env)
	}
}

// drop runs on disconnect: membership bookkeeping only, no room mutation.
func (h *SocketHandler) drop(s *session) {
	if s.roomID == "" {
		return
	}
	h.hub.Unsubscribe(s.roomID, s.userID, s.client)
	h.hub.BroadcastRoom(s.roomID, models.EventUserLeft,
		fmt.Sprintf("User %s left the room", s.userID))
}

func (h *SocketHandler) dispatch(s *session, env models.Envelope) {
	var err error
	switch env.Event {
	case evJoin:
		err = h.handleJoin(s, env.Data)
	case evLeave:
		err = h.handleLeave(s, env.Data)
	case evMessage:
		err = h.handleMessage(s, env.Data)
	case evSetRoomData:
		err = h.handleSetRoomData(s, env.Data)
	case evJoinGame:
		err = h.handleJoinGame(s, env.Data)
	case evStartGame:
		err = h.handleStartGame(s, env.Data)
	case evPay:
		err = h.handlePay(s, env.Data)
	case evBankRequest:
		err = h.handleBankRequest(s, env.Data)
	case evBankRespond:
		err = h.handleBankRespond(s, env.Data)
	default:
		err = game.ErrInvalidPayload
	}
	if err != nil {
		h.sendError(s, err)
	}
}

// sendError goes to the originating client only, never room-wide.
func (h *SocketHandler) sendError(s *session, err error) {
	notice := models.ErrorNotice{Code: game.Code(err), Message: err.Error()}
	if sendErr := s.client.Send(models.EventError, notice); sendErr != nil {
		log.Printf("error delivery failed: %v", sendErr)
	}
}

// bind unmarshals an event payload and runs the same validator that backs
// gin's binding tags. Any failure is an invalid payload.
func bind(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return game.ErrInvalidPayload
	}
	if err := json.Unmarshal(data, v); err != nil {
		return game.ErrInvalidPayload
	}
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return game.ErrInvalidPayload
	}
	return nil
}

func (h *SocketHandler) handleJoin(s *session, data json.RawMessage) error {
	var p models.JoinPayload
	if err := bind(data, &p); err != nil {
		return err
	}
	snap, err := h.registry.Snapshot(p.RoomID)
	if err != nil {
		return err
	}

	// Moving to another room implicitly leaves the previous one.
	if s.roomID != "" && s.roomID != p.RoomID {
		h.drop(s)
	}

	// Announce before subscribing so the joiner does not hear its own entry.
	h.hub.BroadcastRoom(p.RoomID, models.EventUserJoined,
		fmt.Sprintf("User %s joined the room", p.UserID))

	s.roomID = p.RoomID
	s.userID = p.UserID
	h.hub.Subscribe(p.RoomID, p.UserID, s.client)

	if err := s.client.Send(models.EventJoinSuccess, fmt.Sprintf("Joined room: %s", p.RoomID)); err != nil {
		log.Printf("join_success delivery failed: %v", err)
	}
	if err := s.client.Send(models.EventNewRoomData, snap); err != nil {
		log.Printf("room snapshot delivery failed: %v", err)
	}
	return nil
}

func (h *SocketHandler) handleLeave(s *session, data json.RawMessage) error {
	var p models.LeavePayload
	if err := bind(data, &p); err != nil {
		return err
	}
	if !h.registry.Exists(p.RoomID) {
		return game.ErrRoomNotFound
	}
	h.hub.Unsubscribe(p.RoomID, s.userID, s.client)
	if err := s.client.Send(models.EventLeaveSuccess, fmt.Sprintf("Left room: %s", p.RoomID)); err != nil {
		log.Printf("leave_success delivery failed: %v", err)
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventUserLeft,
		fmt.Sprintf("User %s left the room", s.userID))
	if s.roomID == p.RoomID {
		s.roomID = ""
		s.userID = ""
	}
	return nil
}

func (h *SocketHandler) handleMessage(s *session, data json.RawMessage) error {
	var p models.ChatPayload
	if err := bind(data, &p); err != nil {
		return err
	}
	if !h.registry.Exists(p.RoomID) {
		return game.ErrRoomNotFound
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventMessage, models.ChatMessage{
		User:    s.userID,
		Message: p.Message,
	})
	return nil
}

func (h *SocketHandler) handleSetRoomData(s *session, data json.RawMessage) error {
	var p models.ConfigurePayload
	if err := bind(data, &p); err != nil {
		return err
	}
	snap, err := h.registry.Configure(p.RoomID, p.StartingMoney, *p.PassGoMoney)
	if err != nil {
		return err
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventRoomData, snap)
	return nil
}

func (h *SocketHandler) handleJoinGame(s *session, data json.RawMessage) error {
	var p models.JoinGamePayload
	if err := bind(data, &p); err != nil {
		return err
	}
	snap, err := h.registry.JoinGame(p.RoomID, p.UserID, p.PlayerName)
	if err != nil {
		return err
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventRoomData, snap)
	return nil
}

func (h *SocketHandler) handleStartGame(s *session, data json.RawMessage) error {
	var p models.StartGamePayload
	if err := bind(data, &p); err != nil {
		return err
	}
	snap, err := h.registry.Start(p.RoomID)
	if err != nil {
		return err
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventRoomData, snap)
	return nil
}

func (h *SocketHandler) handlePay(s *session, data json.RawMessage) error {
	var p models.PayPayload
	if err := bind(data, &p); err != nil {
		return err
	}
	res, err := h.registry.Pay(p.RoomID, p.FromID, p.ToID, p.Amount)
	if err != nil {
		return err
	}
	if res.Received != nil {
		h.hub.SendToUser(p.RoomID, p.ToID, models.EventPaymentReceived, res.Received)
	}
	h.hub.SendToUser(p.RoomID, p.FromID, models.EventPaymentSent, res.Sent)
	h.hub.BroadcastRoom(p.RoomID, models.EventRoomData, res.Room)
	return nil
}

func (h *SocketHandler) handleBankRequest(s *session, data json.RawMessage) error {
	var p models.BankRequestPayload
	if err := bind(data, &p); err != nil {
		return err
	}
	res, err := h.registry.RequestFromBank(p.RoomID, p.PlayerID, p.Amount)
	if err != nil {
		return err
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventRoomData, res.Room)
	h.hub.BroadcastRoom(p.RoomID, models.EventNewBankRequest, res.Request)
	return nil
}

func (h *SocketHandler) handleBankRespond(s *session, data json.RawMessage) error {
	var p models.VotePayload
	if err := bind(data, &p); err != nil {
		return err
	}
	res, err := h.registry.RespondToBankRequest(p.RoomID, p.RequestID, p.PlayerID, *p.Approved)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case game.VoteApproved:
		h.hub.BroadcastRoom(p.RoomID, models.EventBankRequestApproved, res.Request)
	case game.VoteRejected:
		h.hub.BroadcastRoom(p.RoomID, models.EventBankRequestRejected, res.Request)
	default:
		h.hub.BroadcastRoom(p.RoomID, models.EventBankRequestUpdated, res.Request)
	}
	h.hub.BroadcastRoom(p.RoomID, models.EventRoomData, res.Room)
	return nil
}
