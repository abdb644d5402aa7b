// internal/handlers/room.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"monopoly-bank-backend/internal/game"
	"monopoly-bank-backend/internal/models"
)

type RoomHandler struct {
	registry *game.Registry
}

func NewRoomHandler(registry *game.Registry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// CreateRoom registers a new room under a client-chosen id.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room id is required"})
		return
	}

	if err := h.registry.Create(req.ID); err != nil {
		if errors.Is(err, game.ErrRoomExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusOK, models.RoomStatusResponse{
		Available: true,
		Message:   "Room is Created",
	})
}

// CheckRoom reports whether a room id is taken. Available=true means the id
// is free to create.
func (h *RoomHandler) CheckRoom(c *gin.Context) {
	roomID := c.Param("room_id")
	if h.registry.Exists(roomID) {
		c.JSON(http.StatusOK, models.RoomStatusResponse{
			Available: false,
			Message:   "Room exists",
		})
		return
	}
	c.JSON(http.StatusOK, models.RoomStatusResponse{
		Available: true,
		Message:   "Room is available",
	})
}

// Health is a liveness probe.
func (h *RoomHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
