// cmd/main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"monopoly-bank-backend/internal/config"
	"monopoly-bank-backend/internal/game"
	"monopoly-bank-backend/internal/handlers"
	"monopoly-bank-backend/internal/hub"
	"monopoly-bank-backend/internal/workers"
)

func main() {
	cfg := config.LoadConfig()

	registry := game.NewRegistry(cfg.DefaultStartingMoney, cfg.DefaultPassGoMoney)
	h := hub.New()

	sweeper := workers.NewRoomSweeper(registry, h,
		time.Duration(cfg.RoomSweepInterval)*time.Second,
		time.Duration(cfg.RoomTTLMinutes)*time.Minute)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start room sweeper:", err)
	}
	defer sweeper.Stop()

	r := gin.Default()

	roomHandler := handlers.NewRoomHandler(registry)
	r.POST("/create_room", roomHandler.CreateRoom)
	r.GET("/check_room/:room_id", roomHandler.CheckRoom)
	r.GET("/health", roomHandler.Health)

	socketHandler := handlers.NewSocketHandler(registry, h, cfg.AllowedOrigin)
	r.GET("/ws", socketHandler.Serve)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
