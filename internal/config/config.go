// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                 string
	AllowedOrigin        string
	DefaultStartingMoney int
	DefaultPassGoMoney   int
	RoomSweepInterval    int // seconds
	RoomTTLMinutes       int // 0 disables the sweeper
}

func LoadConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return &Config{
		Port:                 port,
		AllowedOrigin:        allowedOrigin,
		DefaultStartingMoney: envInt("DEFAULT_STARTING_MONEY", 1500),
		DefaultPassGoMoney:   envInt("DEFAULT_PASS_GO_MONEY", 200),
		RoomSweepInterval:    envInt("ROOM_SWEEP_INTERVAL", 300),
		RoomTTLMinutes:       envInt("ROOM_TTL_MINUTES", 0),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
