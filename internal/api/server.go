package api

import (
	"chatify/internal/config"
	s "chatify/internal/storage"
	ws "chatify/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Serve wires storage, the realtime hub and the HTTP surface together and
// blocks serving requests.
func Serve(cfg *config.Config) error {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	db, err := s.Connect(cfg.DBPath)
	if err != nil {
		return err
	}

	hub := ws.NewHub()

	router := NewRouter(db, hub, cfg)
	router.RegisterRoutes(r)

	r.Static("/uploads", cfg.UploadDir)

	return r.Run(cfg.Port)
}
