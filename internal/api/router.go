package api

import (
	a "chatify/internal/auth"
	"chatify/internal/config"
	mw "chatify/internal/middleware"
	ws "chatify/internal/websocket"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Router struct {
	ah     *AuthHandlers
	mh     *MessageHandlers
	uh     *UserHandlers
	wh     *WebSocketHandler
	tokens *a.Tokens
}

func NewRouter(db *gorm.DB, hub *ws.Hub, cfg *config.Config) *Router {
	tokens := a.NewTokens(cfg.AppSecret)
	return &Router{
		ah:     NewHandlers(db, tokens),
		mh:     NewMessageHandlers(db, cfg.UploadDir),
		uh:     NewUserHandlers(db),
		wh:     NewWebSocketHandler(hub, cfg.ClientOrigin),
		tokens: tokens,
	}
}

func (r *Router) RegisterRoutes(router *gin.Engine) {
	authLimiter := mw.NewIPRateLimiter(mw.StrictRateLimit)
	apiLimiter := mw.NewIPRateLimiter(mw.StandardRateLimit)

	{
		unprotected := router.Group("/")
		unprotected.GET("/hc", HealthCheckHandler)
		unprotected.POST("/register", mw.RateLimitMiddleware(authLimiter), r.ah.RegisterHandler)
		unprotected.POST("/login", mw.RateLimitMiddleware(authLimiter), r.ah.LoginHandler)

		// identity on the websocket handshake is an optional query
		// parameter, not a session requirement
		unprotected.GET("/ws", r.wh.HandleWebSocket)
	}

	{
		protected := router.Group("/api")
		protected.Use(mw.RateLimitMiddleware(apiLimiter))
		protected.Use(r.tokens.RequireAuth())
		protected.POST("/logout", r.ah.LogoutHandler)
		protected.POST("/refresh_token", r.ah.RefreshTokenHandler)

		protected.GET("/messages/users", r.mh.GetSidebarUsersHandler)
		protected.GET("/messages/:userId", r.mh.GetConversationHandler)
		protected.POST("/messages/send/:userId", r.mh.SendMessageHandler)

		protected.GET("/users/:userId", r.uh.GetUserHandler)
		protected.PUT("/users/me", r.uh.UpdateProfileHandler)

		protected.GET("/ws/info", r.wh.GetConnectionInfo)
	}
}

func HealthCheckHandler(c *gin.Context) {
	c.String(200, "Running")
}
