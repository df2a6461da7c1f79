package router

import (
	"reflectboard/internal/app/health"
	"reflectboard/internal/app/identity"
	"reflectboard/internal/app/post"
	"reflectboard/internal/app/ranking"
	"reflectboard/internal/app/session"
	"reflectboard/internal/gateways/websocket"
	"reflectboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(logger *zap.Logger) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{Engine: engine}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterIdentityRoutes(handler identity.Handler) {
	identity.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterSessionRoutes(handler session.Handler) {
	session.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterPostRoutes(handler post.Handler) {
	post.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterRankingRoutes(handler ranking.Handler) {
	ranking.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
