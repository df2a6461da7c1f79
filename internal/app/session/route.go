package session

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/sessions", handler.ListSessions)
	rg.POST("/sessions", handler.CreateSession)
	rg.PATCH("/sessions/:id", handler.RenameSession)
	rg.DELETE("/sessions/:id", handler.DeleteSession)
}
