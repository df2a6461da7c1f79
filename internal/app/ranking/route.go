package ranking

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/sessions/:id/ranking", handler.GetSessionRanking)
}
