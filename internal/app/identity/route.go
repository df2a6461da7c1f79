package identity

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/identity", handler.Register)
	rg.GET("/identity", handler.GetProfile)
}
