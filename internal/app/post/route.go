package post

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/sessions/:id/posts", handler.GetSessionPosts)
	rg.POST("/sessions/:id/posts", handler.CreatePost)
	rg.POST("/sessions/:id/posts/swap", handler.SwapPositions)
	rg.GET("/sessions/:id/stats", handler.GetSessionStats)

	rg.GET("/posts", handler.GetAllPosts)
	rg.PATCH("/posts/:id", handler.EditPost)
	rg.DELETE("/posts/:id", handler.DeletePost)
	rg.POST("/posts/:id/reactions/:reaction_id", handler.ToggleReaction)
	rg.POST("/posts/:id/comments", handler.AddComment)
	rg.POST("/posts/:id/comments/:comment_id/replies", handler.AddReply)
	rg.PATCH("/posts/:id/comments/:comment_id", handler.EditComment)
	rg.DELETE("/posts/:id/comments/:comment_id", handler.DeleteComment)
	rg.POST("/posts/:id/comments/:comment_id/toggle", handler.ToggleReplies)
}
