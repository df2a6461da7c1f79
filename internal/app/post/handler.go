package post

import (
	"net/http"

	"reflectboard/internal/app/identity"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetSessionPosts(c *gin.Context)
	GetAllPosts(c *gin.Context)
	CreatePost(c *gin.Context)
	EditPost(c *gin.Context)
	DeletePost(c *gin.Context)
	ToggleReaction(c *gin.Context)
	AddComment(c *gin.Context)
	AddReply(c *gin.Context)
	EditComment(c *gin.Context)
	DeleteComment(c *gin.Context)
	ToggleReplies(c *gin.Context)
	SwapPositions(c *gin.Context)
	GetSessionStats(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func (h *handler) GetSessionPosts(c *gin.Context) {
	posts, err := h.service.GetPostsBySessionID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, PostListResponse{Posts: posts})
}

func (h *handler) GetAllPosts(c *gin.Context) {
	posts, err := h.service.GetAllPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, PostListResponse{Posts: posts})
}

func (h *handler) CreatePost(c *gin.Context) {
	deviceKey := identity.DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "device key is required"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), c.Param("id"), deviceKey, req.Category, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *handler) EditPost(c *gin.Context) {
	var req EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	post, err := h.service.EditPost(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) DeletePost(c *gin.Context) {
	if err := h.service.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) ToggleReaction(c *gin.Context) {
	deviceKey := identity.DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "device key is required"})
		return
	}

	post, err := h.service.ToggleReaction(c.Request.Context(), c.Param("id"), deviceKey, c.Param("reaction_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) AddComment(c *gin.Context) {
	deviceKey := identity.DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "device key is required"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	post, err := h.service.AddComment(c.Request.Context(), c.Param("id"), deviceKey, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *handler) AddReply(c *gin.Context) {
	deviceKey := identity.DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "device key is required"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	post, err := h.service.AddReply(c.Request.Context(), c.Param("id"), c.Param("comment_id"), deviceKey, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *handler) EditComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	post, err := h.service.EditComment(c.Request.Context(), c.Param("id"), c.Param("comment_id"), req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) DeleteComment(c *gin.Context) {
	post, err := h.service.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) ToggleReplies(c *gin.Context) {
	post, err := h.service.ToggleReplies(c.Request.Context(), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if post == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handler) SwapPositions(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.SwapPositions(c.Request.Context(), c.Param("id"), req.FromIndex, req.ToIndex); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetSessionStats(c *gin.Context) {
	stats, err := h.service.SessionStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
