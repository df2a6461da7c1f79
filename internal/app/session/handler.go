package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListSessions(c *gin.Context)
	CreateSession(c *gin.Context)
	RenameSession(c *gin.Context)
	DeleteSession(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func (h *handler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, SessionListResponse{Sessions: sessions})
}

func (h *handler) CreateSession(c *gin.Context) {
	session, err := h.service.CreateSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *handler) RenameSession(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.service.RenameSession(c.Param("id"), req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *handler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
