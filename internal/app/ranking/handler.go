package ranking

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetSessionRanking(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func (h *handler) GetSessionRanking(c *gin.Context) {
	entries, err := h.service.SessionRanking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute ranking"})
		return
	}
	if entries == nil {
		entries = []*Entry{}
	}
	c.JSON(http.StatusOK, RankingResponse{Ranking: entries})
}
