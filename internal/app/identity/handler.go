package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Register(c *gin.Context)
	GetProfile(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// DeviceKey extracts the per-browser device key from the request. The
// header form is preferred; the query form exists for the websocket
// upgrade, where custom headers are awkward.
func DeviceKey(c *gin.Context) string {
	if key := c.GetHeader("X-Device-Key"); key != "" {
		return key
	}
	return c.Query("device_key")
}

func (h *handler) Register(c *gin.Context) {
	deviceKey := DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "device key is required"})
		return
	}

	participant, err := h.service.GetOrCreate(deviceKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, participant)
}

func (h *handler) GetProfile(c *gin.Context) {
	deviceKey := DeviceKey(c)
	if deviceKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "device key is required"})
		return
	}

	profile, err := h.service.Profile(deviceKey)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "participant not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
