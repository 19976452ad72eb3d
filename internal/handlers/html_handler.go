package handlers

import (
	"net/http"

	"photochat/internal/models"
	"photochat/internal/msgs"

	"github.com/gin-gonic/gin"
)

type HtmlHandler struct {
	deviceID string
}

// NewHtmlHandler binds the demo page to the device identity resolved at
// startup. An empty deviceID means the identity store failed; chat features are
// blocked until the next start.
func NewHtmlHandler(deviceID string) *HtmlHandler {
	return &HtmlHandler{deviceID: deviceID}
}

func (hh *HtmlHandler) Index(ctx *gin.Context) {
	if hh.deviceID == "" {
		ctx.HTML(http.StatusServiceUnavailable, "unavailable.html", gin.H{})
		return
	}
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"DeviceID": hh.deviceID,
	})
}

func (hh *HtmlHandler) NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
	})
}
