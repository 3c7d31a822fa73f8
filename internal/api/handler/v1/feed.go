package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StockFeed interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type FeedHandler struct {
	feed StockFeed
}

func NewFeedHandler(feed StockFeed) *FeedHandler {
	return &FeedHandler{
		feed: feed,
	}
}

// HandleFeed godoc
// @Summary      Live stock updates
// @Description  Upgrades to a websocket that receives {"type":"stock_update","data":{...}} messages.
// @Tags         stock
// @Success      101
// @Router       /feed [get]
func (h *FeedHandler) HandleFeed(ctx *gin.Context) {
	// The upgrader has already written the HTTP error when this fails.
	if err := h.feed.ServeWS(ctx.Writer, ctx.Request); err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
	}
}
