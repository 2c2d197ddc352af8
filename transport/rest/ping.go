package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type PingHandler struct {
	storage pinger
}

func NewPingHandler(storage pinger) *PingHandler {
	return &PingHandler{storage: storage}
}

// Ping answers "pong" while storage is reachable.
func (that *PingHandler) Ping(c *gin.Context) {
	if err := that.storage.Ping(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	c.String(http.StatusOK, "pong")
}
