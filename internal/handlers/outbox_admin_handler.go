package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bkalafat/barberly/internal/domain/outbox"
	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/httpresp"
)

// OutboxAdminHandler exposes delivery state for operators: how many
// entries are waiting and which ones exhausted their retries.
type OutboxAdminHandler struct {
	outbox outbox.Repository
}

func NewOutboxAdminHandler(repo outbox.Repository) *OutboxAdminHandler {
	return &OutboxAdminHandler{outbox: repo}
}

func (h *OutboxAdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	pending, err := h.outbox.CountPending(ctx)
	if err != nil {
		httperr.Internal(c, "outbox_stats_failed", "Could not load outbox stats.")
		return
	}

	failed, err := h.outbox.ListFailed(ctx, 20)
	if err != nil {
		httperr.Internal(c, "outbox_stats_failed", "Could not load outbox stats.")
		return
	}

	httpresp.OK(c, gin.H{
		"pending_count": pending,
		"recent_failed": failed,
	})
}
