// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lazycatapps/downloadhub/internal/models"
	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/service"
)

// GateHandler handles download gate session requests.
type GateHandler struct {
	gateService service.GateService
	logger      logger.Logger
}

// NewGateHandler creates a new gate handler instance.
func NewGateHandler(gateService service.GateService, logger logger.Logger) *GateHandler {
	return &GateHandler{
		gateService: gateService,
		logger:      logger,
	}
}

// OpenSession handles POST /api/v1/download/:id/:part - Resolve a download and start its countdown.
func (h *GateHandler) OpenSession(c *gin.Context) {
	id := c.Param("id")

	part, err := validator.ParsePartNumber(c.Param("part"))
	if err != nil {
		respondError(c, h.logger, "Open download session", apperrors.InvalidInput(err))
		return
	}

	session, err := h.gateService.Open(id, part)
	if err != nil {
		respondError(c, h.logger, "Open download session", err)
		return
	}

	c.JSON(http.StatusCreated, session.Response())
}

// GetSession handles GET /api/v1/gate/:sid - Current countdown state.
func (h *GateHandler) GetSession(c *gin.Context) {
	session, err := h.gateService.Get(c.Param("sid"))
	if err != nil {
		respondError(c, h.logger, "Get download session", err)
		return
	}

	c.JSON(http.StatusOK, session.Response())
}

// StreamEvents handles GET /api/v1/gate/:sid/events - Stream countdown events via SSE.
// The stream ends after the hand-off. A client disconnecting before the
// countdown finishes cancels the session.
func (h *GateHandler) StreamEvents(c *gin.Context) {
	sid := c.Param("sid")

	session, err := h.gateService.Get(sid)
	if err != nil {
		respondError(c, h.logger, "Stream download session", err)
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := session.AddListener()
	defer session.RemoveListener(events)

	// Send the current state first; late subscribers still get the link
	snap := session.Snapshot()
	c.SSEvent(models.GateEventTick, models.GateEvent{Type: models.GateEventTick, Snapshot: snap})
	handedOff := false
	if snap.HandedOff {
		c.SSEvent(models.GateEventHandoff, models.GateEvent{
			Type:     models.GateEventHandoff,
			Snapshot: snap,
			Link:     session.Link(),
		})
		handedOff = true
	}
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			if !session.Snapshot().State.Terminal() {
				h.logger.Info("Client left download session %s before hand-off, cancelling", sid)
				if err := h.gateService.Cancel(sid); err != nil {
					h.logger.Debug("Cancel download session %s: %v", sid, err)
				}
			}
			return
		case event, ok := <-events:
			if !ok {
				// Session finished or stopped
				return
			}
			if event.Type == models.GateEventHandoff {
				if handedOff {
					continue
				}
				handedOff = true
			}
			c.SSEvent(event.Type, event)
			c.Writer.Flush()
		}
	}
}

// DownloadNow handles POST /api/v1/gate/:sid/now - Hand off immediately.
func (h *GateHandler) DownloadNow(c *gin.Context) {
	session, err := h.gateService.DownloadNow(c.Param("sid"))
	if err != nil {
		respondError(c, h.logger, "Download now", err)
		return
	}

	c.JSON(http.StatusOK, session.Response())
}

// CancelSession handles DELETE /api/v1/gate/:sid - Cancel a countdown.
func (h *GateHandler) CancelSession(c *gin.Context) {
	sid := c.Param("sid")

	if err := h.gateService.Cancel(sid); err != nil {
		respondError(c, h.logger, "Cancel download session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Download cancelled",
	})
}
