package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"clinicdesk/middleware"
	"clinicdesk/services/clinicevent"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// EventHandler manages clinic-wide blackout events.
type EventHandler struct {
	Service clinicevent.EventService
	Cache   *redis.Client
	Logger  *zap.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(service clinicevent.EventService, cache *redis.Client, logger *zap.Logger) *EventHandler {
	return &EventHandler{Service: service, Cache: cache, Logger: logger}
}

// CreateEventRequest declares a draft blackout event.
type CreateEventRequest struct {
	Title    string `json:"title" binding:"required"`
	DateFrom string `json:"dateFrom" binding:"required"`
	DateTo   string `json:"dateTo" binding:"required"`
}

// CreateEventHandler records a draft event; nothing is blocked yet.
// POST /api/events
func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if _, err := scheduling.DaysInRange(req.DateFrom, req.DateTo); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	event, err := h.Service.Create(c.Request.Context(), clinicevent.CreateEventRequest{
		Title:    req.Title,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Actor:    middleware.ActingStaff(c),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create event", err.Error())
		return
	}
	c.JSON(http.StatusCreated, event)
}

// PublishEventHandler fans the block out to every active provider.
// POST /api/events/:id/publish
func (h *EventHandler) PublishEventHandler(c *gin.Context) {
	h.fanout(c, h.Service.Publish)
}

// UnpublishEventHandler reverses the fan-out, freeing only slots this event
// blocked.
// POST /api/events/:id/unpublish
func (h *EventHandler) UnpublishEventHandler(c *gin.Context) {
	h.fanout(c, h.Service.Unpublish)
}

// DeleteEventHandler soft-deletes the event, unblocking first if published.
// DELETE /api/events/:id
func (h *EventHandler) DeleteEventHandler(c *gin.Context) {
	h.fanout(c, h.Service.Delete)
}

// ListEventsHandler returns every non-deleted event.
// GET /api/events
func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	events, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list events", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

type fanoutOp func(ctx context.Context, eventID, actor string) (*clinicevent.FanoutResult, error)

func (h *EventHandler) fanout(c *gin.Context, op fanoutOp) {
	eventID := c.Param("id")
	ctx := c.Request.Context()

	res, err := op(ctx, eventID, middleware.ActingStaff(c))
	if err != nil {
		if errors.Is(err, clinicevent.ErrEventNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Event not found", eventID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Event operation failed", err.Error())
		return
	}

	// Fan-out touches every active provider's grid; drop the whole snapshot
	// cache rather than enumerating keys per provider.
	utils.InvalidateAllAvailability(ctx, h.Cache)

	status := http.StatusOK
	if len(res.Failures) > 0 {
		h.Logger.Warn("event fan-out completed with failures",
			zap.String("eventID", eventID), zap.Int("failures", len(res.Failures)))
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"eventId": eventID, "result": res})
}
