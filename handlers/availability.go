package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// ScheduleHandler serves availability resolution.
type ScheduleHandler struct {
	Engine scheduling.Engine
	Cache  *redis.Client
	Logger *zap.Logger
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(engine scheduling.Engine, cache *redis.Client, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine, Cache: cache, Logger: logger}
}

// GetAvailabilityHandler resolves the bookable buckets for one provider/day.
// GET /api/availability/:providerId/:date?duration=30&excludeAppointmentId=...
func (h *ScheduleHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	date := c.Param("date")
	exclude := c.Query("excludeAppointmentId")

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "duration must be a positive number of minutes")
			return
		}
		duration = d
	}

	// Cached snapshots are only served for plain queries; an exclude rewrite
	// is caller-specific and must not land in the shared cache.
	cacheable := exclude == ""
	ctx := c.Request.Context()
	if cacheable {
		if cached := h.cachedAvailability(ctx, providerID, date); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	availability, err := h.Engine.ResolveAvailability(ctx, providerID, date, duration, exclude)
	if err != nil {
		status, msg := scheduleErrorStatus(err)
		utils.JSONError(c, status, msg, err.Error())
		return
	}

	if !availability.Grounded {
		h.Logger.Warn("serving ungrounded availability",
			zap.String("providerID", providerID), zap.String("date", date))
	}
	if cacheable && availability.Grounded {
		h.cacheAvailability(ctx, availability)
	}
	c.JSON(http.StatusOK, availability)
}

func (h *ScheduleHandler) cachedAvailability(ctx context.Context, providerID, date string) *models.Availability {
	if h.Cache == nil {
		return nil
	}
	raw, err := h.Cache.Get(ctx, utils.AvailabilityCacheKey(providerID, date)).Result()
	if err != nil {
		return nil
	}
	var availability models.Availability
	if err := json.Unmarshal([]byte(raw), &availability); err != nil {
		return nil
	}
	return &availability
}

func (h *ScheduleHandler) cacheAvailability(ctx context.Context, availability *models.Availability) {
	if h.Cache == nil {
		return
	}
	data, err := json.Marshal(availability)
	if err != nil {
		return
	}
	key := utils.AvailabilityCacheKey(availability.ProviderID, availability.Date)
	if err := h.Cache.Set(ctx, key, data, utils.AvailabilityCacheTTL).Err(); err != nil {
		h.Logger.Sugar().Warnf("failed to cache availability for %s: %v", key, err)
	}
}
