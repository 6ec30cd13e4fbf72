package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"clinicdesk/middleware"
	"clinicdesk/services/leave"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// LeaveHandler manages provider leave periods.
type LeaveHandler struct {
	Service leave.LeaveService
	Cache   *redis.Client
	Logger  *zap.Logger
}

// NewLeaveHandler constructs a LeaveHandler.
func NewLeaveHandler(service leave.LeaveService, cache *redis.Client, logger *zap.Logger) *LeaveHandler {
	return &LeaveHandler{Service: service, Cache: cache, Logger: logger}
}

// CreateLeaveRequest records an approved absence over an inclusive range.
type CreateLeaveRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	DateFrom   string `json:"dateFrom" binding:"required"`
	DateTo     string `json:"dateTo" binding:"required"`
	Reason     string `json:"reason"`
}

// CreateLeaveHandler records the leave and blocks its slot range.
// POST /api/leaves
func (h *LeaveHandler) CreateLeaveHandler(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	outcome, err := h.Service.Create(ctx, leave.CreateLeaveRequest{
		ProviderID: req.ProviderID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Reason:     req.Reason,
		Actor:      middleware.ActingStaff(c),
	})
	if err != nil {
		status, msg := scheduleErrorStatus(err)
		utils.JSONError(c, status, msg, err.Error())
		return
	}

	h.invalidateRange(c, req.ProviderID, req.DateFrom, req.DateTo)
	c.JSON(http.StatusCreated, outcome)
}

// RemoveLeaveHandler deletes the period and frees the slots it blocked.
// DELETE /api/leaves/:id
func (h *LeaveHandler) RemoveLeaveHandler(c *gin.Context) {
	leaveID := c.Param("id")
	period, unblocked, err := h.Service.Remove(c.Request.Context(), leaveID, middleware.ActingStaff(c))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Leave period not found", leaveID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to remove leave", err.Error())
		return
	}

	h.invalidateRange(c, period.ProviderID, period.DateFrom, period.DateTo)
	c.JSON(http.StatusOK, gin.H{"leaveId": leaveID, "unblocked": unblocked})
}

// ListLeavesHandler returns every leave period for one provider.
// GET /api/providers/:id/leaves
func (h *LeaveHandler) ListLeavesHandler(c *gin.Context) {
	providerID := c.Param("id")
	periods, err := h.Service.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list leave periods", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "leaves": periods})
}

func (h *LeaveHandler) invalidateRange(c *gin.Context, providerID, dateFrom, dateTo string) {
	days, err := scheduling.DaysInRange(dateFrom, dateTo)
	if err != nil {
		return
	}
	utils.InvalidateAvailability(c.Request.Context(), h.Cache, providerID, days...)
}
