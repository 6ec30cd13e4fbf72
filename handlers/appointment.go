package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/middleware"
	"clinicdesk/models"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// AppointmentHandler runs the appointment-creation workflow: book the slot,
// persist the record, compensate on failure.
type AppointmentHandler struct {
	Engine       scheduling.Engine
	Appointments appointmentRepo.AppointmentRepository
	Cache        *redis.Client
	Logger       *zap.Logger
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(engine scheduling.Engine, appointments appointmentRepo.AppointmentRepository, cache *redis.Client, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Engine: engine, Appointments: appointments, Cache: cache, Logger: logger}
}

// CreateAppointmentRequest is the booking payload. Start is an RFC 3339
// instant; the engine derives the day and bucket from it.
type CreateAppointmentRequest struct {
	ProviderID  string `json:"providerId" binding:"required"`
	PatientRef  string `json:"patientRef" binding:"required"`
	Start       string `json:"start" binding:"required"`
	DurationMin int    `json:"durationMin"`
	Reason      string `json:"reason"`
}

// CreateAppointmentHandler books a slot and records the appointment.
// POST /api/appointments
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start instant", "start must be RFC 3339")
		return
	}

	actor := middleware.ActingStaff(c)
	appointmentID := uuid.New().String()
	ctx := c.Request.Context()

	slot, err := h.Engine.BookSlot(ctx, scheduling.BookSlotRequest{
		ProviderID:    req.ProviderID,
		Start:         start,
		AppointmentID: appointmentID,
		SubjectID:     req.PatientRef,
		Reason:        req.Reason,
		Actor:         actor,
	})
	if err != nil {
		status, msg := scheduleErrorStatus(err)
		utils.JSONError(c, status, msg, err.Error())
		return
	}

	appt := &models.Appointment{
		ID:          appointmentID,
		ProviderID:  req.ProviderID,
		PatientRef:  req.PatientRef,
		Date:        slot.Date,
		Start:       slot.Start,
		DurationMin: req.DurationMin,
		Reason:      req.Reason,
		CreatedBy:   actor,
	}
	if err := h.Appointments.Create(ctx, appt); err != nil {
		// Compensate: the slot transition must not outlive a failed record
		// write.
		if _, cErr := h.Engine.CancelBooking(ctx, req.ProviderID, start, appointmentID, actor); cErr != nil {
			h.Logger.Error("failed to roll back booking after record write failure",
				zap.String("appointmentID", appointmentID), zap.Error(cErr))
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to record appointment", err.Error())
		return
	}

	utils.InvalidateAvailability(ctx, h.Cache, req.ProviderID, slot.Date)
	c.JSON(http.StatusCreated, gin.H{
		"appointment": appt,
		"slot":        slot,
	})
}

// CancelAppointmentHandler frees the slot and marks the record cancelled.
// A repeat cancel is reported as already cancelled, not an error.
// POST /api/appointments/:id/cancel
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	appointmentID := c.Param("id")
	actor := middleware.ActingStaff(c)
	ctx := c.Request.Context()

	appt, err := h.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", appointmentID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointment", err.Error())
		return
	}

	day, err := time.Parse("2006-01-02", appt.Date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Corrupt appointment date", appt.Date)
		return
	}
	start := day.Add(time.Duration(appt.Start) * time.Minute)

	alreadyCancelled := appt.Status == models.AppointmentCancelled
	if !alreadyCancelled {
		if _, err := h.Engine.CancelBooking(ctx, appt.ProviderID, start, appointmentID, actor); err != nil {
			if err != scheduling.ErrBookingNotFound {
				status, msg := scheduleErrorStatus(err)
				utils.JSONError(c, status, msg, err.Error())
				return
			}
			// No booked row carries this ref anymore; treat as already freed.
			alreadyCancelled = true
		}
		if err := h.Appointments.SetStatus(ctx, appointmentID, models.AppointmentCancelled); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update appointment", err.Error())
			return
		}
	}

	utils.InvalidateAvailability(ctx, h.Cache, appt.ProviderID, appt.Date)
	c.JSON(http.StatusOK, gin.H{
		"appointmentId":    appointmentID,
		"alreadyCancelled": alreadyCancelled,
	})
}
