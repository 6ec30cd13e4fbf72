package handlers

import (
	"errors"
	"net/http"

	"clinicdesk/services/scheduling"
)

// scheduleErrorStatus maps the engine's typed failures onto HTTP statuses.
// Conflicts are 409 so the front desk knows to pick another time rather than
// retry the same instant.
func scheduleErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, scheduling.ErrProviderNotFound):
		return http.StatusNotFound, "Provider not found"
	case errors.Is(err, scheduling.ErrProviderInactive):
		return http.StatusConflict, "Provider is not active"
	case errors.Is(err, scheduling.ErrSlotNotFound):
		return http.StatusUnprocessableEntity, "No slot matches the requested time"
	case errors.Is(err, scheduling.ErrSlotConflict):
		return http.StatusConflict, "Slot is no longer available"
	case errors.Is(err, scheduling.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, scheduling.ErrInvalidDateRange):
		return http.StatusBadRequest, "Invalid date range"
	default:
		return http.StatusInternalServerError, "Scheduling operation failed"
	}
}
