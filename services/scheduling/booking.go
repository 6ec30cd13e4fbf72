package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/utils"
)

// BookSlot turns the bucket containing req.Start into a booked bucket tied
// to the appointment id. The status-guarded update in the grid repository is
// the sole concurrency-control point: of N simultaneous calls for the same
// bucket exactly one sees a matched row, the rest get ErrSlotConflict.
func (e *DefaultSchedulingEngine) BookSlot(ctx context.Context, req BookSlotRequest) (*models.Slot, error) {
	logger := utils.GetLogger()

	prov, err := e.provider(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !prov.Active {
		return nil, ErrProviderInactive
	}

	date := req.Start.Format(dateLayout)
	minute := req.Start.Hour()*60 + req.Start.Minute()

	if err := e.EnsureGrid(ctx, req.ProviderID, date); err != nil {
		return nil, err
	}

	slot, err := e.Grid.FindContaining(ctx, req.ProviderID, date, minute)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("locate slot: %w", err)
	}

	booked, err := e.Grid.MarkBooked(ctx, req.ProviderID, date, slot.Start, req.AppointmentID, req.Actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// The bucket exists but was not available at write time: another
			// booking won the race, or the row is blocked.
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("book slot: %w", err)
	}

	logger.Info("slot booked",
		zap.String("providerID", req.ProviderID),
		zap.String("date", date),
		zap.String("bucket", BucketLabel(booked.Start, booked.End)),
		zap.String("appointmentID", req.AppointmentID),
		zap.String("subjectID", req.SubjectID),
		zap.String("actor", req.Actor))
	return booked, nil
}

// CancelBooking reverses BookSlot: the row holding the appointment reference
// goes back to available with both refs cleared. The row is never deleted.
func (e *DefaultSchedulingEngine) CancelBooking(ctx context.Context, providerID string, start time.Time, appointmentID, actor string) (*models.Slot, error) {
	date := start.Format(dateLayout)

	freed, err := e.Grid.ClearBooking(ctx, providerID, date, appointmentID, actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("providerID", providerID),
		zap.String("date", date),
		zap.String("bucket", BucketLabel(freed.Start, freed.End)),
		zap.String("appointmentID", appointmentID),
		zap.String("actor", actor))
	return freed, nil
}
