package leave

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// Create persists the leave period and blocks its slot range. The period is
// stored first so an interrupted block can be retried from the record.
func (s *DefaultLeaveService) Create(ctx context.Context, req CreateLeaveRequest) (*LeaveOutcome, error) {
	period := &models.LeavePeriod{
		ProviderID: req.ProviderID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Reason:     req.Reason,
		CreatedBy:  req.Actor,
	}
	if err := s.Repo.Create(ctx, period); err != nil {
		return nil, fmt.Errorf("record leave period: %w", err)
	}

	block, err := s.Scheduler.BlockSlots(ctx, scheduling.BlockRequest{
		ProviderID:  req.ProviderID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Kind:        scheduling.BlockKindLeave,
		BlockingRef: period.ID,
		Reason:      req.Reason,
		Actor:       req.Actor,
	})
	if err != nil {
		return nil, fmt.Errorf("block slots for leave %s: %w", period.ID, err)
	}
	if block.Skipped > 0 {
		utils.GetLogger().Warn("leave overlaps confirmed bookings, left booked",
			zap.String("leaveID", period.ID),
			zap.String("providerID", req.ProviderID),
			zap.Int64("skipped", block.Skipped))
	}

	return &LeaveOutcome{Leave: period, Block: block}, nil
}

// Remove deletes the leave period and unblocks the identical range,
// returning the removed period and the number of slots freed.
func (s *DefaultLeaveService) Remove(ctx context.Context, leaveID, actor string) (*models.LeavePeriod, int64, error) {
	period, err := s.Repo.GetByID(ctx, leaveID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, 0, ErrLeaveNotFound
		}
		return nil, 0, fmt.Errorf("load leave period: %w", err)
	}

	if err := s.Repo.Delete(ctx, leaveID); err != nil {
		return nil, 0, fmt.Errorf("delete leave period: %w", err)
	}

	unblocked, err := s.Scheduler.UnblockSlotsFor(ctx, period.ProviderID, period.DateFrom, period.DateTo, leaveID, actor)
	if err != nil {
		return period, unblocked, fmt.Errorf("unblock slots for leave %s: %w", leaveID, err)
	}
	return period, unblocked, nil
}

func (s *DefaultLeaveService) ListByProvider(ctx context.Context, providerID string) ([]models.LeavePeriod, error) {
	return s.Repo.ListByProvider(ctx, providerID)
}
