package leave

import (
	"context"

	leaveRepo "clinicdesk/database/repository/leave"
	"clinicdesk/models"
	"clinicdesk/services/scheduling"
)

// CreateLeaveRequest is an approved leave period to record and block.
type CreateLeaveRequest struct {
	ProviderID string
	DateFrom   string
	DateTo     string
	Reason     string
	Actor      string
}

// LeaveOutcome pairs the stored period with what the block operation did.
type LeaveOutcome struct {
	Leave *models.LeavePeriod    `json:"leave"`
	Block scheduling.BlockResult `json:"block"`
}

// LeaveService records approved leave and keeps the slot grid in step:
// creating a period blocks its range, removing it unblocks the same range.
type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (*LeaveOutcome, error)
	Remove(ctx context.Context, leaveID, actor string) (*models.LeavePeriod, int64, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.LeavePeriod, error)
}

// DefaultLeaveService is the production implementation.
type DefaultLeaveService struct {
	Repo      leaveRepo.LeaveRepository
	Scheduler scheduling.Engine
}
