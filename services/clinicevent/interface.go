package clinicevent

import (
	"context"

	eventRepo "clinicdesk/database/repository/event"
	providerRepo "clinicdesk/database/repository/provider"
	"clinicdesk/models"
	"clinicdesk/services/scheduling"
)

// CreateEventRequest is a clinic-wide blackout to record as a draft.
type CreateEventRequest struct {
	Title    string
	DateFrom string
	DateTo   string
	Actor    string
}

// ProviderFailure records a provider whose block/unblock call failed during
// fan-out. Failures are collected, never propagated as a single aggregate
// error, so one provider cannot abort the rest.
type ProviderFailure struct {
	ProviderID string `json:"providerId"`
	Reason     string `json:"reason"`
}

// FanoutResult sums the per-provider block results of a publish/unpublish.
type FanoutResult struct {
	Providers int               `json:"providers"`
	Blocked   int64             `json:"blocked"`
	Skipped   int64             `json:"skipped"`
	Unblocked int64             `json:"unblocked"`
	Failures  []ProviderFailure `json:"failures,omitempty"`
}

// EventService manages clinic blackout events. Publishing fans the block out
// to every active provider; unpublishing and deleting reverse it.
type EventService interface {
	Create(ctx context.Context, req CreateEventRequest) (*models.ClinicEvent, error)
	Publish(ctx context.Context, eventID, actor string) (*FanoutResult, error)
	Unpublish(ctx context.Context, eventID, actor string) (*FanoutResult, error)
	Delete(ctx context.Context, eventID, actor string) (*FanoutResult, error)
	List(ctx context.Context) ([]models.ClinicEvent, error)
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Repo      eventRepo.EventRepository
	Providers providerRepo.ProviderRepository
	Scheduler scheduling.Engine
}
