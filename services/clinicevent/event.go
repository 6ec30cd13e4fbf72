package clinicevent

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// Create records a draft event. Nothing is blocked until it is published.
func (s *DefaultEventService) Create(ctx context.Context, req CreateEventRequest) (*models.ClinicEvent, error) {
	event := &models.ClinicEvent{
		Title:     req.Title,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		CreatedBy: req.Actor,
	}
	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record clinic event: %w", err)
	}
	return event, nil
}

// Publish blocks the event's range for every active provider and flips the
// published flag. A failure for one provider is collected and the fan-out
// continues; already-blocked providers stay blocked on retry.
func (s *DefaultEventService) Publish(ctx context.Context, eventID, actor string) (*FanoutResult, error) {
	event, err := s.get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	res := s.fanout(ctx, event, actor, true)
	if err := s.Repo.SetPublished(ctx, eventID, true); err != nil {
		return res, fmt.Errorf("mark event published: %w", err)
	}
	return res, nil
}

// Unpublish unblocks the event's range for every active provider and clears
// the published flag. The unblock is scoped to this event's ref, so slots a
// leave period blocked first stay blocked.
func (s *DefaultEventService) Unpublish(ctx context.Context, eventID, actor string) (*FanoutResult, error) {
	event, err := s.get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	res := s.fanout(ctx, event, actor, false)
	if err := s.Repo.SetPublished(ctx, eventID, false); err != nil {
		return res, fmt.Errorf("mark event unpublished: %w", err)
	}
	return res, nil
}

// Delete soft-deletes the event, reversing the fan-out first when it is
// still published.
func (s *DefaultEventService) Delete(ctx context.Context, eventID, actor string) (*FanoutResult, error) {
	event, err := s.get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	res := &FanoutResult{}
	if event.Published {
		res = s.fanout(ctx, event, actor, false)
	}
	if err := s.Repo.SetDeleted(ctx, eventID); err != nil {
		return res, fmt.Errorf("delete clinic event: %w", err)
	}
	return res, nil
}

func (s *DefaultEventService) List(ctx context.Context) ([]models.ClinicEvent, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultEventService) get(ctx context.Context, eventID string) (*models.ClinicEvent, error) {
	event, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("load clinic event: %w", err)
	}
	return event, nil
}

// fanout applies the block (or unblock) once per active provider. Each call
// is independent: failures are collected so prior successes stand.
func (s *DefaultEventService) fanout(ctx context.Context, event *models.ClinicEvent, actor string, block bool) *FanoutResult {
	logger := utils.GetLogger()
	res := &FanoutResult{}

	providers, err := s.Providers.ListActive(ctx)
	if err != nil {
		res.Failures = append(res.Failures, ProviderFailure{Reason: fmt.Sprintf("list providers: %v", err)})
		return res
	}
	res.Providers = len(providers)

	for _, prov := range providers {
		if block {
			blockRes, err := s.Scheduler.BlockSlots(ctx, scheduling.BlockRequest{
				ProviderID:  prov.ID,
				DateFrom:    event.DateFrom,
				DateTo:      event.DateTo,
				Kind:        scheduling.BlockKindEvent,
				BlockingRef: event.ID,
				Reason:      event.Title,
				Actor:       actor,
			})
			if err != nil {
				logger.Error("event fan-out: block failed for provider",
					zap.String("eventID", event.ID), zap.String("providerID", prov.ID), zap.Error(err))
				res.Failures = append(res.Failures, ProviderFailure{ProviderID: prov.ID, Reason: err.Error()})
				continue
			}
			res.Blocked += blockRes.Blocked
			res.Skipped += blockRes.Skipped
		} else {
			unblocked, err := s.Scheduler.UnblockSlotsFor(ctx, prov.ID, event.DateFrom, event.DateTo, event.ID, actor)
			if err != nil {
				logger.Error("event fan-out: unblock failed for provider",
					zap.String("eventID", event.ID), zap.String("providerID", prov.ID), zap.Error(err))
				res.Failures = append(res.Failures, ProviderFailure{ProviderID: prov.ID, Reason: err.Error()})
				continue
			}
			res.Unblocked += unblocked
		}
	}
	return res
}
