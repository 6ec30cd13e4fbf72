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

const dateLayout = "2006-01-02"

// EnsureGrid materializes the day's slot rows from the provider's declared
// working hours. A no-op when rows already exist; concurrent callers cannot
// duplicate rows because inserts land on the unique (provider, date, start)
// index and duplicate-key failures count as success.
func (e *DefaultSchedulingEngine) EnsureGrid(ctx context.Context, providerID, date string) error {
	prov, err := e.provider(ctx, providerID)
	if err != nil {
		return err
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return ErrInvalidDateRange
	}

	hours, ok := prov.HoursFor(day.Weekday())
	if !ok || !hours.Working {
		// Nothing to materialize on a non-working day.
		return nil
	}

	count, err := e.Grid.CountDay(ctx, providerID, date)
	if err != nil {
		return fmt.Errorf("count grid rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	window := ParseWindow(hours.Window, hours.SlotDurationMin)
	slots := buildDaySlots(providerID, date, window)
	inserted, err := e.Grid.InsertDay(ctx, slots)
	if err != nil {
		return fmt.Errorf("materialize grid for %s/%s: %w", providerID, date, err)
	}
	if inserted > 0 {
		utils.GetLogger().Info("materialized slot grid",
			zap.String("providerID", providerID),
			zap.String("date", date),
			zap.Int("slots", inserted))
	}
	return nil
}

// buildDaySlots expands a working window into available grid rows.
func buildDaySlots(providerID, date string, w WorkingWindow) []models.Slot {
	buckets := GenerateBuckets(w)
	slots := make([]models.Slot, 0, len(buckets))
	now := time.Now()
	for _, b := range buckets {
		slots = append(slots, models.Slot{
			ProviderID: providerID,
			Date:       date,
			Start:      b.Start,
			End:        b.End,
			Status:     models.SlotAvailable,
			UpdatedAt:  now,
		})
	}
	return slots
}

// provider loads a profile, mapping the driver's not-found to the engine's
// typed error.
func (e *DefaultSchedulingEngine) provider(ctx context.Context, providerID string) (*models.Provider, error) {
	prov, err := e.Providers.GetByID(ctx, providerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("load provider %s: %w", providerID, err)
	}
	return prov, nil
}
