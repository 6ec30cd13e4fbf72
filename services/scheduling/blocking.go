package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/utils"
)

// Range blocking deliberately runs day by day without a surrounding
// transaction: a crash mid-range leaves a prefix blocked, and re-running the
// same request converges to the same end state.
const maxBlockRangeDays = 366

// BlockSlots marks every non-booked bucket in [DateFrom, DateTo] as
// blocked_<kind>, materializing each day's grid first. Booked rows are never
// overwritten; they are reported in the Skipped count instead.
func (e *DefaultSchedulingEngine) BlockSlots(ctx context.Context, req BlockRequest) (BlockResult, error) {
	var res BlockResult

	status, err := statusForKind(req.Kind)
	if err != nil {
		return res, err
	}
	days, err := DaysInRange(req.DateFrom, req.DateTo)
	if err != nil {
		return res, err
	}

	for _, day := range days {
		if err := e.EnsureGrid(ctx, req.ProviderID, day); err != nil {
			return res, fmt.Errorf("block %s: %w", day, err)
		}
		skipped, err := e.Grid.CountBookedDay(ctx, req.ProviderID, day)
		if err != nil {
			return res, fmt.Errorf("block %s: %w", day, err)
		}
		blocked, err := e.Grid.BlockDay(ctx, req.ProviderID, day, status, req.BlockingRef, req.Reason, req.Actor)
		if err != nil {
			return res, fmt.Errorf("block %s: %w", day, err)
		}
		res.Blocked += blocked
		res.Skipped += skipped
	}

	utils.GetLogger().Info("slots blocked",
		zap.String("providerID", req.ProviderID),
		zap.String("from", req.DateFrom),
		zap.String("to", req.DateTo),
		zap.String("kind", req.Kind),
		zap.Int64("blocked", res.Blocked),
		zap.Int64("skipped", res.Skipped))
	return res, nil
}

// UnblockSlots returns every blocked bucket in the range to available.
// Booked rows are untouched, mirroring BlockSlots.
func (e *DefaultSchedulingEngine) UnblockSlots(ctx context.Context, providerID, dateFrom, dateTo, actor string) (int64, error) {
	return e.UnblockSlotsFor(ctx, providerID, dateFrom, dateTo, "", actor)
}

// UnblockSlotsFor frees only the buckets blocked under blockingRef; an empty
// ref frees every blocked bucket in the range.
func (e *DefaultSchedulingEngine) UnblockSlotsFor(ctx context.Context, providerID, dateFrom, dateTo, blockingRef, actor string) (int64, error) {
	days, err := DaysInRange(dateFrom, dateTo)
	if err != nil {
		return 0, err
	}

	var unblocked int64
	for _, day := range days {
		n, err := e.Grid.UnblockDay(ctx, providerID, day, blockingRef, actor)
		if err != nil {
			return unblocked, fmt.Errorf("unblock %s: %w", day, err)
		}
		unblocked += n
	}

	utils.GetLogger().Info("slots unblocked",
		zap.String("providerID", providerID),
		zap.String("from", dateFrom),
		zap.String("to", dateTo),
		zap.Int64("unblocked", unblocked))
	return unblocked, nil
}

func statusForKind(kind string) (string, error) {
	switch kind {
	case BlockKindLeave:
		return models.SlotBlockedLeave, nil
	case BlockKindEvent:
		return models.SlotBlockedEvent, nil
	case BlockKindOther, "":
		return models.SlotBlockedOther, nil
	default:
		return "", fmt.Errorf("unknown block kind %q", kind)
	}
}

// DaysInRange expands an inclusive date range into its calendar days.
func DaysInRange(dateFrom, dateTo string) ([]string, error) {
	from, err := time.Parse(dateLayout, dateFrom)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	to, err := time.Parse(dateLayout, dateTo)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(days) >= maxBlockRangeDays {
			return nil, ErrInvalidDateRange
		}
		days = append(days, d.Format(dateLayout))
	}
	return days, nil
}
