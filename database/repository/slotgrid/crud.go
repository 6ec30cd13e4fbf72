package slotgridRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicdesk/models"
)

func (r *mongoGridRepo) InsertDay(ctx context.Context, slots []models.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.UpdatedAt.IsZero() {
			slot.UpdatedAt = time.Now()
		}
		docs[i] = slot
	}

	// Unordered so one duplicate does not abort the rest: concurrent
	// materialization of the same day must converge, not fail.
	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return inserted, nil
		}
		return inserted, err
	}
	return inserted, nil
}

func (r *mongoGridRepo) MarkBooked(ctx context.Context, providerID, date string, start int, bookingRef, actor string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"start":      start,
		"status":     models.SlotAvailable,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         models.SlotBooked,
			"bookingRef":     bookingRef,
			"lastModifiedBy": actor,
			"updatedAt":      time.Now(),
		},
		"$unset": bson.M{
			"blockingRef":    "",
			"blockingReason": "",
		},
	}

	var updated models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoGridRepo) ClearBooking(ctx context.Context, providerID, date, bookingRef, actor string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"bookingRef": bookingRef,
		"status":     models.SlotBooked,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         models.SlotAvailable,
			"lastModifiedBy": actor,
			"updatedAt":      time.Now(),
		},
		"$unset": bson.M{
			"bookingRef":     "",
			"blockingRef":    "",
			"blockingReason": "",
		},
	}

	var freed models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&freed)
	if err != nil {
		return nil, err
	}
	return &freed, nil
}

func (r *mongoGridRepo) BlockDay(ctx context.Context, providerID, date, status, blockingRef, reason, actor string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Only available rows transition. Booked rows are deliberately left
	// alone (blocking never silently cancels a confirmed booking), and an
	// existing block keeps its original ref so the first blocker's removal
	// is what frees the row.
	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"status":     models.SlotAvailable,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         status,
			"blockingRef":    blockingRef,
			"blockingReason": reason,
			"lastModifiedBy": actor,
			"updatedAt":      time.Now(),
		},
		"$unset": bson.M{
			"bookingRef": "",
		},
	}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoGridRepo) UnblockDay(ctx context.Context, providerID, date, blockingRef, actor string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"status": bson.M{"$in": []string{
			models.SlotBlockedLeave,
			models.SlotBlockedEvent,
			models.SlotBlockedOther,
		}},
	}
	if blockingRef != "" {
		filter["blockingRef"] = blockingRef
	}
	update := bson.M{
		"$set": bson.M{
			"status":         models.SlotAvailable,
			"lastModifiedBy": actor,
			"updatedAt":      time.Now(),
		},
		"$unset": bson.M{
			"blockingRef":    "",
			"blockingReason": "",
			"bookingRef":     "",
		},
	}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
