package slotgridRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/database"
	"clinicdesk/models"
)

// GridRepository is the durable slot grid: one document per
// (providerId, date, start). The unique compound index carries the one-row
// invariant; every mutating method is a single conditional write.
type GridRepository interface {
	// InsertDay inserts the given rows, tolerating rows that already exist.
	// Returns the number actually inserted.
	InsertDay(ctx context.Context, slots []models.Slot) (int, error)
	GetDay(ctx context.Context, providerID, date string) ([]models.Slot, error)
	CountDay(ctx context.Context, providerID, date string) (int64, error)
	CountBookedDay(ctx context.Context, providerID, date string) (int64, error)
	// FindContaining returns the single bucket whose [start, end) interval
	// contains the given minute-of-day, or mongo.ErrNoDocuments.
	FindContaining(ctx context.Context, providerID, date string, minute int) (*models.Slot, error)
	// MarkBooked transitions a bucket from available to booked, only if its
	// status is still available at write time. mongo.ErrNoDocuments means the
	// conditional write matched nothing.
	MarkBooked(ctx context.Context, providerID, date string, start int, bookingRef, actor string) (*models.Slot, error)
	// ClearBooking finds the booked row carrying bookingRef on the given day
	// and returns it to available with both refs cleared.
	ClearBooking(ctx context.Context, providerID, date, bookingRef, actor string) (*models.Slot, error)
	// BlockDay bulk-transitions every available row for the day to the given
	// blocked_* status. Returns the number of rows transitioned; booked rows
	// and rows already blocked by someone else are untouched.
	BlockDay(ctx context.Context, providerID, date, status, blockingRef, reason, actor string) (int64, error)
	// UnblockDay returns blocked_* rows for the day to available. A non-empty
	// blockingRef restricts it to rows blocked under that ref.
	UnblockDay(ctx context.Context, providerID, date, blockingRef, actor string) (int64, error)
	EnsureIndexes() error
}

type mongoGridRepo struct {
	coll *mongo.Collection
}

// NewMongoGridRepo constructs a MongoDB-backed GridRepository.
func NewMongoGridRepo() GridRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoGridRepo{
		coll: db.Collection("slots"),
	}
}
