package leaveRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/database"
	"clinicdesk/models"
)

// LeaveRepository owns approved leave periods. ExistsOn is the existence
// check the degraded-mode availability overlay consumes.
type LeaveRepository interface {
	Create(ctx context.Context, leave *models.LeavePeriod) error
	GetByID(ctx context.Context, id string) (*models.LeavePeriod, error)
	Delete(ctx context.Context, id string) error
	ListByProvider(ctx context.Context, providerID string) ([]models.LeavePeriod, error)
	ExistsOn(ctx context.Context, providerID, date string) (bool, error)
	EnsureIndexes() error
}

type mongoLeaveRepo struct {
	coll *mongo.Collection
}

// NewMongoLeaveRepo constructs a MongoDB-backed LeaveRepository.
func NewMongoLeaveRepo() LeaveRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoLeaveRepo{
		coll: db.Collection("leaves"),
	}
}
