package eventRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/database"
	"clinicdesk/models"
)

// EventRepository owns clinic-wide blackout events. ListPublishedOverlapping
// is the overlap check the degraded-mode availability overlay consumes.
type EventRepository interface {
	Create(ctx context.Context, event *models.ClinicEvent) error
	GetByID(ctx context.Context, id string) (*models.ClinicEvent, error)
	SetPublished(ctx context.Context, id string, published bool) error
	SetDeleted(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.ClinicEvent, error)
	ListPublishedOverlapping(ctx context.Context, dateFrom, dateTo string) ([]models.ClinicEvent, error)
	EnsureIndexes() error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a MongoDB-backed EventRepository.
func NewMongoEventRepo() EventRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoEventRepo{
		coll: db.Collection("clinic_events"),
	}
}
