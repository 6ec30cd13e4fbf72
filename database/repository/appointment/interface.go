package appointmentRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/database"
	"clinicdesk/models"
)

// AppointmentRepository owns the appointment records created after a slot
// booking succeeds. ListForDay is the day scan the degraded-mode availability
// overlay uses as a best-effort secondary check.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListForDay(ctx context.Context, providerID, date string) ([]models.Appointment, error)
	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a MongoDB-backed AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
