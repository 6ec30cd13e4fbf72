package providerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/database"
	"clinicdesk/models"
)

// ProviderRepository owns provider profiles and their working-hours
// declarations. The scheduling engine only reads from it.
type ProviderRepository interface {
	Create(ctx context.Context, p *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	ListActive(ctx context.Context) ([]models.Provider, error)
	UpdateHours(ctx context.Context, id string, hours map[string]models.WorkingHours) error
	SetActive(ctx context.Context, id string, active bool) error
	EnsureIndexes() error
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a MongoDB-backed ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoProviderRepo{
		coll: db.Collection("providers"),
	}
}
