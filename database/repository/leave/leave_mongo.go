package leaveRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicdesk/models"
)

func (r *mongoLeaveRepo) Create(ctx context.Context, leave *models.LeavePeriod) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if leave.ID == "" {
		leave.ID = uuid.New().String()
	}
	leave.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, leave); err != nil {
		return fmt.Errorf("failed to insert leave period: %w", err)
	}
	return nil
}

func (r *mongoLeaveRepo) GetByID(ctx context.Context, id string) (*models.LeavePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var leave models.LeavePeriod
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&leave); err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *mongoLeaveRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete leave period: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoLeaveRepo) ListByProvider(ctx context.Context, providerID string) ([]models.LeavePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID},
		options.Find().SetSort(bson.D{{Key: "dateFrom", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave periods: %w", err)
	}
	defer cursor.Close(ctx)

	var leaves []models.LeavePeriod
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("error decoding leave periods: %w", err)
	}
	return leaves, nil
}

func (r *mongoLeaveRepo) ExistsOn(ctx context.Context, providerID, date string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Date strings compare lexicographically, so range containment is a
	// plain string comparison.
	filter := bson.M{
		"providerId": providerID,
		"dateFrom":   bson.M{"$lte": date},
		"dateTo":     bson.M{"$gte": date},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check leave existence: %w", err)
	}
	return count > 0, nil
}

// EnsureIndexes creates the indexes on the leaves collection.
func (r *mongoLeaveRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "dateFrom", Value: 1},
				{Key: "dateTo", Value: 1},
			},
			Options: options.Index().SetName("provider_range_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create leave indexes: %w", err)
	}
	return nil
}
