package eventRepo

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

func (r *mongoEventRepo) Create(ctx context.Context, event *models.ClinicEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert clinic event: %w", err)
	}
	return nil
}

func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (*models.ClinicEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.ClinicEvent
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "deleted": false}).Decode(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *mongoEventRepo) SetPublished(ctx context.Context, id string, published bool) error {
	return r.setFlag(ctx, id, bson.M{"published": published})
}

func (r *mongoEventRepo) SetDeleted(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, bson.M{"deleted": true, "published": false})
}

func (r *mongoEventRepo) setFlag(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update clinic event: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoEventRepo) List(ctx context.Context) ([]models.ClinicEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"deleted": false},
		options.Find().SetSort(bson.D{{Key: "dateFrom", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clinic events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.ClinicEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding clinic events: %w", err)
	}
	return events, nil
}

func (r *mongoEventRepo) ListPublishedOverlapping(ctx context.Context, dateFrom, dateTo string) ([]models.ClinicEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"published": true,
		"deleted":   false,
		"dateFrom":  bson.M{"$lte": dateTo},
		"dateTo":    bson.M{"$gte": dateFrom},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overlapping events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.ClinicEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding overlapping events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the indexes on the clinic_events collection.
func (r *mongoEventRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "published", Value: 1},
				{Key: "dateFrom", Value: 1},
				{Key: "dateTo", Value: 1},
			},
			Options: options.Index().SetName("published_range_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}
	return nil
}
