package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/coachdesk/coachdesk/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoInstanceRepository struct {
	collection *mongo.Collection
}

func NewMongoInstanceRepository(db *mongo.Database) *MongoInstanceRepository {
	return &MongoInstanceRepository{
		collection: db.Collection("program_instances"),
	}
}

func (r *MongoInstanceRepository) Create(ctx context.Context, instance *domain.ProgramInstance) error {
	instance.AssignedAt = time.Now()
	instance.UpdatedAt = time.Now()
	if instance.CompletedWeeks == nil {
		instance.CompletedWeeks = []int{}
	}
	if instance.CompletedDays == nil {
		instance.CompletedDays = []int{}
	}

	result, err := r.collection.InsertOne(ctx, instance)
	if err != nil {
		return fmt.Errorf("failed to create program instance: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		instance.ID = oid.Hex()
	}
	return nil
}

func (r *MongoInstanceRepository) GetByID(ctx context.Context, id string) (*domain.ProgramInstance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var instance domain.ProgramInstance
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&instance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInstanceNotFound
		}
		return nil, err
	}
	return &instance, nil
}

func (r *MongoInstanceRepository) GetActiveByClient(ctx context.Context, clientID string) (*domain.ProgramInstance, error) {
	filter := bson.M{
		"client_id": clientID,
		"status":    domain.InstanceStatusActive,
	}

	var instance domain.ProgramInstance
	err := r.collection.FindOne(ctx, filter).Decode(&instance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInstanceNotFound
		}
		return nil, err
	}
	return &instance, nil
}

func (r *MongoInstanceRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.ProgramInstance, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var instances []*domain.ProgramInstance
	if err := cursor.All(ctx, &instances); err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *MongoInstanceRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}

func (r *MongoInstanceRepository) MarkDayCompleted(ctx context.Context, id string, week, day, nextWeek, nextDay int, weekDone bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	addToSet := bson.M{"completed_days": day}
	if weekDone {
		addToSet["completed_weeks"] = week
	}

	update := bson.M{
		"$addToSet": addToSet,
		"$set": bson.M{
			"current_week": nextWeek,
			"current_day":  nextDay,
			"updated_at":   time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}

func (r *MongoInstanceRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete program instance: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}

func (r *MongoInstanceRepository) CountActiveByTrainer(ctx context.Context, trainerID string) (int64, error) {
	filter := bson.M{"status": domain.InstanceStatusActive}
	if trainerID != "" {
		filter["trainer_id"] = trainerID
	}
	return r.collection.CountDocuments(ctx, filter)
}
