package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/coachdesk/coachdesk/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSessionRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{
		collection: db.Collection("workout_sessions"),
	}
}

func (r *MongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) error {
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()
	if session.Exercises == nil {
		session.Exercises = []domain.SessionExercise{}
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}
	return nil
}

func (r *MongoSessionRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var session domain.WorkoutSession
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *MongoSessionRepository) List(ctx context.Context, filter map[string]interface{}) ([]*domain.WorkoutSession, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*domain.WorkoutSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *MongoSessionRepository) ListByInstance(ctx context.Context, instanceID string) ([]*domain.WorkoutSession, error) {
	return r.List(ctx, map[string]interface{}{"program_instance_id": instanceID})
}

func (r *MongoSessionRepository) CountByInstanceAndStatus(ctx context.Context, instanceID string, statuses []string) (int64, error) {
	filter := bson.M{
		"program_instance_id": instanceID,
		"status":              bson.M{"$in": statuses},
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoSessionRepository) CountByDateRange(ctx context.Context, trainerID string, from, to string, statuses []string) (int64, error) {
	filter := bson.M{
		"date":   bson.M{"$gte": from, "$lte": to},
		"status": bson.M{"$in": statuses},
	}
	if trainerID != "" {
		filter["trainer_id"] = trainerID
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	oid, err := primitive.ObjectIDFromHex(session.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	session.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"date":       session.Date,
			"time":       session.Time,
			"end_time":   session.EndTime,
			"exercises":  session.Exercises,
			"status":     session.Status,
			"notes":      session.Notes,
			"updated_at": session.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *MongoSessionRepository) UpdateStatus(ctx context.Context, id string, status string) error {
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
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *MongoSessionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *MongoSessionRepository) DeleteByInstance(ctx context.Context, instanceID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"program_instance_id": instanceID})
	if err != nil {
		return fmt.Errorf("failed to delete instance sessions: %w", err)
	}
	return nil
}
