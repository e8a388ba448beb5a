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

type MongoClientRepository struct {
	collection *mongo.Collection
}

func NewMongoClientRepository(db *mongo.Database) *MongoClientRepository {
	return &MongoClientRepository{
		collection: db.Collection("clients"),
	}
}

func (r *MongoClientRepository) Create(ctx context.Context, client *domain.Client) error {
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()
	if client.Status == "" {
		client.Status = domain.ClientStatusActive
	}

	result, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		client.ID = oid.Hex()
	}
	return nil
}

func (r *MongoClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var client domain.Client
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *MongoClientRepository) List(ctx context.Context, trainerID string) ([]*domain.Client, error) {
	filter := bson.M{}
	if trainerID != "" {
		filter["trainer_id"] = trainerID
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *MongoClientRepository) Update(ctx context.Context, client *domain.Client) error {
	oid, err := primitive.ObjectIDFromHex(client.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	client.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":       client.Name,
			"email":      client.Email,
			"phone":      client.Phone,
			"goal":       client.Goal,
			"status":     client.Status,
			"updated_at": client.UpdatedAt,
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *MongoClientRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *MongoClientRepository) CountByTrainer(ctx context.Context, trainerID string) (int64, error) {
	filter := bson.M{}
	if trainerID != "" {
		filter["trainer_id"] = trainerID
	}
	return r.collection.CountDocuments(ctx, filter)
}
