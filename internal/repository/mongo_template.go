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

type MongoTemplateRepository struct {
	collection *mongo.Collection
}

func NewMongoTemplateRepository(db *mongo.Database) *MongoTemplateRepository {
	return &MongoTemplateRepository{
		collection: db.Collection("program_templates"),
	}
}

func (r *MongoTemplateRepository) Create(ctx context.Context, tmpl *domain.ProgramTemplate) error {
	tmpl.CreatedAt = time.Now()
	tmpl.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, tmpl)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tmpl.ID = oid.Hex()
	}
	return nil
}

func (r *MongoTemplateRepository) GetByID(ctx context.Context, id string) (*domain.ProgramTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var tmpl domain.ProgramTemplate
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&tmpl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

func (r *MongoTemplateRepository) List(ctx context.Context, trainerID string) ([]*domain.ProgramTemplate, error) {
	filter := bson.M{}
	if trainerID != "" {
		filter["created_by"] = trainerID
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*domain.ProgramTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *MongoTemplateRepository) Update(ctx context.Context, tmpl *domain.ProgramTemplate) error {
	oid, err := primitive.ObjectIDFromHex(tmpl.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	tmpl.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":          tmpl.Name,
			"description":   tmpl.Description,
			"days_per_week": tmpl.DaysPerWeek,
			"weeks":         tmpl.Weeks,
			"updated_at":    tmpl.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *MongoTemplateRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
