package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

// Client Status Constants
const (
	ClientStatusActive   = "active"
	ClientStatusPaused   = "paused"
	ClientStatusInactive = "inactive"
)

// Client represents a person trained by a trainer
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TrainerID string    `json:"trainer_id" bson:"trainer_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Goal      string    `json:"goal,omitempty" bson:"goal,omitempty"` // e.g., "Fat loss", "Strength"
	Status    string    `json:"status" bson:"status"`                 // active, paused, inactive
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, trainerID string) ([]*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
	CountByTrainer(ctx context.Context, trainerID string) (int64, error)
}
