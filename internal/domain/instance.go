package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInstanceNotFound = errors.New("program instance not found")
)

// Instance Status Constants
const (
	InstanceStatusActive    = "active"
	InstanceStatusCompleted = "completed"
	InstanceStatusCancelled = "cancelled"
)

// ProgramInstance is a concrete assignment of one template to one client.
// At most one active instance may exist per client at any time; the
// assignment transaction enforces this by destructively replacing the
// prior one.
type ProgramInstance struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	TemplateID     string    `json:"template_id" bson:"template_id"`
	ClientID       string    `json:"client_id" bson:"client_id"`
	TrainerID      string    `json:"trainer_id" bson:"trainer_id"`
	StartDate      string    `json:"start_date" bson:"start_date"` // YYYY-MM-DD
	Status         string    `json:"status" bson:"status"`         // active, completed, cancelled
	CurrentWeek    int       `json:"current_week" bson:"current_week"`
	CurrentDay     int       `json:"current_day" bson:"current_day"`
	CompletedWeeks []int     `json:"completed_weeks" bson:"completed_weeks"`
	CompletedDays  []int     `json:"completed_days" bson:"completed_days"` // global day numbers
	AssignedAt     time.Time `json:"assigned_at" bson:"assigned_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

type ProgramInstanceRepository interface {
	Create(ctx context.Context, instance *ProgramInstance) error
	GetByID(ctx context.Context, id string) (*ProgramInstance, error)
	// GetActiveByClient returns the client's single active instance, or
	// ErrInstanceNotFound when the client has none.
	GetActiveByClient(ctx context.Context, clientID string) (*ProgramInstance, error)
	ListByClient(ctx context.Context, clientID string) ([]*ProgramInstance, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	// MarkDayCompleted records a completed day (and week, when supplied)
	// and advances the progress cursor.
	MarkDayCompleted(ctx context.Context, id string, week, day, nextWeek, nextDay int, weekDone bool) error
	Delete(ctx context.Context, id string) error
	CountActiveByTrainer(ctx context.Context, trainerID string) (int64, error)
}
