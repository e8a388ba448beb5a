package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("workout session not found")
)

// Session Status Constants
const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)

// ActualSet is one logged set filled in during execution.
type ActualSet struct {
	SetIndex  int     `json:"set_index" bson:"set_index"` // 1-based
	Weight    float64 `json:"weight" bson:"weight"`
	Reps      int     `json:"reps" bson:"reps"`
	Remarks   string  `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Completed bool    `json:"completed" bson:"completed"`
}

// SessionExercise carries a value-copy of the template prescription taken
// at assignment time plus the mutable execution log.
type SessionExercise struct {
	ExerciseID  string      `json:"exercise_id" bson:"exercise_id"`
	Sets        int         `json:"sets" bson:"sets"`
	Reps        string      `json:"reps" bson:"reps"`
	Weight      string      `json:"weight" bson:"weight"`
	RestSeconds int         `json:"rest_seconds" bson:"rest_seconds"`
	Notes       string      `json:"notes,omitempty" bson:"notes,omitempty"`
	ActualSets  []ActualSet `json:"actual_sets" bson:"actual_sets"`
}

// WorkoutSession is one concrete, dated occurrence of training. Rest days
// are materialized too so the client's calendar shows continuity.
type WorkoutSession struct {
	ID                string            `json:"id" bson:"_id,omitempty"`
	ClientID          string            `json:"client_id" bson:"client_id"`
	TrainerID         string            `json:"trainer_id,omitempty" bson:"trainer_id,omitempty"`
	ProgramInstanceID string            `json:"program_instance_id,omitempty" bson:"program_instance_id,omitempty"`
	Date              string            `json:"date" bson:"date"` // YYYY-MM-DD
	Time              string            `json:"time" bson:"time"` // HH:MM local
	EndTime           string            `json:"end_time" bson:"end_time"`
	WeekNumber        int               `json:"week_number,omitempty" bson:"week_number,omitempty"`
	DayNumber         int               `json:"day_number,omitempty" bson:"day_number,omitempty"`
	Exercises         []SessionExercise `json:"exercises" bson:"exercises"`
	Status            string            `json:"status" bson:"status"`
	Notes             string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
}

type SessionRepository interface {
	Create(ctx context.Context, session *WorkoutSession) error
	GetByID(ctx context.Context, id string) (*WorkoutSession, error)
	List(ctx context.Context, filter map[string]interface{}) ([]*WorkoutSession, error)
	ListByInstance(ctx context.Context, instanceID string) ([]*WorkoutSession, error)
	CountByInstanceAndStatus(ctx context.Context, instanceID string, statuses []string) (int64, error)
	CountByDateRange(ctx context.Context, trainerID string, from, to string, statuses []string) (int64, error)
	Update(ctx context.Context, session *WorkoutSession) error
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	// DeleteByInstance removes every session generated by an instance
	// (cascade on destructive replacement).
	DeleteByInstance(ctx context.Context, instanceID string) error
}
