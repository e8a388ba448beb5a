package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrTemplateNotFound = errors.New("program template not found")
)

// Section Type Constants
const (
	SectionTypeWarmup   = "warmup"
	SectionTypeMain     = "main"
	SectionTypeSkill    = "skill"
	SectionTypeCooldown = "cooldown"
	SectionTypeCustom   = "custom"
)

// Section Format Constants
const (
	SectionFormatStraightSets = "straight-sets"
	SectionFormatCircuit      = "circuit"
	SectionFormatSuperset     = "superset"
	SectionFormatCustom       = "custom"
)

// ProgramTemplate is a reusable, client-independent workout blueprint.
// Assignments take a value-copy of the tree, so editing a template never
// retroactively alters already-materialized sessions.
type ProgramTemplate struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	DaysPerWeek int       `json:"days_per_week" bson:"days_per_week"` // nominal, informational
	Weeks       []Week    `json:"weeks" bson:"weeks"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Week struct {
	WeekNumber int   `json:"week_number" bson:"week_number"`
	Days       []Day `json:"days" bson:"days"`
}

// Day is one slot in the weekly template. DayNumber is globally contiguous
// across the whole template. A day carries either Sections (current shape)
// or a flat Exercises list (legacy shape), never meaningfully both.
type Day struct {
	DayNumber int               `json:"day_number" bson:"day_number"`
	Name      string            `json:"name,omitempty" bson:"name,omitempty"`
	IsRestDay bool              `json:"is_rest_day" bson:"is_rest_day"`
	Sections  []Section         `json:"sections,omitempty" bson:"sections,omitempty"`
	Exercises []ProgramExercise `json:"exercises,omitempty" bson:"exercises,omitempty"` // legacy flat shape
}

type Section struct {
	ID        string            `json:"id" bson:"id"`
	Type      string            `json:"type" bson:"type"`     // warmup, main, skill, cooldown, custom
	Format    string            `json:"format" bson:"format"` // straight-sets, circuit, superset, custom
	Name      string            `json:"name" bson:"name"`
	Exercises []ProgramExercise `json:"exercises" bson:"exercises"`
}

// ProgramExercise is the template-level prescription of one exercise.
// Reps and Weight are free text ("8-12", "AMRAP", "70%", "RPE 8").
type ProgramExercise struct {
	ExerciseID  string `json:"exercise_id" bson:"exercise_id"`
	Sets        int    `json:"sets" bson:"sets"`
	Reps        string `json:"reps" bson:"reps"`
	Weight      string `json:"weight,omitempty" bson:"weight,omitempty"`
	RestSeconds int    `json:"rest_seconds" bson:"rest_seconds"`
	Notes       string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// DurationWeeks is derived, never stored independently.
func (t *ProgramTemplate) DurationWeeks() int {
	return len(t.Weeks)
}

// TotalDays is the sum of day counts across all weeks.
func (t *ProgramTemplate) TotalDays() int {
	total := 0
	for _, w := range t.Weeks {
		total += len(w.Days)
	}
	return total
}

// CheckStructure verifies the numbering invariants: week numbers contiguous
// from 1 and matching position, day numbers globally contiguous from 1.
func (t *ProgramTemplate) CheckStructure() error {
	dayN := 0
	for i, w := range t.Weeks {
		if w.WeekNumber != i+1 {
			return &StructuralError{Reason: fmt.Sprintf("week at position %d has week_number %d", i+1, w.WeekNumber)}
		}
		for _, d := range w.Days {
			dayN++
			if d.DayNumber != dayN {
				return &StructuralError{Reason: fmt.Sprintf("day at global position %d has day_number %d", dayN, d.DayNumber)}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the template tree.
func (t *ProgramTemplate) Clone() *ProgramTemplate {
	c := *t
	c.Weeks = make([]Week, len(t.Weeks))
	for i, w := range t.Weeks {
		cw := w
		cw.Days = make([]Day, len(w.Days))
		for j, d := range w.Days {
			cd := d
			if d.Sections != nil {
				cd.Sections = make([]Section, len(d.Sections))
				for k, s := range d.Sections {
					cs := s
					cs.Exercises = append([]ProgramExercise(nil), s.Exercises...)
					cd.Sections[k] = cs
				}
			}
			cd.Exercises = append([]ProgramExercise(nil), d.Exercises...)
			cw.Days[j] = cd
		}
		c.Weeks[i] = cw
	}
	return &c
}

type TemplateRepository interface {
	Create(ctx context.Context, template *ProgramTemplate) error
	GetByID(ctx context.Context, id string) (*ProgramTemplate, error)
	List(ctx context.Context, trainerID string) ([]*ProgramTemplate, error)
	Update(ctx context.Context, template *ProgramTemplate) error
	Delete(ctx context.Context, id string) error
}
