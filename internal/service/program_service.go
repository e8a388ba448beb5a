package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/coachdesk/coachdesk/internal/domain"
)

// ProgramService owns the template library and the structural tree editor.
// Every edit loads the template, mutates the tree in memory (renumbering
// included), verifies the numbering invariants and writes it back whole.
type ProgramService struct {
	templateRepo domain.TemplateRepository
	exerciseRepo domain.ExerciseRepository
}

func NewProgramService(templateRepo domain.TemplateRepository, exerciseRepo domain.ExerciseRepository) *ProgramService {
	return &ProgramService{
		templateRepo: templateRepo,
		exerciseRepo: exerciseRepo,
	}
}

func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// CreateTemplate builds a new template. With no weeks supplied it starts as
// one week of seven training days, the shape the editor grows from.
func (s *ProgramService) CreateTemplate(ctx context.Context, tmpl *domain.ProgramTemplate) (*domain.ProgramTemplate, error) {
	if strings.TrimSpace(tmpl.Name) == "" {
		return nil, &domain.ValidationError{Reason: "template name is required"}
	}
	if len(tmpl.Weeks) == 0 {
		tmpl.AddWeek()
	}
	for wi := range tmpl.Weeks {
		for di := range tmpl.Weeks[wi].Days {
			for si := range tmpl.Weeks[wi].Days[di].Sections {
				if tmpl.Weeks[wi].Days[di].Sections[si].ID == "" {
					tmpl.Weeks[wi].Days[di].Sections[si].ID = generateULID()
				}
			}
		}
	}
	if err := tmpl.CheckStructure(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return tmpl, nil
}

func (s *ProgramService) GetTemplate(ctx context.Context, id string) (*domain.ProgramTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *ProgramService) ListTemplates(ctx context.Context, trainerID string) ([]*domain.ProgramTemplate, error) {
	return s.templateRepo.List(ctx, trainerID)
}

// UpdateTemplateMeta changes name and description only; the tree is edited
// through the structural operations.
func (s *ProgramService) UpdateTemplateMeta(ctx context.Context, id, name, description string) (*domain.ProgramTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Reason: "template name is required"}
	}
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tmpl.Name = name
	tmpl.Description = description
	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *ProgramService) DeleteTemplate(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}

// CloneTemplate duplicates a template under a new name. The copy gets fresh
// section ids so the two trees share nothing.
func (s *ProgramService) CloneTemplate(ctx context.Context, id, name string) (*domain.ProgramTemplate, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	clone := tmpl.Clone()
	clone.ID = ""
	if strings.TrimSpace(name) != "" {
		clone.Name = name
	} else {
		clone.Name = tmpl.Name + " (copy)"
	}
	for wi := range clone.Weeks {
		for di := range clone.Weeks[wi].Days {
			for si := range clone.Weeks[wi].Days[di].Sections {
				clone.Weeks[wi].Days[di].Sections[si].ID = generateULID()
			}
		}
	}
	if err := s.templateRepo.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("failed to clone template: %w", err)
	}
	return clone, nil
}

// edit loads a template, applies one structural mutation and persists the
// whole tree. Mutations renumber internally; the invariant check is the
// final guard before the write.
func (s *ProgramService) edit(ctx context.Context, id string, mutate func(*domain.ProgramTemplate) error) (*domain.ProgramTemplate, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(tmpl); err != nil {
		return nil, err
	}
	if err := tmpl.CheckStructure(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *ProgramService) AddWeek(ctx context.Context, id string) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		t.AddWeek()
		return nil
	})
}

func (s *ProgramService) DeleteLastWeek(ctx context.Context, id string) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.DeleteLastWeek()
	})
}

func (s *ProgramService) SetWeekFrequency(ctx context.Context, id string, weekNumber, dayCount int) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.SetWeekFrequency(weekNumber, dayCount)
	})
}

func (s *ProgramService) SetRestPattern(ctx context.Context, id string, weekNumber, frequency int) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.SetRestPattern(weekNumber, frequency)
	})
}

func (s *ProgramService) AddDay(ctx context.Context, id string) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.AddDay()
	})
}

func (s *ProgramService) RemoveDay(ctx context.Context, id string, position int) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.RemoveDay(position)
	})
}

func (s *ProgramService) ToggleRestDay(ctx context.Context, id string, dayNumber int) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.ToggleRestDay(dayNumber)
	})
}

func (s *ProgramService) AddSection(ctx context.Context, id string, dayNumber int, section domain.Section) (*domain.ProgramTemplate, error) {
	if section.ID == "" {
		section.ID = generateULID()
	}
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.AddSection(dayNumber, section)
	})
}

func (s *ProgramService) DeleteSection(ctx context.Context, id string, dayNumber int, sectionID string) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.DeleteSection(dayNumber, sectionID)
	})
}

// AddExercise verifies the exercise exists in the catalog before placing a
// reference to it in the tree.
func (s *ProgramService) AddExercise(ctx context.Context, id string, dayNumber int, sectionID string, exercise domain.ProgramExercise) (*domain.ProgramTemplate, error) {
	if _, err := s.exerciseRepo.GetByID(ctx, exercise.ExerciseID); err != nil {
		return nil, err
	}
	if exercise.Sets <= 0 {
		exercise.Sets = domain.DefaultSets
	}
	if exercise.Reps == "" {
		exercise.Reps = domain.DefaultReps
	}
	if exercise.RestSeconds <= 0 {
		exercise.RestSeconds = domain.DefaultRestSeconds
	}
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.AddExercise(dayNumber, sectionID, exercise)
	})
}

func (s *ProgramService) DeleteExercise(ctx context.Context, id string, dayNumber int, sectionID, exerciseID string) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.DeleteExercise(dayNumber, sectionID, exerciseID)
	})
}

// CopyDayExercises returns a detached snapshot of one day's exercises for a
// later paste. The snapshot does not track subsequent edits.
func (s *ProgramService) CopyDayExercises(ctx context.Context, id string, dayNumber int) ([]domain.ProgramExercise, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tmpl.DayExercises(dayNumber)
}

func (s *ProgramService) PasteDayExercises(ctx context.Context, id string, dayNumber int, snapshot []domain.ProgramExercise) (*domain.ProgramTemplate, error) {
	return s.edit(ctx, id, func(t *domain.ProgramTemplate) error {
		return t.PasteDayExercises(dayNumber, snapshot)
	})
}
