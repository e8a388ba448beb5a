package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coachdesk/coachdesk/internal/domain"
)

type ExerciseService struct {
	exerciseRepo domain.ExerciseRepository
}

func NewExerciseService(exerciseRepo domain.ExerciseRepository) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo}
}

func (s *ExerciseService) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return nil, &domain.ValidationError{Reason: "exercise name is required"}
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.exerciseRepo.GetByID(ctx, id)
}

// List accepts optional filters on muscle group, equipment and category.
func (s *ExerciseService) List(ctx context.Context, muscleGroup, equipment, category string) ([]*domain.Exercise, error) {
	filter := map[string]interface{}{}
	if muscleGroup != "" {
		filter["muscle_groups"] = muscleGroup
	}
	if equipment != "" {
		filter["equipment"] = equipment
	}
	if category != "" {
		filter["category"] = category
	}
	exercises, err := s.exerciseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

func (s *ExerciseService) Update(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return nil, &domain.ValidationError{Reason: "exercise name is required"}
	}
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) Delete(ctx context.Context, id string) error {
	return s.exerciseRepo.Delete(ctx, id)
}
