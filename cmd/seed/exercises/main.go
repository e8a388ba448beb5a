package main

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coachdesk/coachdesk/internal/config"
	"github.com/coachdesk/coachdesk/internal/domain"
	"github.com/coachdesk/coachdesk/internal/repository"
)

// Seeds the global exercise catalog. Safe to re-run: duplicates by name are
// skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoExerciseRepository(db)

	exercises := []domain.Exercise{
		// Legs
		{Name: "Barbell Squat", MuscleGroups: []string{"Quads", "Glutes"}, Equipment: "Barbell", Category: "Compound"},
		{Name: "Romanian Deadlift", MuscleGroups: []string{"Hamstrings", "Glutes"}, Equipment: "Barbell", Category: "Compound"},
		{Name: "Leg Press", MuscleGroups: []string{"Quads", "Glutes"}, Equipment: "Machine", Category: "Compound"},
		{Name: "Walking Lunge", MuscleGroups: []string{"Quads", "Glutes"}, Equipment: "Dumbbell", Category: "Compound"},
		{Name: "Leg Extension", MuscleGroups: []string{"Quads"}, Equipment: "Machine", Category: "Isolation"},
		{Name: "Lying Leg Curl", MuscleGroups: []string{"Hamstrings"}, Equipment: "Machine", Category: "Isolation"},
		{Name: "Bulgarian Split Squat", MuscleGroups: []string{"Quads", "Glutes"}, Equipment: "Dumbbell", Category: "Compound"},
		{Name: "Standing Calf Raise", MuscleGroups: []string{"Calves"}, Equipment: "Machine", Category: "Isolation"},
		{Name: "Glute Bridge", MuscleGroups: []string{"Glutes"}, Equipment: "Bodyweight", Category: "Isolation"},

		// Chest
		{Name: "Barbell Bench Press", MuscleGroups: []string{"Chest", "Triceps"}, Equipment: "Barbell", Category: "Compound"},
		{Name: "Incline Dumbbell Press", MuscleGroups: []string{"Chest", "Shoulders"}, Equipment: "Dumbbell", Category: "Compound"},
		{Name: "Push Up", MuscleGroups: []string{"Chest", "Triceps"}, Equipment: "Bodyweight", Category: "Compound"},
		{Name: "Cable Fly", MuscleGroups: []string{"Chest"}, Equipment: "Cable", Category: "Isolation"},
		{Name: "Dips", MuscleGroups: []string{"Chest", "Triceps"}, Equipment: "Bodyweight", Category: "Compound"},

		// Back
		{Name: "Deadlift", MuscleGroups: []string{"Back", "Hamstrings", "Glutes"}, Equipment: "Barbell", Category: "Compound"},
		{Name: "Pull Up", MuscleGroups: []string{"Back", "Biceps"}, Equipment: "Bodyweight", Category: "Compound"},
		{Name: "Lat Pulldown", MuscleGroups: []string{"Back"}, Equipment: "Cable", Category: "Compound"},
		{Name: "Barbell Row", MuscleGroups: []string{"Back"}, Equipment: "Barbell", Category: "Compound"},
		{Name: "Seated Cable Row", MuscleGroups: []string{"Back"}, Equipment: "Cable", Category: "Compound"},
		{Name: "Face Pull", MuscleGroups: []string{"Rear Delts", "Back"}, Equipment: "Cable", Category: "Isolation"},

		// Shoulders
		{Name: "Overhead Press", MuscleGroups: []string{"Shoulders", "Triceps"}, Equipment: "Barbell", Category: "Compound"},
		{Name: "Dumbbell Shoulder Press", MuscleGroups: []string{"Shoulders"}, Equipment: "Dumbbell", Category: "Compound"},
		{Name: "Lateral Raise", MuscleGroups: []string{"Shoulders"}, Equipment: "Dumbbell", Category: "Isolation"},
		{Name: "Reverse Fly", MuscleGroups: []string{"Rear Delts"}, Equipment: "Machine", Category: "Isolation"},

		// Arms
		{Name: "Barbell Curl", MuscleGroups: []string{"Biceps"}, Equipment: "Barbell", Category: "Isolation"},
		{Name: "Hammer Curl", MuscleGroups: []string{"Biceps", "Forearms"}, Equipment: "Dumbbell", Category: "Isolation"},
		{Name: "Tricep Pushdown", MuscleGroups: []string{"Triceps"}, Equipment: "Cable", Category: "Isolation"},
		{Name: "Skullcrusher", MuscleGroups: []string{"Triceps"}, Equipment: "EZ Bar", Category: "Isolation"},

		// Core and conditioning
		{Name: "Plank", MuscleGroups: []string{"Core"}, Equipment: "Bodyweight", Category: "Isolation"},
		{Name: "Hanging Leg Raise", MuscleGroups: []string{"Core"}, Equipment: "Bodyweight", Category: "Isolation"},
		{Name: "Russian Twist", MuscleGroups: []string{"Core"}, Equipment: "Bodyweight", Category: "Isolation"},
		{Name: "Kettlebell Swing", MuscleGroups: []string{"Glutes", "Hamstrings", "Core"}, Equipment: "Kettlebell", Category: "Compound"},
		{Name: "Burpee", MuscleGroups: []string{"Full Body"}, Equipment: "Bodyweight", Category: "Compound"},
		{Name: "Rowing Machine", MuscleGroups: []string{"Full Body"}, Equipment: "Machine", Category: "Conditioning"},
	}

	created, skipped := 0, 0
	for i := range exercises {
		if err := repo.Create(ctx, &exercises[i]); err != nil {
			if errors.Is(err, domain.ErrDuplicateExercise) {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed %q: %v", exercises[i].Name, err)
		}
		created++
	}

	log.Printf("Exercise seed done: %d created, %d already present", created, skipped)
}
