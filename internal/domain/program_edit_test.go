package domain

import (
	"errors"
	"reflect"
	"testing"
)

func editTemplate() *ProgramTemplate {
	return sampleTemplate() // from materialize_test.go
}

func assertStructure(t *testing.T, tpl *ProgramTemplate) {
	t.Helper()
	if err := tpl.CheckStructure(); err != nil {
		t.Fatalf("structure invariant broken: %v", err)
	}
}

func TestAddWeek(t *testing.T) {
	tpl := editTemplate()
	tpl.AddWeek()

	if len(tpl.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(tpl.Weeks))
	}
	added := tpl.Weeks[2]
	if added.WeekNumber != 3 {
		t.Errorf("new week number = %d, want 3", added.WeekNumber)
	}
	if len(added.Days) != 3 { // matches first week's day count
		t.Errorf("new week has %d days, want 3", len(added.Days))
	}
	for _, d := range added.Days {
		if d.IsRestDay || len(d.Sections) != 0 {
			t.Errorf("new day not empty: %+v", d)
		}
	}
	assertStructure(t, tpl)
}

func TestAddWeekToEmptyTemplate(t *testing.T) {
	tpl := &ProgramTemplate{}
	tpl.AddWeek()
	if len(tpl.Weeks) != 1 || len(tpl.Weeks[0].Days) != 7 {
		t.Fatalf("expected 1 week of 7 days, got %d weeks", len(tpl.Weeks))
	}
	assertStructure(t, tpl)
}

func TestDeleteLastWeek(t *testing.T) {
	tpl := editTemplate()
	if err := tpl.DeleteLastWeek(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(tpl.Weeks))
	}
	assertStructure(t, tpl)
}

func TestDeleteLastWeekFloor(t *testing.T) {
	tpl := editTemplate()
	if err := tpl.DeleteLastWeek(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := tpl.Clone()
	err := tpl.DeleteLastWeek()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(tpl.Weeks, before.Weeks) {
		t.Error("failed delete mutated the template")
	}
}

func TestSetWeekFrequency(t *testing.T) {
	t.Run("shrink preserves prefix", func(t *testing.T) {
		tpl := editTemplate()
		before := tpl.Clone()

		if err := tpl.SetWeekFrequency(1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tpl.Weeks[0].Days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(tpl.Weeks[0].Days))
		}
		// Days [0, 2) keep their content; only numbering may differ.
		for i := 0; i < 2; i++ {
			got, want := tpl.Weeks[0].Days[i], before.Weeks[0].Days[i]
			if !reflect.DeepEqual(got.Sections, want.Sections) ||
				!reflect.DeepEqual(got.Exercises, want.Exercises) ||
				got.IsRestDay != want.IsRestDay {
				t.Errorf("day %d content changed by shrink", i)
			}
		}
		assertStructure(t, tpl)
	})

	t.Run("grow appends empty days", func(t *testing.T) {
		tpl := editTemplate()
		if err := tpl.SetWeekFrequency(2, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tpl.Weeks[1].Days) != 5 {
			t.Fatalf("expected 5 days, got %d", len(tpl.Weeks[1].Days))
		}
		for _, d := range tpl.Weeks[1].Days[3:] {
			if d.IsRestDay || len(d.Sections) != 0 {
				t.Errorf("appended day not empty: %+v", d)
			}
		}
		assertStructure(t, tpl)
	})

	t.Run("renumbers trailing weeks", func(t *testing.T) {
		tpl := editTemplate()
		if err := tpl.SetWeekFrequency(1, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Week 2's days must now start at global day 6.
		if got := tpl.Weeks[1].Days[0].DayNumber; got != 6 {
			t.Errorf("week 2 day 1 renumbered to %d, want 6", got)
		}
		assertStructure(t, tpl)
	})

	t.Run("rejects out-of-range counts", func(t *testing.T) {
		tpl := editTemplate()
		var verr *ValidationError
		if err := tpl.SetWeekFrequency(1, 0); !errors.As(err, &verr) {
			t.Errorf("count 0: expected ValidationError, got %v", err)
		}
		if err := tpl.SetWeekFrequency(1, 8); !errors.As(err, &verr) {
			t.Errorf("count 8: expected ValidationError, got %v", err)
		}
	})
}

func TestAddRemoveDay(t *testing.T) {
	tpl := editTemplate()
	if err := tpl.AddDay(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, w := range tpl.Weeks {
		if len(w.Days) != 4 {
			t.Errorf("week %d has %d days, want 4", i+1, len(w.Days))
		}
	}
	if tpl.DaysPerWeek != 4 {
		t.Errorf("nominal frequency = %d, want 4", tpl.DaysPerWeek)
	}
	assertStructure(t, tpl)

	if err := tpl.RemoveDay(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, w := range tpl.Weeks {
		if len(w.Days) != 3 {
			t.Errorf("week %d has %d days, want 3", i+1, len(w.Days))
		}
	}
	// The former day 2 (legacy flat exercises) is gone from week 1.
	if len(tpl.Weeks[0].Days[1].Exercises) != 0 {
		t.Error("removed day content still present")
	}
	assertStructure(t, tpl)
}

func TestToggleRestDay(t *testing.T) {
	tpl := editTemplate()

	if err := tpl.ToggleRestDay(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day := tpl.Weeks[0].Days[0]
	if !day.IsRestDay {
		t.Error("day 1 should now be a rest day")
	}
	if len(day.Sections) != 0 || len(day.Exercises) != 0 {
		t.Error("becoming a rest day must clear content")
	}

	// Toggling back yields an empty training day, content stays gone.
	if err := tpl.ToggleRestDay(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Weeks[0].Days[0].IsRestDay {
		t.Error("day 1 should be a training day again")
	}

	if err := tpl.ToggleRestDay(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetRestPattern(t *testing.T) {
	tpl := &ProgramTemplate{DaysPerWeek: 7}
	tpl.AddWeek()

	if err := tpl.SetRestPattern(1, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantRest := map[int]bool{2: true, 4: true, 6: true, 7: true}
	for i, d := range tpl.Weeks[0].Days {
		if d.IsRestDay != wantRest[i+1] {
			t.Errorf("day %d: rest = %v, want %v", i+1, d.IsRestDay, wantRest[i+1])
		}
	}

	var verr *ValidationError
	if err := tpl.SetRestPattern(1, 2); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for unknown frequency, got %v", err)
	}
}

func TestSectionAndExerciseEdits(t *testing.T) {
	tpl := editTemplate()

	sec := Section{ID: "new-sec", Type: SectionTypeCooldown, Format: SectionFormatCircuit, Name: "Finisher"}
	if err := tpl.AddSection(2, sec); err != nil {
		t.Fatalf("add section: %v", err)
	}
	if err := tpl.AddExercise(2, "new-sec", ProgramExercise{ExerciseID: "burpee", Sets: 3, Reps: "15", RestSeconds: 30}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}

	day := tpl.day(2)
	if len(day.Sections) != 1 || len(day.Sections[0].Exercises) != 1 {
		t.Fatalf("unexpected day shape after edits: %+v", day)
	}

	if err := tpl.DeleteExercise(2, "new-sec", "burpee"); err != nil {
		t.Fatalf("delete exercise: %v", err)
	}
	if err := tpl.DeleteExercise(2, "new-sec", "burpee"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
	if err := tpl.DeleteSection(2, "new-sec"); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	// Rest days refuse sections.
	var verr *ValidationError
	if err := tpl.AddSection(3, sec); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError on rest day, got %v", err)
	}
}

func TestCopyPasteDayExercises(t *testing.T) {
	tpl := editTemplate()

	snapshot, err := tpl.DayExercises(1)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 exercises in snapshot, got %d", len(snapshot))
	}

	// Mutating the snapshot must not reach back into the template.
	snapshot[0].Sets = 99
	if tpl.Weeks[0].Days[0].Sections[0].Exercises[0].Sets == 99 {
		t.Error("snapshot shares memory with template")
	}
	snapshot[0].Sets = 4

	// Paste onto a legacy flat day appends.
	if err := tpl.PasteDayExercises(2, snapshot); err != nil {
		t.Fatalf("paste: %v", err)
	}
	day := tpl.day(2)
	if len(day.Exercises) != 3 {
		t.Fatalf("expected 3 exercises after paste, got %d", len(day.Exercises))
	}
	if day.Exercises[0].ExerciseID != "row" {
		t.Error("paste replaced instead of appending")
	}

	// Paste onto a section-based day lands in the last section.
	if err := tpl.PasteDayExercises(4, snapshot); err != nil {
		t.Fatalf("paste: %v", err)
	}
	d4 := tpl.day(4)
	if got := len(d4.Sections[0].Exercises); got != 3 {
		t.Fatalf("expected 3 exercises in section after paste, got %d", got)
	}

	// Rest days refuse pastes.
	var verr *ValidationError
	if err := tpl.PasteDayExercises(3, snapshot); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError on rest day, got %v", err)
	}
}

func TestCheckStructure(t *testing.T) {
	tpl := editTemplate()
	assertStructure(t, tpl)

	tpl.Weeks[1].WeekNumber = 5
	var serr *StructuralError
	if err := tpl.CheckStructure(); !errors.As(err, &serr) {
		t.Errorf("expected StructuralError, got %v", err)
	}
}
