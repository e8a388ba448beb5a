package domain

import (
	"testing"
	"time"
)

func sampleTemplate() *ProgramTemplate {
	// 2 weeks x 3 days, day 3 of week 1 is a rest day.
	return &ProgramTemplate{
		ID:          "tpl-1",
		Name:        "Push-Pull-Legs",
		DaysPerWeek: 3,
		Weeks: []Week{
			{
				WeekNumber: 1,
				Days: []Day{
					{DayNumber: 1, Sections: []Section{{
						ID: "s1", Type: SectionTypeMain, Format: SectionFormatStraightSets, Name: "Push",
						Exercises: []ProgramExercise{
							{ExerciseID: "bench", Sets: 4, Reps: "8-12", Weight: "70%", RestSeconds: 90},
							{ExerciseID: "ohp", Sets: 3, Reps: "10", RestSeconds: 60},
						},
					}}},
					{DayNumber: 2, Exercises: []ProgramExercise{ // legacy flat day
						{ExerciseID: "row", Sets: 3, Reps: "10", RestSeconds: 60},
					}},
					{DayNumber: 3, IsRestDay: true},
				},
			},
			{
				WeekNumber: 2,
				Days: []Day{
					{DayNumber: 4, Sections: []Section{{
						ID: "s2", Type: SectionTypeMain, Format: SectionFormatStraightSets, Name: "Legs",
						Exercises: []ProgramExercise{{ExerciseID: "squat"}},
					}}},
					{DayNumber: 5, Sections: []Section{}},
					{DayNumber: 6, IsRestDay: true},
				},
			},
		},
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestExpandTemplateCountAndOrder(t *testing.T) {
	tpl := sampleTemplate()
	drafts := ExpandTemplate(tpl, mustDate(t, "2024-06-03"), "10:00", "11:00")

	if len(drafts) != 6 {
		t.Fatalf("expected 6 drafts, got %d", len(drafts))
	}

	wantWeeks := []int{1, 1, 1, 2, 2, 2}
	wantDays := []int{1, 2, 3, 4, 5, 6}
	for i, d := range drafts {
		if d.WeekNumber != wantWeeks[i] || d.DayNumber != wantDays[i] {
			t.Errorf("draft %d: got week %d day %d, want week %d day %d",
				i, d.WeekNumber, d.DayNumber, wantWeeks[i], wantDays[i])
		}
	}
}

func TestExpandTemplateDateContiguity(t *testing.T) {
	tpl := sampleTemplate()
	start := mustDate(t, "2024-06-03") // a Monday
	drafts := ExpandTemplate(tpl, start, "10:00", "11:00")

	for i, d := range drafts {
		want := start.AddDate(0, 0, i).Format(DateLayout)
		if d.Date != want {
			t.Errorf("draft %d: got date %s, want %s", i, d.Date, want)
		}
	}
	if drafts[len(drafts)-1].Date != "2024-06-08" {
		t.Errorf("last draft date = %s, want 2024-06-08", drafts[len(drafts)-1].Date)
	}
}

func TestExpandTemplateRestDays(t *testing.T) {
	tpl := sampleTemplate()
	// Stale content on a rest day must not leak into the draft.
	tpl.Weeks[0].Days[2].Sections = []Section{{
		ID: "stale", Type: SectionTypeMain, Format: SectionFormatStraightSets,
		Exercises: []ProgramExercise{{ExerciseID: "ghost"}},
	}}

	drafts := ExpandTemplate(tpl, mustDate(t, "2024-06-03"), "10:00", "11:00")

	for _, i := range []int{2, 5} {
		d := drafts[i]
		if !d.IsRestDay {
			t.Errorf("draft %d: expected rest day", i)
		}
		if len(d.Exercises) != 0 {
			t.Errorf("draft %d: rest day has %d exercises", i, len(d.Exercises))
		}
		if d.Notes == "" {
			t.Errorf("draft %d: rest day has no note", i)
		}
	}
}

func TestExpandTemplateDefaults(t *testing.T) {
	tpl := sampleTemplate()
	drafts := ExpandTemplate(tpl, mustDate(t, "2024-06-03"), "10:00", "11:00")

	// Day 4's squat carries no prescription at all.
	squat := drafts[3].Exercises[0]
	if squat.Sets != 3 || squat.Reps != "10" || squat.Weight != "0" || squat.RestSeconds != 60 {
		t.Errorf("defaults not applied: %+v", squat)
	}
	if squat.ActualSets == nil || len(squat.ActualSets) != 0 {
		t.Errorf("expected empty actual set log, got %v", squat.ActualSets)
	}

	// Explicit values are never overridden.
	bench := drafts[0].Exercises[0]
	if bench.Sets != 4 || bench.Reps != "8-12" || bench.Weight != "70%" || bench.RestSeconds != 90 {
		t.Errorf("explicit prescription mangled: %+v", bench)
	}
}

func TestExpandTemplateSectionOrder(t *testing.T) {
	tpl := sampleTemplate()
	tpl.Weeks[0].Days[0].Sections = append(tpl.Weeks[0].Days[0].Sections, Section{
		ID: "s1b", Type: SectionTypeCooldown, Format: SectionFormatStraightSets,
		Exercises: []ProgramExercise{{ExerciseID: "stretch", Sets: 1, Reps: "1", RestSeconds: 0}},
	})

	drafts := ExpandTemplate(tpl, mustDate(t, "2024-06-03"), "10:00", "11:00")
	got := drafts[0].Exercises
	wantIDs := []string{"bench", "ohp", "stretch"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d exercises, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ExerciseID != id {
			t.Errorf("exercise %d: got %s, want %s", i, got[i].ExerciseID, id)
		}
	}
}

func TestExpandTemplateEmptyShapes(t *testing.T) {
	tests := []struct {
		name string
		tpl  *ProgramTemplate
		want int
	}{
		{"no weeks", &ProgramTemplate{}, 0},
		{"week with no days", &ProgramTemplate{Weeks: []Week{{WeekNumber: 1}}}, 0},
		{
			"day with empty sections",
			&ProgramTemplate{Weeks: []Week{{WeekNumber: 1, Days: []Day{
				{DayNumber: 1, Sections: []Section{{ID: "s", Exercises: []ProgramExercise{}}}},
			}}}},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts := ExpandTemplate(tt.tpl, mustDate(t, "2024-06-03"), "10:00", "11:00")
			if len(drafts) != tt.want {
				t.Fatalf("got %d drafts, want %d", len(drafts), tt.want)
			}
			for _, d := range drafts {
				if d.Exercises == nil || len(d.Exercises) != 0 {
					t.Errorf("expected empty exercise list, got %v", d.Exercises)
				}
			}
		})
	}
}

func TestTemplateEndDate(t *testing.T) {
	tpl := sampleTemplate()
	start := mustDate(t, "2024-06-03")
	end := TemplateEndDate(tpl, start)
	if got := end.Format(DateLayout); got != "2024-06-08" {
		t.Errorf("end date = %s, want 2024-06-08", got)
	}
}

func TestExpandTemplateSnapshotIsolation(t *testing.T) {
	tpl := sampleTemplate()
	drafts := ExpandTemplate(tpl, mustDate(t, "2024-06-03"), "10:00", "11:00")

	// Editing the template after expansion must not touch the drafts.
	tpl.Weeks[0].Days[0].Sections[0].Exercises[0].Sets = 99
	if drafts[0].Exercises[0].Sets != 4 {
		t.Errorf("draft shares memory with template: sets = %d", drafts[0].Exercises[0].Sets)
	}
}
