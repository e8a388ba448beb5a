package domain

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Template exercise defaults applied during materialization.
const (
	DefaultSets        = 3
	DefaultReps        = "10"
	DefaultWeight      = "0"
	DefaultRestSeconds = 60
)

// RestDayNote marks materialized rest-day sessions on the calendar.
const RestDayNote = "Rest day"

// SessionDraft is one not-yet-persisted session produced by expansion.
type SessionDraft struct {
	Date       string
	Time       string
	EndTime    string
	WeekNumber int
	DayNumber  int
	IsRestDay  bool
	Exercises  []SessionExercise
	Notes      string
}

// ExpandTemplate materializes a template into dated session drafts: weeks in
// order, days in order within each week, one draft per day. The Nth draft
// (0-indexed) is dated startDate+N calendar days, regardless of rest-day
// flags or gaps in the stored day numbering. Rest days still yield a draft
// with no exercises and a rest note. A template with no weeks, or a week
// with no days, contributes nothing.
func ExpandTemplate(t *ProgramTemplate, startDate time.Time, startTime, endTime string) []SessionDraft {
	drafts := make([]SessionDraft, 0, t.TotalDays())
	date := startDate

	for _, week := range t.Weeks {
		for _, day := range week.Days {
			var exercises []SessionExercise
			if !day.IsRestDay {
				for _, ex := range flattenDayExercises(day) {
					exercises = append(exercises, materializeExercise(ex))
				}
			}
			if exercises == nil {
				exercises = []SessionExercise{}
			}

			notes := ""
			if day.IsRestDay {
				notes = RestDayNote
			}

			drafts = append(drafts, SessionDraft{
				Date:       date.Format(DateLayout),
				Time:       startTime,
				EndTime:    endTime,
				WeekNumber: week.WeekNumber,
				DayNumber:  day.DayNumber,
				IsRestDay:  day.IsRestDay,
				Exercises:  exercises,
				Notes:      notes,
			})
			date = date.AddDate(0, 0, 1)
		}
	}
	return drafts
}

// materializeExercise takes a value-copy of the prescription, filling
// defaults for missing fields. The copy is what makes later template edits
// invisible to already-materialized sessions.
func materializeExercise(ex ProgramExercise) SessionExercise {
	out := SessionExercise{
		ExerciseID:  ex.ExerciseID,
		Sets:        ex.Sets,
		Reps:        ex.Reps,
		Weight:      ex.Weight,
		RestSeconds: ex.RestSeconds,
		Notes:       ex.Notes,
		ActualSets:  []ActualSet{},
	}
	if out.Sets == 0 {
		out.Sets = DefaultSets
	}
	if out.Reps == "" {
		out.Reps = DefaultReps
	}
	if out.Weight == "" {
		out.Weight = DefaultWeight
	}
	if out.RestSeconds == 0 {
		out.RestSeconds = DefaultRestSeconds
	}
	return out
}

// TemplateEndDate returns the date of the last materialized session:
// startDate + totalDays - 1. Used for previews, never stored. An empty
// template ends the day before it starts, which callers treat as "no
// sessions".
func TemplateEndDate(t *ProgramTemplate, startDate time.Time) time.Time {
	return startDate.AddDate(0, 0, t.TotalDays()-1)
}
