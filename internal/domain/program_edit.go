package domain

import "fmt"

// Structural mutations over the template tree. Each mutation edits the
// receiver in place and re-establishes the numbering invariants before
// returning, so a persisted template is always structurally valid.

const maxDaysPerWeek = 7

// renumber re-establishes contiguous week numbers and globally contiguous
// day numbers after any mutation that changes week/day counts.
func (t *ProgramTemplate) renumber() {
	dayN := 0
	for i := range t.Weeks {
		t.Weeks[i].WeekNumber = i + 1
		for j := range t.Weeks[i].Days {
			dayN++
			t.Weeks[i].Days[j].DayNumber = dayN
		}
	}
}

func newEmptyDay() Day {
	return Day{Sections: []Section{}, IsRestDay: false}
}

// AddWeek appends a new week with the same day count as the first week
// (falling back to the nominal frequency, then to 7), each day empty and
// not a rest day.
func (t *ProgramTemplate) AddWeek() {
	dayCount := t.DaysPerWeek
	if len(t.Weeks) > 0 {
		dayCount = len(t.Weeks[0].Days)
	}
	if dayCount <= 0 || dayCount > maxDaysPerWeek {
		dayCount = maxDaysPerWeek
	}

	days := make([]Day, dayCount)
	for i := range days {
		days[i] = newEmptyDay()
	}
	t.Weeks = append(t.Weeks, Week{Days: days})
	t.renumber()
}

// DeleteLastWeek removes the last week. A template must always keep at
// least one week.
func (t *ProgramTemplate) DeleteLastWeek() error {
	if len(t.Weeks) <= 1 {
		return &ValidationError{Reason: "a program must have at least one week"}
	}
	t.Weeks = t.Weeks[:len(t.Weeks)-1]
	t.renumber()
	return nil
}

// SetWeekFrequency grows or shrinks the day list of exactly one week.
// Growing appends fresh empty days; shrinking truncates from the end and
// discards any sections/exercises on the removed days.
func (t *ProgramTemplate) SetWeekFrequency(weekNumber, dayCount int) error {
	if dayCount < 1 || dayCount > maxDaysPerWeek {
		return &ValidationError{Reason: fmt.Sprintf("day count must be between 1 and %d", maxDaysPerWeek)}
	}
	week := t.week(weekNumber)
	if week == nil {
		return fmt.Errorf("week %d: %w", weekNumber, ErrNotFound)
	}

	for len(week.Days) < dayCount {
		week.Days = append(week.Days, newEmptyDay())
	}
	week.Days = week.Days[:dayCount]
	t.renumber()
	return nil
}

// AddDay appends one day to every week, capped at 7 days per week.
func (t *ProgramTemplate) AddDay() error {
	if len(t.Weeks) == 0 {
		return &ValidationError{Reason: "a program must have at least one week"}
	}
	if len(t.Weeks[0].Days) >= maxDaysPerWeek {
		return &ValidationError{Reason: "a week cannot have more than 7 days"}
	}
	for i := range t.Weeks {
		t.Weeks[i].Days = append(t.Weeks[i].Days, newEmptyDay())
	}
	t.DaysPerWeek = len(t.Weeks[0].Days)
	t.renumber()
	return nil
}

// RemoveDay removes the day at the given position (1-based, within the
// week) from every week. Each week must keep at least one day.
func (t *ProgramTemplate) RemoveDay(position int) error {
	if len(t.Weeks) == 0 || len(t.Weeks[0].Days) <= 1 {
		return &ValidationError{Reason: "a week must have at least one day"}
	}
	for i := range t.Weeks {
		if position < 1 || position > len(t.Weeks[i].Days) {
			return &ValidationError{Reason: fmt.Sprintf("no day at position %d", position)}
		}
		t.Weeks[i].Days = append(t.Weeks[i].Days[:position-1], t.Weeks[i].Days[position:]...)
	}
	t.DaysPerWeek = len(t.Weeks[0].Days)
	t.renumber()
	return nil
}

// ToggleRestDay flips the rest flag of one day. Turning a day into a rest
// day clears its sections and exercises; the caller confirms the content
// loss before invoking this.
func (t *ProgramTemplate) ToggleRestDay(dayNumber int) error {
	day := t.day(dayNumber)
	if day == nil {
		return fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	day.IsRestDay = !day.IsRestDay
	if day.IsRestDay {
		day.Sections = []Section{}
		day.Exercises = nil
	}
	return nil
}

// restPatterns maps a weekly training frequency to the 1-based positions
// of training days within the week.
var restPatterns = map[int][]int{
	3: {1, 3, 5},
	4: {1, 2, 4, 5},
	5: {1, 2, 3, 4, 5},
	6: {1, 2, 3, 4, 5, 6},
	7: {1, 2, 3, 4, 5, 6, 7},
}

// SetRestPattern marks the days of one week as training or rest days
// according to the preset pattern for the given frequency. Days becoming
// rest days lose their content, same as ToggleRestDay.
func (t *ProgramTemplate) SetRestPattern(weekNumber, frequency int) error {
	pattern, ok := restPatterns[frequency]
	if !ok {
		return &ValidationError{Reason: fmt.Sprintf("no rest pattern for frequency %d", frequency)}
	}
	week := t.week(weekNumber)
	if week == nil {
		return fmt.Errorf("week %d: %w", weekNumber, ErrNotFound)
	}

	training := make(map[int]bool, len(pattern))
	for _, p := range pattern {
		training[p] = true
	}
	for i := range week.Days {
		rest := !training[i+1]
		week.Days[i].IsRestDay = rest
		if rest {
			week.Days[i].Sections = []Section{}
			week.Days[i].Exercises = nil
		}
	}
	return nil
}

// AddSection appends a section to a day. Rest days cannot hold sections.
func (t *ProgramTemplate) AddSection(dayNumber int, section Section) error {
	day := t.day(dayNumber)
	if day == nil {
		return fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	if day.IsRestDay {
		return &ValidationError{Reason: "cannot add a section to a rest day"}
	}
	if section.Exercises == nil {
		section.Exercises = []ProgramExercise{}
	}
	day.Sections = append(day.Sections, section)
	return nil
}

// DeleteSection removes a section from a day by id.
func (t *ProgramTemplate) DeleteSection(dayNumber int, sectionID string) error {
	day := t.day(dayNumber)
	if day == nil {
		return fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	for i, s := range day.Sections {
		if s.ID == sectionID {
			day.Sections = append(day.Sections[:i], day.Sections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("section %s: %w", sectionID, ErrNotFound)
}

// AddExercise appends an exercise to a section's list.
func (t *ProgramTemplate) AddExercise(dayNumber int, sectionID string, exercise ProgramExercise) error {
	section, err := t.section(dayNumber, sectionID)
	if err != nil {
		return err
	}
	section.Exercises = append(section.Exercises, exercise)
	return nil
}

// DeleteExercise removes an exercise from a section by exercise id.
func (t *ProgramTemplate) DeleteExercise(dayNumber int, sectionID, exerciseID string) error {
	section, err := t.section(dayNumber, sectionID)
	if err != nil {
		return err
	}
	for i, ex := range section.Exercises {
		if ex.ExerciseID == exerciseID {
			section.Exercises = append(section.Exercises[:i], section.Exercises[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
}

// DayExercises returns a deep copy of one day's flattened exercise list,
// in section order then exercise order (legacy flat days use their list
// directly). The snapshot is safe to hold across later edits.
func (t *ProgramTemplate) DayExercises(dayNumber int) ([]ProgramExercise, error) {
	day := t.day(dayNumber)
	if day == nil {
		return nil, fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	return flattenDayExercises(*day), nil
}

// PasteDayExercises appends a snapshot's exercises onto the target day: into
// the day's last section when the day is section-based, otherwise onto the
// legacy flat list. Paste never replaces existing content.
func (t *ProgramTemplate) PasteDayExercises(dayNumber int, snapshot []ProgramExercise) error {
	day := t.day(dayNumber)
	if day == nil {
		return fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	if day.IsRestDay {
		return &ValidationError{Reason: "cannot paste exercises onto a rest day"}
	}
	copied := append([]ProgramExercise(nil), snapshot...)
	if len(day.Sections) > 0 {
		last := &day.Sections[len(day.Sections)-1]
		last.Exercises = append(last.Exercises, copied...)
		return nil
	}
	day.Exercises = append(day.Exercises, copied...)
	return nil
}

func (t *ProgramTemplate) week(weekNumber int) *Week {
	for i := range t.Weeks {
		if t.Weeks[i].WeekNumber == weekNumber {
			return &t.Weeks[i]
		}
	}
	return nil
}

func (t *ProgramTemplate) day(dayNumber int) *Day {
	for i := range t.Weeks {
		for j := range t.Weeks[i].Days {
			if t.Weeks[i].Days[j].DayNumber == dayNumber {
				return &t.Weeks[i].Days[j]
			}
		}
	}
	return nil
}

func (t *ProgramTemplate) section(dayNumber int, sectionID string) (*Section, error) {
	day := t.day(dayNumber)
	if day == nil {
		return nil, fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	for i := range day.Sections {
		if day.Sections[i].ID == sectionID {
			return &day.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("section %s: %w", sectionID, ErrNotFound)
}

func flattenDayExercises(day Day) []ProgramExercise {
	if len(day.Sections) > 0 {
		var out []ProgramExercise
		for _, s := range day.Sections {
			out = append(out, s.Exercises...)
		}
		return out
	}
	return append([]ProgramExercise(nil), day.Exercises...)
}
