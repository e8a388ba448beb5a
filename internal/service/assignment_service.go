package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachdesk/coachdesk/internal/domain"
)

// AssignmentService owns the program assignment transaction: conflict
// detection, destructive replacement of a client's prior active program,
// and materialization of the template into dated sessions.
type AssignmentService struct {
	templateRepo domain.TemplateRepository
	clientRepo   domain.ClientRepository
	instanceRepo domain.ProgramInstanceRepository
	sessionRepo  domain.SessionRepository
}

func NewAssignmentService(
	templateRepo domain.TemplateRepository,
	clientRepo domain.ClientRepository,
	instanceRepo domain.ProgramInstanceRepository,
	sessionRepo domain.SessionRepository,
) *AssignmentService {
	return &AssignmentService{
		templateRepo: templateRepo,
		clientRepo:   clientRepo,
		instanceRepo: instanceRepo,
		sessionRepo:  sessionRepo,
	}
}

// ConflictRecord describes one client whose active program would be
// destroyed by a new assignment.
type ConflictRecord struct {
	ClientID                   string `json:"client_id"`
	ClientName                 string `json:"client_name"`
	InstanceID                 string `json:"instance_id"`
	CurrentProgramName         string `json:"current_program_name"`
	RemainingScheduledSessions int    `json:"remaining_scheduled_sessions"`
}

// ClientAssignment is the per-client outcome of an assignment batch.
// Failed clients carry an error message; the batch continues past them.
type ClientAssignment struct {
	ClientID        string `json:"client_id"`
	InstanceID      string `json:"instance_id,omitempty"`
	SessionsCreated int    `json:"sessions_created"`
	Error           string `json:"error,omitempty"`
}

type AssignRequest struct {
	TemplateID string
	ClientIDs  []string
	TrainerID  string
	StartDate  string // YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	Confirmed  bool
}

// AssignResult is either a confirmation request (conflicts present, nothing
// created) or the outcome of a committed batch.
type AssignResult struct {
	RequiresConfirmation bool               `json:"requires_confirmation"`
	Conflicts            []ConflictRecord   `json:"conflicts,omitempty"`
	Results              []ClientAssignment `json:"results,omitempty"`
	ClientsAssigned      int                `json:"clients_assigned"`
	SessionsCreated      int                `json:"sessions_created"`
}

// DetectConflicts reports, for each target client in input order, the
// active program instance a new assignment would destroy. Clients without
// an active instance produce no record. Read-only; safe to call on every
// selection change.
func (s *AssignmentService) DetectConflicts(ctx context.Context, clientIDs []string) ([]ConflictRecord, error) {
	conflicts := make([]ConflictRecord, 0)

	for _, clientID := range clientIDs {
		instance, err := s.instanceRepo.GetActiveByClient(ctx, clientID)
		if err != nil {
			if errors.Is(err, domain.ErrInstanceNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to look up active instance for client %s: %w", clientID, err)
		}

		record := ConflictRecord{
			ClientID:           clientID,
			InstanceID:         instance.ID,
			CurrentProgramName: "Unknown program",
		}

		if client, err := s.clientRepo.GetByID(ctx, clientID); err == nil {
			record.ClientName = client.Name
		}
		if tmpl, err := s.templateRepo.GetByID(ctx, instance.TemplateID); err == nil {
			record.CurrentProgramName = tmpl.Name
		}

		count, err := s.sessionRepo.CountByInstanceAndStatus(ctx, instance.ID, []string{domain.SessionStatusScheduled})
		if err != nil {
			return nil, fmt.Errorf("failed to count remaining sessions: %w", err)
		}
		record.RemainingScheduledSessions = int(count)

		conflicts = append(conflicts, record)
	}

	return conflicts, nil
}

// Assign runs the assignment transaction. With unresolved conflicts and no
// confirmation, it returns the full conflict list and creates nothing.
// Once past the confirmation gate, each client is processed independently:
// a structural or transport failure for one client is recorded in its
// result and the batch continues. Partial effects of a failed client are
// not rolled back.
func (s *AssignmentService) Assign(ctx context.Context, req AssignRequest) (*AssignResult, error) {
	if len(req.ClientIDs) == 0 {
		return nil, &domain.ValidationError{Reason: "no clients selected"}
	}
	if req.StartDate == "" {
		return nil, &domain.ValidationError{Reason: "no start date"}
	}
	startDate, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return nil, &domain.ValidationError{Reason: fmt.Sprintf("start date %q is not a valid YYYY-MM-DD date", req.StartDate)}
	}

	tmpl, err := s.templateRepo.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	// Confirmation gate: no client is touched until the caller has seen
	// the full conflict list. The replacement below is irreversible.
	conflicts, err := s.DetectConflicts(ctx, req.ClientIDs)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 && !req.Confirmed {
		return &AssignResult{
			RequiresConfirmation: true,
			Conflicts:            conflicts,
		}, nil
	}

	result := &AssignResult{Results: make([]ClientAssignment, 0, len(req.ClientIDs))}

	for _, clientID := range req.ClientIDs {
		outcome := s.assignOne(ctx, tmpl, clientID, req, startDate)
		if outcome.Error == "" {
			result.ClientsAssigned++
			result.SessionsCreated += outcome.SessionsCreated
		}
		result.Results = append(result.Results, outcome)
	}

	return result, nil
}

func (s *AssignmentService) assignOne(ctx context.Context, tmpl *domain.ProgramTemplate, clientID string, req AssignRequest, startDate time.Time) ClientAssignment {
	outcome := ClientAssignment{ClientID: clientID}

	if err := tmpl.CheckStructure(); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	// Destructive replacement of the prior active program: hard delete,
	// the instance first owns its sessions.
	existing, err := s.instanceRepo.GetActiveByClient(ctx, clientID)
	if err != nil && !errors.Is(err, domain.ErrInstanceNotFound) {
		outcome.Error = err.Error()
		return outcome
	}
	if existing != nil {
		if err := s.sessionRepo.DeleteByInstance(ctx, existing.ID); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		if err := s.instanceRepo.Delete(ctx, existing.ID); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
	}

	instance := &domain.ProgramInstance{
		TemplateID:     tmpl.ID,
		ClientID:       clientID,
		TrainerID:      req.TrainerID,
		StartDate:      req.StartDate,
		Status:         domain.InstanceStatusActive,
		CurrentWeek:    1,
		CurrentDay:     1,
		CompletedWeeks: []int{},
		CompletedDays:  []int{},
	}
	if err := s.instanceRepo.Create(ctx, instance); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.InstanceID = instance.ID

	for _, draft := range domain.ExpandTemplate(tmpl, startDate, req.StartTime, req.EndTime) {
		session := &domain.WorkoutSession{
			ClientID:          clientID,
			TrainerID:         req.TrainerID,
			ProgramInstanceID: instance.ID,
			Date:              draft.Date,
			Time:              draft.Time,
			EndTime:           draft.EndTime,
			WeekNumber:        draft.WeekNumber,
			DayNumber:         draft.DayNumber,
			Exercises:         draft.Exercises,
			Status:            domain.SessionStatusScheduled,
			Notes:             draft.Notes,
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			// No rollback: sessions created so far stay. The caller sees
			// the partial count and the error for this client.
			outcome.Error = fmt.Sprintf("created %d of %d sessions: %v", outcome.SessionsCreated, tmpl.TotalDays(), err)
			return outcome
		}
		outcome.SessionsCreated++
	}

	return outcome
}

// CompleteDay records one finished program day on an instance and advances
// its progress cursor. The week is marked complete once every one of its
// days is.
func (s *AssignmentService) CompleteDay(ctx context.Context, instanceID string, dayNumber int) error {
	instance, err := s.instanceRepo.GetByID(ctx, instanceID)
	if err != nil {
		return err
	}
	tmpl, err := s.templateRepo.GetByID(ctx, instance.TemplateID)
	if err != nil {
		return err
	}

	week := weekOfDay(tmpl, dayNumber)
	if week == nil {
		return &domain.ValidationError{Reason: fmt.Sprintf("program has no day %d", dayNumber)}
	}

	done := make(map[int]bool, len(instance.CompletedDays)+1)
	for _, d := range instance.CompletedDays {
		done[d] = true
	}
	done[dayNumber] = true

	weekDone := true
	for _, d := range week.Days {
		if !done[d.DayNumber] {
			weekDone = false
			break
		}
	}

	nextDay := dayNumber + 1
	nextWeek := week.WeekNumber
	if nextDay > tmpl.TotalDays() {
		nextDay = tmpl.TotalDays()
		nextWeek = len(tmpl.Weeks)
	} else if w := weekOfDay(tmpl, nextDay); w != nil {
		nextWeek = w.WeekNumber
	}

	return s.instanceRepo.MarkDayCompleted(ctx, instanceID, week.WeekNumber, dayNumber, nextWeek, nextDay, weekDone)
}

// DeleteInstance removes an instance together with every session it
// generated.
func (s *AssignmentService) DeleteInstance(ctx context.Context, instanceID string) error {
	if _, err := s.instanceRepo.GetByID(ctx, instanceID); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteByInstance(ctx, instanceID); err != nil {
		return fmt.Errorf("failed to delete instance sessions: %w", err)
	}
	return s.instanceRepo.Delete(ctx, instanceID)
}

func weekOfDay(tmpl *domain.ProgramTemplate, dayNumber int) *domain.Week {
	for i := range tmpl.Weeks {
		for _, d := range tmpl.Weeks[i].Days {
			if d.DayNumber == dayNumber {
				return &tmpl.Weeks[i]
			}
		}
	}
	return nil
}
