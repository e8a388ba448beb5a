package service

import (
	"context"
	"time"

	"github.com/coachdesk/coachdesk/internal/domain"
)

type SessionService struct {
	sessionRepo domain.SessionRepository
	clientRepo  domain.ClientRepository
}

func NewSessionService(sessionRepo domain.SessionRepository, clientRepo domain.ClientRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		clientRepo:  clientRepo,
	}
}

// Create schedules a one-off session outside any program: the trainer picks
// a client and a calendar slot, optionally with an ad-hoc exercise list.
// The session carries no instance reference and is untouched by assignment
// replacements.
func (s *SessionService) Create(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if session.ClientID == "" {
		return nil, &domain.ValidationError{Reason: "client is required"}
	}
	if _, err := time.Parse(domain.DateLayout, session.Date); err != nil {
		return nil, &domain.ValidationError{Reason: "session date must be YYYY-MM-DD"}
	}
	client, err := s.clientRepo.GetByID(ctx, session.ClientID)
	if err != nil {
		return nil, err
	}
	if session.TrainerID == "" {
		session.TrainerID = client.TrainerID
	}
	session.ProgramInstanceID = ""
	session.Status = domain.SessionStatusScheduled
	if session.Exercises == nil {
		session.Exercises = []domain.SessionExercise{}
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// List filters sessions by any combination of client, instance, date range
// and status. Results come back in calendar order.
func (s *SessionService) List(ctx context.Context, clientID, instanceID, from, to, status string) ([]*domain.WorkoutSession, error) {
	filter := map[string]interface{}{}
	if clientID != "" {
		filter["client_id"] = clientID
	}
	if instanceID != "" {
		filter["program_instance_id"] = instanceID
	}
	if status != "" {
		filter["status"] = status
	}
	if from != "" || to != "" {
		if from != "" {
			if _, err := time.Parse(domain.DateLayout, from); err != nil {
				return nil, &domain.ValidationError{Reason: "from date must be YYYY-MM-DD"}
			}
		}
		if to != "" {
			if _, err := time.Parse(domain.DateLayout, to); err != nil {
				return nil, &domain.ValidationError{Reason: "to date must be YYYY-MM-DD"}
			}
		}
		dateRange := map[string]interface{}{}
		if from != "" {
			dateRange["$gte"] = from
		}
		if to != "" {
			dateRange["$lte"] = to
		}
		filter["date"] = dateRange
	}
	return s.sessionRepo.List(ctx, filter)
}

// UpdateStatus moves a session through its lifecycle. Terminal sessions
// cannot be rescheduled.
func (s *SessionService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case domain.SessionStatusScheduled, domain.SessionStatusInProgress,
		domain.SessionStatusCompleted, domain.SessionStatusCancelled:
	default:
		return &domain.ValidationError{Reason: "unknown session status " + status}
	}
	current, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == domain.SessionStatusCompleted && status == domain.SessionStatusScheduled {
		return &domain.ValidationError{Reason: "completed session cannot return to scheduled"}
	}
	return s.sessionRepo.UpdateStatus(ctx, id, status)
}

// LogSets replaces the execution log of one exercise within a session.
func (s *SessionService) LogSets(ctx context.Context, sessionID, exerciseID string, sets []domain.ActualSet) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range session.Exercises {
		if session.Exercises[i].ExerciseID == exerciseID {
			session.Exercises[i].ActualSets = sets
			found = true
			break
		}
	}
	if !found {
		return nil, &domain.ValidationError{Reason: "session has no exercise " + exerciseID}
	}
	if session.Status == domain.SessionStatusScheduled {
		session.Status = domain.SessionStatusInProgress
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.sessionRepo.Delete(ctx, id)
}
