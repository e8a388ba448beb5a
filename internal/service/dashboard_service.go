package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coachdesk/coachdesk/internal/domain"
)

// DashboardSummary is the trainer's at-a-glance view.
type DashboardSummary struct {
	TotalClients     int64 `json:"total_clients"`
	ActivePrograms   int64 `json:"active_programs"`
	SessionsToday    int64 `json:"sessions_today"`
	SessionsThisWeek int64 `json:"sessions_this_week"`
}

type DashboardService struct {
	clientRepo   domain.ClientRepository
	instanceRepo domain.ProgramInstanceRepository
	sessionRepo  domain.SessionRepository
	now          func() time.Time
}

func NewDashboardService(clientRepo domain.ClientRepository, instanceRepo domain.ProgramInstanceRepository, sessionRepo domain.SessionRepository) *DashboardService {
	return &DashboardService{
		clientRepo:   clientRepo,
		instanceRepo: instanceRepo,
		sessionRepo:  sessionRepo,
		now:          time.Now,
	}
}

// Summary aggregates the four dashboard counters concurrently. One failing
// counter fails the whole summary.
func (s *DashboardService) Summary(ctx context.Context, trainerID string) (*DashboardSummary, error) {
	today := s.now()
	todayStr := today.Format(domain.DateLayout)

	// Week runs Monday through Sunday.
	offset := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -offset).Format(domain.DateLayout)
	weekEnd := today.AddDate(0, 0, 6-offset).Format(domain.DateLayout)

	active := []string{domain.SessionStatusScheduled, domain.SessionStatusInProgress, domain.SessionStatusCompleted}

	summary := &DashboardSummary{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.clientRepo.CountByTrainer(gctx, trainerID)
		summary.TotalClients = n
		return err
	})
	g.Go(func() error {
		n, err := s.instanceRepo.CountActiveByTrainer(gctx, trainerID)
		summary.ActivePrograms = n
		return err
	})
	g.Go(func() error {
		n, err := s.sessionRepo.CountByDateRange(gctx, trainerID, todayStr, todayStr, active)
		summary.SessionsToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.sessionRepo.CountByDateRange(gctx, trainerID, weekStart, weekEnd, active)
		summary.SessionsThisWeek = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
