package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coachdesk/coachdesk/internal/domain"
)

type ClientService struct {
	clientRepo   domain.ClientRepository
	instanceRepo domain.ProgramInstanceRepository
	sessionRepo  domain.SessionRepository
}

func NewClientService(clientRepo domain.ClientRepository, instanceRepo domain.ProgramInstanceRepository, sessionRepo domain.SessionRepository) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		instanceRepo: instanceRepo,
		sessionRepo:  sessionRepo,
	}
}

func (s *ClientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if strings.TrimSpace(client.Name) == "" {
		return nil, &domain.ValidationError{Reason: "client name is required"}
	}
	if client.Status == "" {
		client.Status = domain.ClientStatusActive
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, trainerID string) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx, trainerID)
}

func (s *ClientService) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if strings.TrimSpace(client.Name) == "" {
		return nil, &domain.ValidationError{Reason: "client name is required"}
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client together with their program instances and every
// session those instances generated.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	instances, err := s.instanceRepo.ListByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list client instances: %w", err)
	}
	for _, instance := range instances {
		if err := s.sessionRepo.DeleteByInstance(ctx, instance.ID); err != nil {
			return fmt.Errorf("failed to delete instance sessions: %w", err)
		}
		if err := s.instanceRepo.Delete(ctx, instance.ID); err != nil {
			return fmt.Errorf("failed to delete instance: %w", err)
		}
	}
	return s.clientRepo.Delete(ctx, id)
}
