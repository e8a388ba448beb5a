package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coachdesk/internal/domain"
)

// stubTemplateRepo counts backend hits so cache behavior is observable.
type stubTemplateRepo struct {
	templates map[string]*domain.ProgramTemplate
	getCalls  int
	listCalls int
}

func newStubTemplateRepo() *stubTemplateRepo {
	return &stubTemplateRepo{templates: map[string]*domain.ProgramTemplate{}}
}

func (s *stubTemplateRepo) Create(_ context.Context, t *domain.ProgramTemplate) error {
	s.templates[t.ID] = t
	return nil
}

func (s *stubTemplateRepo) GetByID(_ context.Context, id string) (*domain.ProgramTemplate, error) {
	s.getCalls++
	t, ok := s.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return t.Clone(), nil
}

func (s *stubTemplateRepo) List(_ context.Context, _ string) ([]*domain.ProgramTemplate, error) {
	s.listCalls++
	out := make([]*domain.ProgramTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (s *stubTemplateRepo) Update(_ context.Context, t *domain.ProgramTemplate) error {
	s.templates[t.ID] = t.Clone()
	return nil
}

func (s *stubTemplateRepo) Delete(_ context.Context, id string) error {
	delete(s.templates, id)
	return nil
}

func setupCachedRepo(t *testing.T) (*CachedTemplateRepository, *stubTemplateRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	backend := newStubTemplateRepo()
	return NewCachedTemplateRepository(backend, NewRedisCacheRepository(client)), backend, mr
}

func TestCachedTemplateGetByIDReadThrough(t *testing.T) {
	repo, backend, _ := setupCachedRepo(t)
	ctx := context.Background()

	tmpl := &domain.ProgramTemplate{ID: "t1", Name: "Strength"}
	require.NoError(t, repo.Create(ctx, tmpl))

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Strength", got.Name)

	_, err = repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.getCalls)

	// Update invalidates the entry so the next read sees the new name.
	tmpl.Name = "Strength v2"
	require.NoError(t, repo.Update(ctx, tmpl))

	got, err = repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Strength v2", got.Name)
	assert.Equal(t, 2, backend.getCalls)
}

func TestCachedTemplateListInvalidatedByWrites(t *testing.T) {
	repo, backend, _ := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.ProgramTemplate{ID: "t1", Name: "A", CreatedBy: "tr1"}))

	list, err := repo.List(ctx, "tr1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = repo.List(ctx, "tr1")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.listCalls)

	// Creating another template clears every trainer's list entry.
	require.NoError(t, repo.Create(ctx, &domain.ProgramTemplate{ID: "t2", Name: "B", CreatedBy: "tr1"}))

	list, err = repo.List(ctx, "tr1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, backend.listCalls)

	require.NoError(t, repo.Delete(ctx, "t2"))

	list, err = repo.List(ctx, "tr1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 3, backend.listCalls)
}

func TestCachedTemplateEntryExpires(t *testing.T) {
	repo, backend, mr := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.ProgramTemplate{ID: "t1", Name: "A"}))

	_, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.getCalls)

	mr.FastForward(6 * time.Minute)

	_, err = repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.getCalls)
}
