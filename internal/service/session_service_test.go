package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coachdesk/internal/domain"
)

func newSessionService(f *fixture) *SessionService {
	return NewSessionService(f.sessions, f.clients)
}

func TestCreateStandaloneSession(t *testing.T) {
	f := newFixture()
	svc := newSessionService(f)
	ctx := context.Background()

	c := f.client("Ana")

	created, err := svc.Create(ctx, &domain.WorkoutSession{
		ClientID: c.ID,
		Date:     "2024-06-10",
		Time:     "10:00",
		EndTime:  "11:00",
		Notes:    "Assessment",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	assert.Equal(t, domain.SessionStatusScheduled, created.Status)
	assert.Empty(t, created.ProgramInstanceID)
	assert.Equal(t, "t1", created.TrainerID) // inherited from the client
	assert.NotNil(t, created.Exercises)
	assert.Empty(t, created.Exercises)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", stored.Date)
}

func TestCreateStandaloneSessionWithExercises(t *testing.T) {
	f := newFixture()
	svc := newSessionService(f)
	ctx := context.Background()

	c := f.client("Ana")

	created, err := svc.Create(ctx, &domain.WorkoutSession{
		ClientID: c.ID,
		Date:     "2024-06-10",
		Time:     "10:00",
		EndTime:  "11:00",
		Exercises: []domain.SessionExercise{
			{ExerciseID: "ex-squat", Sets: 3, Reps: "10", RestSeconds: 60},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Exercises, 1)
	assert.Equal(t, "ex-squat", created.Exercises[0].ExerciseID)
}

func TestCreateStandaloneSessionValidation(t *testing.T) {
	f := newFixture()
	svc := newSessionService(f)
	ctx := context.Background()

	c := f.client("Ana")

	var verr *domain.ValidationError

	_, err := svc.Create(ctx, &domain.WorkoutSession{Date: "2024-06-10"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	_, err = svc.Create(ctx, &domain.WorkoutSession{ClientID: c.ID, Date: "June 10"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	_, err = svc.Create(ctx, &domain.WorkoutSession{ClientID: "missing", Date: "2024-06-10"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	assert.Empty(t, f.store.sessions)
}
