package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/ranking"
)

func fp(v float64) *float64 { return &v }

// memActivities serves canned activity lists per user.
type memActivities struct {
	byUser map[uint64][]model.Activity
}

func (m *memActivities) ListByUser(_ context.Context, userID uint64) ([]model.Activity, error) {
	return m.byUser[userID], nil
}

// memSink records every upsert so tests can inspect what was written.
type memSink struct {
	mu     sync.Mutex
	latest map[uint64]model.UserStats
	writes int
}

func (m *memSink) Upsert(_ context.Context, s model.UserStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		m.latest = make(map[uint64]model.UserStats)
	}
	m.latest[s.UserID] = s
	m.writes++
	return nil
}

type memUsers struct {
	users []model.User
}

func (m *memUsers) ListAll(_ context.Context) ([]model.User, error) {
	return m.users, nil
}

func TestRecomputeForUserWritesAndReturns(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	activities := &memActivities{byUser: map[uint64][]model.Activity{
		1: {
			{UserID: 1, Duration: 30, Distance: 5, Pace: fp(6), AverageSpeed: fp(10)},
			{UserID: 1, Duration: 60, Distance: 12, Pace: fp(5), AverageSpeed: fp(12)},
		},
	}}
	sink := &memSink{}
	svc := NewStatsService(activities, sink, &memUsers{}, func() time.Time { return now })

	got, err := svc.RecomputeForUser(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, uint64(1), got.UserID)
	require.Equal(t, 2, got.TotalWorkouts)
	require.InDelta(t, 17.0, got.TotalDistance, 1e-9)
	require.InDelta(t, 12.0, got.MaxDistance, 1e-9)
	require.InDelta(t, 90.0, got.TotalDuration, 1e-9)
	require.InDelta(t, 11.0, got.AverageSpeed, 1e-9)
	require.NotNil(t, got.FastestPace)
	require.InDelta(t, 5.0, *got.FastestPace, 1e-9)
	require.Equal(t, now, got.LastUpdated)

	require.Equal(t, got, sink.latest[1])
}

func TestRecomputeForUserEmptyHistory(t *testing.T) {
	sink := &memSink{}
	svc := NewStatsService(&memActivities{}, sink, &memUsers{}, nil)

	got, err := svc.RecomputeForUser(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, uint64(9), got.UserID)
	require.Zero(t, got.TotalWorkouts)
	require.Nil(t, got.FastestPace)
	require.Equal(t, 1, sink.writes)
}

func TestRankingRecomputesEveryUser(t *testing.T) {
	activities := &memActivities{byUser: map[uint64][]model.Activity{
		1: {{UserID: 1, Duration: 30, Distance: 5}},
		2: {
			{UserID: 2, Duration: 30, Distance: 5},
			{UserID: 2, Duration: 30, Distance: 5},
		},
	}}
	sink := &memSink{}
	users := &memUsers{users: []model.User{
		{ID: 1, Email: "one@example.com"},
		{ID: 2, Email: "two@example.com"},
	}}
	svc := NewStatsService(activities, sink, users, nil)

	entries, err := svc.Ranking(context.Background(), ranking.ByTotalWorkouts)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	require.Equal(t, "two@example.com", entries[0].Email)
	require.Equal(t, 2, entries[0].TotalWorkouts)
	require.Equal(t, "one@example.com", entries[1].Email)

	// a fresh summary was written for every listed user
	require.Len(t, sink.latest, 2)
}

func TestRecomputeForUserConcurrentSameUser(t *testing.T) {
	activities := &memActivities{byUser: map[uint64][]model.Activity{
		1: {{UserID: 1, Duration: 10, Distance: 2}},
	}}
	sink := &memSink{}
	svc := NewStatsService(activities, sink, &memUsers{}, nil)

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecomputeForUser(context.Background(), 1)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, n, sink.writes)
	require.Equal(t, 1, sink.latest[1].TotalWorkouts)
}

func TestValidateActivity(t *testing.T) {
	ok := model.Activity{Name: "Run", Type: "running", Duration: 30, Distance: 5}
	require.NoError(t, ValidateActivity(ok))

	// zero means "not measured" and is allowed
	zeroes := model.Activity{Duration: 0, Distance: 0, Pace: fp(0), AverageSpeed: fp(0)}
	require.NoError(t, ValidateActivity(zeroes))

	cases := []model.Activity{
		{Duration: -1, Distance: 5},
		{Duration: 30, Distance: -0.1},
		{Duration: 30, Distance: 5, Pace: fp(-2)},
		{Duration: 30, Distance: 5, AverageSpeed: fp(-8)},
	}
	for _, a := range cases {
		require.ErrorIs(t, ValidateActivity(a), ErrInvalidActivityData)
	}
}
