// Package service glues the pure cores (aggregation, ranking) to the
// repositories and enforces the write discipline around the cached
// statistics.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/ranking"
	"github.com/sportplus/backend/internal/stats"
)

// ActivitySource lists a user's activities. *repository.ActivityRepo
// satisfies it.
type ActivitySource interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.Activity, error)
}

// StatsSink persists the derived summary. *repository.StatsRepo
// satisfies it.
type StatsSink interface {
	Upsert(ctx context.Context, s model.UserStats) error
}

// AccountSource enumerates accounts for the ranking view.
// *repository.UserRepo satisfies it.
type AccountSource interface {
	ListAll(ctx context.Context) ([]model.User, error)
}

// StatsService recomputes and stores per-user statistics. Recomputes
// for the same user are serialized through a per-user mutex so a stale
// read can never overwrite a newer write; different users do not
// contend with each other.
type StatsService struct {
	activities ActivitySource
	sink       StatsSink
	accounts   AccountSource
	now        func() time.Time

	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// NewStatsService wires a stats service over the given collaborators.
// now may be nil, in which case the wall clock is used.
func NewStatsService(activities ActivitySource, sink StatsSink, accounts AccountSource, now func() time.Time) *StatsService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &StatsService{
		activities: activities,
		sink:       sink,
		accounts:   accounts,
		now:        now,
		locks:      map[uint64]*sync.Mutex{},
	}
}

// userLock returns the mutex dedicated to one user id, creating it on
// first use. The map itself is guarded by mu; entries are never removed
// since the user population is small and stable.
func (s *StatsService) userLock(userID uint64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// RecomputeForUser reads the user's full activity set, aggregates it
// and rewrites the cached summary. The read-aggregate-write sequence
// holds the user's lock, so concurrent recomputes for one user apply in
// order. The freshly computed value is returned.
func (s *StatsService) RecomputeForUser(ctx context.Context, userID uint64) (model.UserStats, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	activities, err := s.activities.ListByUser(ctx, userID)
	if err != nil {
		return model.UserStats{}, err
	}
	summary := stats.Recompute(userID, activities, s.now())
	if err := s.sink.Upsert(ctx, summary); err != nil {
		return model.UserStats{}, err
	}
	return summary, nil
}

// Ranking recomputes every known user's statistics and returns the
// leaderboard for the requested key. The per-user steps use the same
// serialization as RecomputeForUser; the loop as a whole is not atomic,
// which is acceptable for a leaderboard view. The ranking is always
// built from fresh statistics, never from the cache.
func (s *StatsService) Ranking(ctx context.Context, key ranking.SortKey) ([]ranking.Entry, error) {
	users, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]ranking.Entry, 0, len(users))
	for _, u := range users {
		summary, err := s.RecomputeForUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ranking.NewEntry(u.Email, summary))
	}
	return ranking.Rank(entries, key), nil
}
