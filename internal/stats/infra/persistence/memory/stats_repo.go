package memory

import (
	"context"
	"sync"

	"FrontierSim/internal/stats/entity"
)

// StatsRepository 进程内仓储，只保留每局最高版本的快照。
type StatsRepository struct {
	mu    sync.RWMutex
	games map[entity.GameID]*entity.Snapshot
	saves int
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{games: make(map[entity.GameID]*entity.Snapshot)}
}

func (r *StatsRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if cur, ok := r.games[s.GameID]; ok && cur.Version >= s.Version {
		return nil
	}
	r.games[s.GameID] = s.Clone()
	return nil
}

func (r *StatsRepository) Latest(ctx context.Context, id entity.GameID) (*entity.Snapshot, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.games[id]
	if !ok {
		return nil, entity.ErrStatsNotFound.WithData("game_id", int64(id))
	}
	return s.Clone(), nil
}

// Saves 是 Save 被调用的次数。
func (r *StatsRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
