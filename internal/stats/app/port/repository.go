package port

import (
	"context"

	"FrontierSim/internal/stats/entity"
)

type StatsRepository interface {
	Save(ctx context.Context, s *entity.Snapshot) error
	// Latest 找不到时返回 entity.ErrStatsNotFound。
	Latest(ctx context.Context, id entity.GameID) (*entity.Snapshot, error)
}
