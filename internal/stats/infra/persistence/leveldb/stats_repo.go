package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"FrontierSim/internal/stats/entity"
)

// StatsRepository 用本地 leveldb 存快照：
//
//	stats/<game>/latest        最新快照
//	stats/<game>/tick/<tick>   每次落库的历史（tick 补零，按字典序即时间序）
type StatsRepository struct {
	db *leveldb.DB
}

func NewStatsRepository(db *leveldb.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func latestKey(id entity.GameID) []byte {
	return []byte(fmt.Sprintf("stats/%d/latest", id))
}

func historyPrefix(id entity.GameID) []byte {
	return []byte(fmt.Sprintf("stats/%d/tick/", id))
}

func historyKey(id entity.GameID, tick uint32) []byte {
	return append(historyPrefix(id), []byte(fmt.Sprintf("%010d", tick))...)
}

func (r *StatsRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	cur, err := r.Latest(ctx, s.GameID)
	switch {
	case err == nil && cur.Version >= s.Version:
		return nil
	case err != nil && !errors.Is(err, entity.ErrStatsNotFound):
		return err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Put(latestKey(s.GameID), raw)
	batch.Put(historyKey(s.GameID, s.Tick), raw)
	return r.db.Write(batch, nil)
}

func (r *StatsRepository) Latest(ctx context.Context, id entity.GameID) (*entity.Snapshot, error) {
	_ = ctx
	raw, err := r.db.Get(latestKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, entity.ErrStatsNotFound.WithData("game_id", int64(id))
	}
	if err != nil {
		return nil, err
	}
	var s entity.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// History 按 tick 升序返回该局全部历史快照。
func (r *StatsRepository) History(ctx context.Context, id entity.GameID) ([]*entity.Snapshot, error) {
	_ = ctx
	it := r.db.NewIterator(util.BytesPrefix(historyPrefix(id)), nil)
	defer it.Release()

	var out []*entity.Snapshot
	for it.Next() {
		var s entity.Snapshot
		if err := json.Unmarshal(it.Value(), &s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, it.Error()
}
