package dc

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"FrontierSim/internal/stats/entity"
	"FrontierSim/internal/stats/infra/persistence/memory"
)

func rows(tiles int) []entity.PlayerStats {
	return []entity.PlayerStats{{SmallID: 1, Name: "a", TilesOwned: tiles, Alive: true, Rank: 1}}
}

func TestStatsDC_不脏不写库(t *testing.T) {
	repo := memory.NewStatsRepository()
	d := NewStatsDC(1, repo, time.Second, nil)
	d.Flush(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if repo.Saves() != 0 {
		t.Fatalf("saves = %d", repo.Saves())
	}
}

func TestStatsDC_Close落最新快照(t *testing.T) {
	repo := memory.NewStatsRepository()
	d := NewStatsDC(7, repo, time.Second, nil)
	d.Record(10, time.Unix(1, 0), rows(3))
	d.Flush(context.Background())
	d.Record(20, time.Unix(2, 0), rows(5))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	got, err := repo.Latest(context.Background(), 7)
	if err != nil {
		t.Fatalf("Latest err=%v", err)
	}
	if got.Tick != 20 || got.Players[0].TilesOwned != 5 || got.Version != 2 {
		t.Fatalf("latest = %+v", got)
	}
	if d.SavedVersion() != 2 {
		t.Fatalf("saved version = %d", d.SavedVersion())
	}

	// 关闭后的记录不再入队
	d.Record(30, time.Unix(3, 0), rows(9))
	d.Flush(context.Background())
	if got, _ := repo.Latest(context.Background(), 7); got.Tick != 20 {
		t.Fatalf("关闭后仍写库: %+v", got)
	}
}

type flakyRepo struct {
	*memory.StatsRepository
	failures atomic.Int32
}

func (r *flakyRepo) Save(ctx context.Context, s *entity.Snapshot) error {
	if r.failures.Add(-1) >= 0 {
		return errors.New("db down")
	}
	return r.StatsRepository.Save(ctx, s)
}

func TestStatsDC_写库失败重试(t *testing.T) {
	repo := &flakyRepo{StatsRepository: memory.NewStatsRepository()}
	repo.failures.Store(2)
	d := NewStatsDC(3, repo, time.Second, nil)
	d.Record(1, time.Unix(1, 0), rows(1))
	d.Flush(context.Background())

	deadline := time.Now().Add(3 * time.Second)
	for d.SavedVersion() < 1 {
		if time.Now().After(deadline) {
			t.Fatalf("重试后仍未写入")
		}
		time.Sleep(20 * time.Millisecond)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if _, err := repo.Latest(context.Background(), 3); err != nil {
		t.Fatalf("Latest err=%v", err)
	}
}

func TestStatsDC_仓储一直失败时Close不挂死(t *testing.T) {
	repo := &flakyRepo{StatsRepository: memory.NewStatsRepository()}
	repo.failures.Store(1 << 30)
	d := NewStatsDC(4, repo, time.Second, nil)
	d.Record(1, time.Unix(1, 0), rows(1))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if d.SavedVersion() != 0 {
		t.Fatalf("不应记录成功版本")
	}
}
