package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"FrontierSim/internal/shared/simconfig"
	"FrontierSim/internal/stats/entity"
	"FrontierSim/internal/stats/infra/persistence/leveldb"
	"FrontierSim/internal/stats/infra/persistence/memory"
)

func TestOpen_默认内存仓储(t *testing.T) {
	repo, closer, err := Open(&simconfig.Config{}, nil)
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	defer closer()
	if _, ok := repo.(*memory.StatsRepository); !ok {
		t.Fatalf("repo = %T", repo)
	}
}

func TestOpen_leveldb可读写(t *testing.T) {
	cfg := &simconfig.Config{
		Stats:   simconfig.StatsConfig{Backend: BackendLevelDB},
		LevelDB: simconfig.LevelDBConfig{Path: filepath.Join(t.TempDir(), "stats")},
	}
	repo, closer, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	defer closer()
	if _, ok := repo.(*leveldb.StatsRepository); !ok {
		t.Fatalf("repo = %T", repo)
	}

	ctx := context.Background()
	snap := &entity.Snapshot{GameID: 3, Version: 1, Tick: 20, RecordedAt: time.Unix(100, 0).UTC()}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	got, err := repo.Latest(ctx, 3)
	if err != nil || got.Tick != 20 {
		t.Fatalf("Latest = %+v err=%v", got, err)
	}
}

func TestOpen_未知后端(t *testing.T) {
	if _, _, err := Open(&simconfig.Config{Stats: simconfig.StatsConfig{Backend: "redis"}}, nil); err == nil {
		t.Fatalf("期望未知后端报错")
	}
}
