package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"FrontierSim/internal/shared/infrastructure/db"
	sharedleveldb "FrontierSim/internal/shared/infrastructure/leveldb"
	sharedmongo "FrontierSim/internal/shared/infrastructure/mongo"
	"FrontierSim/internal/shared/simconfig"
	"FrontierSim/internal/stats/app/port"
	"FrontierSim/internal/stats/infra/persistence/leveldb"
	"FrontierSim/internal/stats/infra/persistence/memory"
	"FrontierSim/internal/stats/infra/persistence/mongodb"
	"FrontierSim/internal/stats/infra/persistence/mysql"
)

const (
	BackendMemory  = "memory"
	BackendMongoDB = "mongodb"
	BackendMySQL   = "mysql"
	BackendLevelDB = "leveldb"
)

// Open 按 stats.backend 打开统计仓储；closer 释放底层连接，调用方在 DC 关闭后执行。
func Open(cfg *simconfig.Config, l *zap.Logger) (port.StatsRepository, func(), error) {
	if l == nil {
		l = zap.NewNop()
	}
	nop := func() {}

	switch cfg.Stats.Backend {
	case "", BackendMemory:
		return memory.NewStatsRepository(), nop, nil

	case BackendMongoDB:
		client, err := sharedmongo.Open(cfg.MongoDB, l)
		if err != nil {
			return nil, nop, err
		}
		repo := mongodb.NewStatsRepository(client.Database(cfg.MongoDB.Database))
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	case BackendMySQL:
		gdb, err := db.Open(cfg.MySQL)
		if err != nil {
			return nil, nop, err
		}
		closer := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		repo := mysql.NewStatsRepository(gdb)
		if err := repo.AutoMigrate(); err != nil {
			closer()
			return nil, nop, fmt.Errorf("migrate stats tables: %w", err)
		}
		return repo, closer, nil

	case BackendLevelDB:
		ldb, err := sharedleveldb.Open(cfg.LevelDB, l)
		if err != nil {
			return nil, nop, err
		}
		return leveldb.NewStatsRepository(ldb), func() { _ = ldb.Close() }, nil

	default:
		return nil, nop, fmt.Errorf("unknown stats backend %q", cfg.Stats.Backend)
	}
}
