package leveldb

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"go.uber.org/zap"

	"FrontierSim/internal/shared/simconfig"
)

// Open 打开本地 leveldb 目录，目录不存在时创建。
func Open(cfg simconfig.LevelDBConfig, l *zap.Logger) (*leveldb.DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("leveldb path is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}
	db, err := leveldb.OpenFile(cfg.Path, &opt.Options{})
	if err != nil {
		return nil, err
	}
	l.Info("open leveldb success", zap.String("path", cfg.Path))
	return db, nil
}
