package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"FrontierSim/internal/stats/entity"
	"FrontierSim/internal/stats/infra/persistence/model"
	"FrontierSim/modules/kit/errx"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AutoMigrate 建表；启动时调用一次。
func (r *StatsRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&model.GameStatsRow{}, &model.PlayerStatsRow{})
}

const OpSaveStats = "repo.stats.Save"

// Save 在一个事务里覆盖快照头并整表替换该局的玩家行；旧版本快照直接丢弃。
func (r *StatsRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	if s == nil {
		return nil
	}
	head, rows := model.SnapshotToRows(s)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.GameStatsRow
		err := tx.Where("game_id = ?", head.GameID).First(&cur).Error
		switch {
		case err == nil:
			if cur.Version >= head.Version {
				return nil
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		if err := tx.Save(&head).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", head.GameID).Delete(&model.PlayerStatsRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errx.ErrUnavailable.WithData("op", OpSaveStats).WithData("game_id", head.GameID).WithCause(err)
	}
	return nil
}

const OpLatestStats = "repo.stats.Latest"

func (r *StatsRepository) Latest(ctx context.Context, id entity.GameID) (*entity.Snapshot, error) {
	var head model.GameStatsRow
	err := r.db.WithContext(ctx).Where("game_id = ?", int64(id)).First(&head).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, entity.ErrStatsNotFound.WithData("game_id", int64(id))
	default:
		//  纯技术错误（连接超时等），保持原样包装返回给上级
		return nil, errx.ErrUnavailable.WithData("op", OpLatestStats).WithData("game_id", int64(id)).WithCause(err)
	}

	var rows []model.PlayerStatsRow
	if err := r.db.WithContext(ctx).Where("game_id = ?", int64(id)).Order("small_id").Find(&rows).Error; err != nil {
		return nil, errx.ErrUnavailable.WithData("op", OpLatestStats).WithData("game_id", int64(id)).WithCause(err)
	}
	return model.RowsToSnapshot(head, rows), nil
}
