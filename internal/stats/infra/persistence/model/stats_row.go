package model

import (
	"time"

	"FrontierSim/internal/stats/entity"
)

// GameStatsRow 每局一行，记录最近一次落库的快照头。
type GameStatsRow struct {
	GameID     int64     `gorm:"column:game_id;type:bigint;comment:会话id;primaryKey;not null;" json:"game_id"`
	Version    uint64    `gorm:"column:version;type:bigint UNSIGNED;comment:快照版本;not null;" json:"version"`
	Tick       uint32    `gorm:"column:tick;type:int UNSIGNED;comment:tick;not null;" json:"tick"`
	RecordedAt time.Time `gorm:"column:recorded_at;type:timestamp;comment:记录时间;not null;" json:"recorded_at"`
}

func (m *GameStatsRow) TableName() string {
	return "sim_game_stats"
}

// PlayerStatsRow 以 (game_id, small_id) 为主键。
type PlayerStatsRow struct {
	GameID       int64   `gorm:"column:game_id;type:bigint;primaryKey;not null;" json:"game_id"`
	SmallID      uint16  `gorm:"column:small_id;type:smallint UNSIGNED;primaryKey;not null;" json:"small_id"`
	Name         string  `gorm:"column:name;type:varchar(64);comment:玩家名;not null;" json:"name"`
	Type         string  `gorm:"column:type;type:varchar(16);comment:human/bot/fake_human;not null;" json:"type"`
	TilesOwned   int     `gorm:"column:tiles_owned;type:int UNSIGNED;not null;default:0;" json:"tiles_owned"`
	TerritoryPct float64 `gorm:"column:territory_pct;type:double;not null;default:0;" json:"territory_pct"`
	Troops       int64   `gorm:"column:troops;type:bigint;not null;default:0;" json:"troops"`
	Gold         int64   `gorm:"column:gold;type:bigint;not null;default:0;" json:"gold"`
	Units        int     `gorm:"column:units;type:int UNSIGNED;not null;default:0;" json:"units"`
	Alive        bool    `gorm:"column:alive;type:tinyint(1);not null;default:0;" json:"alive"`
	Rank         int     `gorm:"column:rank;type:int UNSIGNED;not null;default:0;" json:"rank"`
}

func (m *PlayerStatsRow) TableName() string {
	return "sim_player_stats"
}

func SnapshotToRows(s *entity.Snapshot) (GameStatsRow, []PlayerStatsRow) {
	head := GameStatsRow{
		GameID:     int64(s.GameID),
		Version:    s.Version,
		Tick:       s.Tick,
		RecordedAt: s.RecordedAt,
	}
	rows := make([]PlayerStatsRow, 0, len(s.Players))
	for _, p := range s.Players {
		rows = append(rows, PlayerStatsRow{
			GameID:       int64(s.GameID),
			SmallID:      p.SmallID,
			Name:         p.Name,
			Type:         p.Type,
			TilesOwned:   p.TilesOwned,
			TerritoryPct: p.TerritoryPct,
			Troops:       p.Troops,
			Gold:         p.Gold,
			Units:        p.Units,
			Alive:        p.Alive,
			Rank:         p.Rank,
		})
	}
	return head, rows
}

func RowsToSnapshot(head GameStatsRow, rows []PlayerStatsRow) *entity.Snapshot {
	s := &entity.Snapshot{
		Version:    head.Version,
		GameID:     entity.GameID(head.GameID),
		Tick:       head.Tick,
		RecordedAt: head.RecordedAt,
		Players:    make([]entity.PlayerStats, 0, len(rows)),
	}
	for _, r := range rows {
		s.Players = append(s.Players, entity.PlayerStats{
			SmallID:      r.SmallID,
			Name:         r.Name,
			Type:         r.Type,
			TilesOwned:   r.TilesOwned,
			TerritoryPct: r.TerritoryPct,
			Troops:       r.Troops,
			Gold:         r.Gold,
			Units:        r.Units,
			Alive:        r.Alive,
			Rank:         r.Rank,
		})
	}
	return s
}
