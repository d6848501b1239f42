package model

import (
	"time"

	"FrontierSim/internal/stats/entity"
)

// StatsDoc 是 mongodb 里每局一条的最新统计文档。
type StatsDoc struct {
	GameID     int64            `bson:"_id"`
	Version    uint64           `bson:"version"`
	Tick       uint32           `bson:"tick"`
	RecordedAt time.Time        `bson:"recorded_at"`
	Players    []PlayerStatsDoc `bson:"players"`
}

type PlayerStatsDoc struct {
	SmallID      uint16  `bson:"small_id"`
	Name         string  `bson:"name"`
	Type         string  `bson:"type"`
	TilesOwned   int     `bson:"tiles_owned"`
	TerritoryPct float64 `bson:"territory_pct"`
	Troops       int64   `bson:"troops"`
	Gold         int64   `bson:"gold"`
	Units        int     `bson:"units"`
	Alive        bool    `bson:"alive"`
	Rank         int     `bson:"rank"`
}

func SnapshotToDoc(s *entity.Snapshot) StatsDoc {
	doc := StatsDoc{
		GameID:     int64(s.GameID),
		Version:    s.Version,
		Tick:       s.Tick,
		RecordedAt: s.RecordedAt.UTC(),
		Players:    make([]PlayerStatsDoc, 0, len(s.Players)),
	}
	for _, p := range s.Players {
		doc.Players = append(doc.Players, PlayerStatsDoc(p))
	}
	return doc
}

func DocToSnapshot(doc StatsDoc) *entity.Snapshot {
	s := &entity.Snapshot{
		Version:    doc.Version,
		GameID:     entity.GameID(doc.GameID),
		Tick:       doc.Tick,
		RecordedAt: doc.RecordedAt,
		Players:    make([]entity.PlayerStats, 0, len(doc.Players)),
	}
	for _, p := range doc.Players {
		s.Players = append(s.Players, entity.PlayerStats(p))
	}
	return s
}
