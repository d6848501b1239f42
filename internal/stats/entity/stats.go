package entity

import (
	"slices"
	"time"

	"FrontierSim/modules/kit/errx"
)

type GameID int64

var ErrStatsNotFound = errx.NewBiz("STATS_NOT_FOUND", "统计快照不存在")

// PlayerStats 是某一 tick 单个玩家的统计行。
type PlayerStats struct {
	SmallID      uint16  `json:"small_id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	TilesOwned   int     `json:"tiles_owned"`
	TerritoryPct float64 `json:"territory_pct"`
	Troops       int64   `json:"troops"`
	Gold         int64   `json:"gold"`
	Units        int     `json:"units"`
	Alive        bool    `json:"alive"`
	Rank         int     `json:"rank"`
}

// GameStats 只保留最近一次记录；每次 Record 置脏，由 DC 异步落库。
type GameStats struct {
	gameID     GameID
	tick       uint32
	recordedAt time.Time
	players    []PlayerStats
	records    int
	dirty      bool
}

func NewGameStats(id GameID) *GameStats {
	return &GameStats{gameID: id}
}

func (s *GameStats) ID() GameID            { return s.gameID }
func (s *GameStats) Tick() uint32          { return s.tick }
func (s *GameStats) RecordedAt() time.Time { return s.recordedAt }
func (s *GameStats) Records() int          { return s.records }

func (s *GameStats) Players() []PlayerStats {
	return slices.Clone(s.players)
}

// Record 覆盖为新一轮统计。同一 tick 重复记录视为无变化。
func (s *GameStats) Record(tick uint32, at time.Time, rows []PlayerStats) {
	if s.records > 0 && tick == s.tick {
		return
	}
	s.tick = tick
	s.recordedAt = at
	s.players = slices.Clone(rows)
	s.records++
	s.dirty = true
}

func (s *GameStats) Dirty() bool {
	return s.dirty
}

func (s *GameStats) ClearDirty() {
	s.dirty = false
}

func (s *GameStats) BuildPersistSnapshot(version uint64) (*Snapshot, bool) {
	if s == nil || !s.Dirty() {
		return nil, false
	}
	return &Snapshot{
		Version:    version,
		GameID:     s.gameID,
		Tick:       s.tick,
		RecordedAt: s.recordedAt,
		Players:    slices.Clone(s.players),
	}, true
}
