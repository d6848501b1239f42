package entity

import (
	"slices"
	"time"
)

// Snapshot 是交给仓储的不可变副本，Version 单调递增。
type Snapshot struct {
	Version    uint64        `json:"version"`
	GameID     GameID        `json:"game_id"`
	Tick       uint32        `json:"tick"`
	RecordedAt time.Time     `json:"recorded_at"`
	Players    []PlayerStats `json:"players"`
}

func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Players = slices.Clone(s.Players)
	return &cp
}
