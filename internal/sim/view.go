package sim

import (
	"slices"

	"FrontierSim/internal/game"
)

// PlayerView 是某一 tick 单个玩家的只读状态。
type PlayerView struct {
	ID           uint16           `json:"id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Alive        bool             `json:"alive"`
	TilesOwned   int              `json:"tiles_owned"`
	TerritoryPct float64          `json:"territory_pct"`
	Troops       int64            `json:"troops"`
	Gold         int64            `json:"gold"`
	Units        int              `json:"units"`
	Attacks      int              `json:"attacks"`
	ClusterBox   game.BoundingBox `json:"cluster_box"`
	// Rank 按领土降序，并列按 id 升序，从 1 开始。
	Rank int `json:"rank"`
}

// StateView 是一个 tick 结束后的不可变快照，供 HTTP/WS 观察端并发读取。
type StateView struct {
	GameID       int64        `json:"game_id"`
	Tick         uint32       `json:"tick"`
	SpawnPhase   bool         `json:"spawn_phase"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	LandTiles    int          `json:"land_tiles"`
	NeutralTiles int          `json:"neutral_tiles"`
	RailTiles    int          `json:"rail_tiles"`
	Executions   int          `json:"executions"`
	AlivePlayers int          `json:"alive_players"`
	Players      []PlayerView `json:"players"`
}

// Player 按 id 查找。
func (v *StateView) Player(id uint16) (PlayerView, bool) {
	for _, p := range v.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerView{}, false
}

func buildView(gameID int64, g *game.Game, landTiles, executions int) *StateView {
	m := g.Map()
	v := &StateView{
		GameID:     gameID,
		Tick:       g.Ticks(),
		SpawnPhase: g.InSpawnPhase(),
		Width:      m.Width(),
		Height:     m.Height(),
		LandTiles:  landTiles,
		RailTiles:  g.NumRailTiles(),
		Executions: executions,
	}

	owned := 0
	players := g.Players()
	v.Players = make([]PlayerView, 0, len(players))
	for _, p := range players {
		tiles := p.NumTilesOwned()
		owned += tiles
		pv := PlayerView{
			ID:         uint16(p.SmallID()),
			Name:       p.Name(),
			Type:       p.Type().String(),
			Alive:      p.IsAlive(),
			TilesOwned: tiles,
			Troops:     p.Troops(),
			Gold:       p.Gold(),
			Units:      len(p.Units()),
			Attacks:    len(p.OutgoingAttacks()),
			ClusterBox: p.LargestClusterBoundingBox(),
		}
		if landTiles > 0 {
			pv.TerritoryPct = float64(tiles) * 100 / float64(landTiles)
		}
		if pv.Alive {
			v.AlivePlayers++
		}
		v.Players = append(v.Players, pv)
	}
	v.NeutralTiles = landTiles - owned

	order := make([]int, len(v.Players))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		pa, pb := v.Players[a], v.Players[b]
		if pa.TilesOwned != pb.TilesOwned {
			return pb.TilesOwned - pa.TilesOwned
		}
		return int(pa.ID) - int(pb.ID)
	})
	for rank, idx := range order {
		v.Players[idx].Rank = rank + 1
	}
	return v
}
