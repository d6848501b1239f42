package execution

import (
	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// SpawnExecution 把玩家放到 tile 上：占下出生半径内的无主陆地，并派生 player/bot execution。
// 出生阶段内重复出生会先退还上一次的领土。
type SpawnExecution struct {
	g      *game.Game
	info   game.PlayerInfo
	tile   game.TileRef
	active bool
}

func NewSpawnExecution(info game.PlayerInfo, tile game.TileRef) *SpawnExecution {
	return &SpawnExecution{info: info, tile: tile, active: true}
}

func (e *SpawnExecution) Init(g *game.Game, _ uint32) { e.g = g }

func (e *SpawnExecution) Tick(_ uint32) {
	game.MustInitialized(e.g, "spawn")
	e.active = false

	m := e.g.Map()
	log := e.g.Logger().With(zap.String("exec", "spawn"), zap.String("player", e.info.Name))
	if !m.IsValidRef(e.tile) || !m.IsLand(e.tile) || m.HasOwner(e.tile) {
		log.Warn("spawn: invalid spawn tile", zap.Uint32("tile", uint32(e.tile)))
		return
	}

	p, exists := e.g.PlayerByName(e.info.Name)
	if exists && p.HasSpawned() {
		if !e.g.InSpawnPhase() {
			log.Warn("spawn: player already spawned")
			return
		}
		for _, t := range p.Tiles() {
			e.g.Relinquish(t)
		}
	}
	if !exists {
		p = e.g.AddPlayer(e.info)
	}

	r := e.g.Config().SpawnRadius
	cx, cy := m.X(e.tile), m.Y(e.tile)
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !m.IsValidCoord(x, y) {
				continue
			}
			t := m.Ref(x, y)
			if m.EuclideanDistSquared(t, e.tile) > r*r || !m.IsLand(t) || m.HasOwner(t) {
				continue
			}
			e.g.Conquer(p, t)
		}
	}

	if exists {
		return
	}
	p.AddTroops(e.g.Config().StartTroops)
	p.AddGold(e.g.Config().StartGold)
	e.g.AddExecution(NewPlayerExecution(p.SmallID()))
	if p.Type() == game.PlayerBot {
		e.g.AddExecution(NewBotExecution(p.SmallID()))
	}
}

func (e *SpawnExecution) IsActive() bool               { return e.active }
func (e *SpawnExecution) ActiveDuringSpawnPhase() bool { return true }
