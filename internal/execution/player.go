package execution

import (
	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// PlayerExecution 负责一个玩家的每 tick 维护：资源增长、外交过期、领土簇回收。
type PlayerExecution struct {
	g        *game.Game
	playerID game.SmallID
	player   *game.Player
	active   bool

	// lastCalc 按玩家名哈希错开，避免所有玩家在同一 tick 做簇计算。
	lastCalc int64
}

func NewPlayerExecution(id game.SmallID) *PlayerExecution {
	return &PlayerExecution{playerID: id, active: true}
}

func (e *PlayerExecution) Init(g *game.Game, ticks uint32) {
	e.g = g
	p, ok := g.Player(e.playerID)
	if !ok {
		g.Logger().Warn("player: player not found", zap.Uint16("player", uint16(e.playerID)))
		e.active = false
		return
	}
	e.player = p
	interval := max(g.Config().ClusterCheckInterval, 1)
	e.lastCalc = int64(ticks) + int64(game.SimpleHash(p.Name())%interval)
}

func (e *PlayerExecution) Tick(ticks uint32) {
	game.MustInitialized(e.g, "player")
	if !e.active {
		return
	}
	p, cfg := e.player, e.g.Config()

	if cfg.RelationDecayInterval > 0 && ticks%cfg.RelationDecayInterval == 0 {
		p.DecayRelations()
	}

	for _, u := range p.Units() {
		if !u.Type().IsTerritoryBound() {
			continue
		}
		owner := e.g.Owner(u.Tile())
		switch {
		case owner == p:
		case owner != nil:
			owner.CaptureUnit(u)
		default:
			e.g.DeleteUnit(u)
		}
	}

	if p.NumTilesOwned() == 0 {
		p.RemoveGold(p.Gold())
		for _, u := range p.Units() {
			if !u.Type().IsStrategic() {
				e.g.DeleteUnit(u)
			}
		}
		e.active = false
		e.g.Logger().Info("player: eliminated", zap.String("player", p.Name()), zap.Uint32("tick", ticks))
		return
	}

	p.AddTroops(cfg.TroopIncreaseRate(p))
	p.AddGold(cfg.GoldAdditionRate(p))

	for _, a := range p.Alliances() {
		if a.ExpiresAt() <= ticks {
			e.g.ExpireAlliance(a)
		}
	}
	for _, em := range p.Embargoes() {
		if em.Temporary && ticks-em.CreatedAt > cfg.TemporaryEmbargoDuration {
			p.StopEmbargo(em.Target)
		}
	}

	if int64(ticks)-e.lastCalc > int64(cfg.ClusterCheckInterval) && int64(p.LastTileChange()) > e.lastCalc {
		e.lastCalc = int64(ticks)
		e.removeClusters()
	}
}

func (e *PlayerExecution) IsActive() bool               { return e.active }
func (e *PlayerExecution) ActiveDuringSpawnPhase() bool { return false }

// removeClusters 找出被包围的领土簇并交给包围者。
func (e *PlayerExecution) removeClusters() {
	clusters := calculateClusters(e.g.Map(), e.player)
	if len(clusters) == 0 {
		return
	}
	m := e.g.Map()
	main := clusters[0]
	if box, ok := game.CalculateBoundingBox(m, main); ok {
		e.player.SetLargestClusterBoundingBox(box)
	}
	if enemy, ok := surroundedBySamePlayer(e.g, e.player, main); ok && !e.player.IsFriendly(enemy) {
		e.removeCluster(main)
	}
	for _, c := range clusters[1:] {
		if isSurrounded(e.g, e.player, c) {
			e.removeCluster(c)
		}
	}
}

func (e *PlayerExecution) removeCluster(cluster []game.TileRef) {
	removeCluster(e.g, e.player, cluster)
}
