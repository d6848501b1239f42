package execution

import (
	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// BotExecution 按随机节奏向无主地或最弱的邻居发起进攻。
type BotExecution struct {
	g        *game.Game
	playerID game.SmallID
	player   *game.Player
	active   bool

	attackRate   uint32
	attackTick   uint32
	triggerRatio float64
}

func NewBotExecution(id game.SmallID) *BotExecution {
	return &BotExecution{playerID: id, active: true}
}

func (e *BotExecution) Init(g *game.Game, _ uint32) {
	e.g = g
	p, ok := g.Player(e.playerID)
	if !ok {
		g.Logger().Warn("bot: player not found", zap.Uint16("player", uint16(e.playerID)))
		e.active = false
		return
	}
	e.player = p
	e.attackRate = uint32(g.Rand().NextInt(40, 80))
	e.attackTick = uint32(g.Rand().NextInt(0, int(e.attackRate)))
	e.triggerRatio = g.Rand().NextFloat(0.05, 0.15)
}

func (e *BotExecution) Tick(ticks uint32) {
	game.MustInitialized(e.g, "bot")
	if !e.active {
		return
	}
	p := e.player
	if !p.IsAlive() {
		e.active = false
		return
	}

	for _, a := range p.IncomingAttacks() {
		if att := a.Attacker(); !p.HasEmbargoAgainst(att) {
			p.AddEmbargo(att, true)
			p.UpdateRelation(att, -20)
		}
	}

	if (ticks+e.attackTick)%e.attackRate != 0 {
		return
	}
	troops := p.Troops()
	if float64(troops) < float64(e.g.Config().MaxTroops(p))*e.triggerRatio {
		return
	}

	if p.SharesBorderWith(nil) {
		e.g.AddExecution(NewAttackExecution(p.SmallID(), game.TerraNulliusID, troops/5, nil))
		return
	}
	var weakest *game.Player
	for _, o := range p.NeighborPlayers() {
		if p.IsFriendly(o) {
			continue
		}
		if weakest == nil || o.Troops() < weakest.Troops() {
			weakest = o
		}
	}
	if weakest != nil && weakest.Troops() < troops {
		e.g.AddExecution(NewAttackExecution(p.SmallID(), weakest.SmallID(), troops/4, nil))
	}
}

func (e *BotExecution) IsActive() bool               { return e.active }
func (e *BotExecution) ActiveDuringSpawnPhase() bool { return false }
