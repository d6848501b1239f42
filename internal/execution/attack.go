package execution

import (
	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"

	"go.uber.org/zap"
)

const attackRelationPenalty = -50

// AttackExecution 每 tick 从进攻方边境向目标推进若干地块，兵力耗尽或无地可打时撤回余兵。
// target 为 TerraNulliusID 时进攻无主地。
type AttackExecution struct {
	g          *game.Game
	attackerID game.SmallID
	targetID   game.SmallID
	troops     int64
	source     *game.TileRef

	attacker *game.Player
	target   *game.Player
	attack   *game.Attack
	frontier *pathfind.MinHeap
	active   bool
}

func NewAttackExecution(attacker, target game.SmallID, troops int64, source *game.TileRef) *AttackExecution {
	return &AttackExecution{attackerID: attacker, targetID: target, troops: troops, source: source, active: true}
}

func (e *AttackExecution) Init(g *game.Game, _ uint32) {
	e.g = g
	log := g.Logger().With(zap.String("exec", "attack"))
	attacker, ok := g.Player(e.attackerID)
	if !ok || !attacker.IsAlive() {
		log.Warn("attack: attacker not found", zap.Uint16("player", uint16(e.attackerID)))
		e.active = false
		return
	}
	e.attacker = attacker
	if e.targetID != game.TerraNulliusID {
		target, ok := g.Player(e.targetID)
		if !ok || target == attacker || attacker.IsFriendly(target) {
			log.Warn("attack: invalid target", zap.Uint16("player", uint16(e.attackerID)), zap.Uint16("target", uint16(e.targetID)))
			e.active = false
			return
		}
		e.target = target
	}
	troops := attacker.RemoveTroops(e.troops)
	if troops <= 0 {
		e.active = false
		return
	}
	e.attack = g.CreateAttack(attacker, e.target, troops, e.source)
	if e.target != nil {
		e.target.UpdateRelation(attacker, attackRelationPenalty)
	}
	e.frontier = pathfind.NewMinHeap(64)
}

func (e *AttackExecution) Tick(_ uint32) {
	game.MustInitialized(e.g, "attack")
	if !e.active {
		return
	}
	if !e.attacker.IsAlive() {
		e.attack.Delete()
		e.active = false
		return
	}
	if e.target != nil && !e.target.IsAlive() {
		e.retreat()
		return
	}

	e.refreshFrontier()
	conquered := 0
	for conquered < e.g.Config().AttackTilesPerTick && e.frontier.Len() > 0 {
		t, _ := e.frontier.Pop()
		if !e.isTargetTile(t) || !e.touchesAttacker(t) {
			continue
		}
		cost := e.tileCost()
		if e.attack.Troops() < cost {
			e.retreat()
			return
		}
		e.attack.SetTroops(e.attack.Troops() - cost)
		if e.target != nil {
			e.target.RemoveTroops(cost / 2)
		}
		e.g.Conquer(e.attacker, t)
		conquered++
	}

	if e.target != nil && !e.target.IsAlive() && e.target.ConqueredBy() == game.TerraNulliusID {
		e.g.ConquerPlayer(e.attacker, e.target)
	}
	if conquered == 0 {
		e.retreat()
	}
}

func (e *AttackExecution) IsActive() bool               { return e.active }
func (e *AttackExecution) ActiveDuringSpawnPhase() bool { return false }

// Attack 返回登记的进攻记录；未初始化或初始化失败时为 nil。
func (e *AttackExecution) Attack() *game.Attack { return e.attack }

// refreshFrontier 重建可攻击地块的小顶堆：周围己方地块越多越先打，带确定性抖动。
func (e *AttackExecution) refreshFrontier() {
	m := e.g.Map()
	e.frontier.Clear()
	seen := make(map[game.TileRef]struct{})
	for _, b := range e.attacker.BorderTiles() {
		for _, n := range m.Neighbors(b) {
			if _, ok := seen[n]; ok || !e.isTargetTile(n) {
				continue
			}
			seen[n] = struct{}{}
			own := 0
			for _, nn := range m.Neighbors(n) {
				if m.OwnerID(nn) == e.attacker.SmallID() {
					own++
				}
			}
			prio := float32(-own) + float32(e.g.Rand().NextFloat(0, 0.5))
			if e.source != nil {
				prio += float32(m.ManhattanDist(n, *e.source)) * 0.1
			}
			e.frontier.Push(n, prio)
		}
	}
}

func (e *AttackExecution) isTargetTile(t game.TileRef) bool {
	m := e.g.Map()
	return m.IsLand(t) && m.OwnerID(t) == e.targetID
}

func (e *AttackExecution) touchesAttacker(t game.TileRef) bool {
	m := e.g.Map()
	for _, n := range m.Neighbors(t) {
		if m.OwnerID(n) == e.attacker.SmallID() {
			return true
		}
	}
	return false
}

func (e *AttackExecution) tileCost() int64 {
	cost := e.g.Config().AttackTileCost
	if e.target != nil {
		cost += e.target.Troops() / int64(max(e.target.NumTilesOwned(), 1)) / 10
	}
	return cost
}

func (e *AttackExecution) retreat() {
	e.attacker.AddTroops(e.attack.Troops())
	e.attack.SetTroops(0)
	e.attack.Delete()
	e.active = false
}
