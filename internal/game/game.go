package game

import (
	"slices"

	"FrontierSim/modules/kit/logx"

	"go.uber.org/zap"
)

// Game 是单线程的权威世界状态。所有归属与单位变更都必须经过这里的 mutator。
type Game struct {
	cfg   Config
	m     *GameMap
	rand  *Random
	log   logx.Logger
	sink  ExecutionSink
	ticks uint32

	// players 按 SmallID 下标存放，0 号位保留给无主地。
	players []*Player

	units      []*Unit
	nextUnitID uint32

	alliances []*Alliance

	nextAttackID uint32

	rail      *RailNetwork
	railTiles map[TileRef]RailType
}

func NewGame(cfg Config, m *GameMap, log logx.Logger) *Game {
	if log == nil {
		log = logx.Nop()
	}
	return &Game{
		cfg:       cfg,
		m:         m,
		rand:      NewRandom(cfg.Seed),
		log:       log,
		players:   []*Player{nil},
		rail:      NewRailNetwork(),
		railTiles: make(map[TileRef]RailType),
	}
}

func (g *Game) Config() Config      { return g.cfg }
func (g *Game) Map() *GameMap       { return g.m }
func (g *Game) Rand() *Random       { return g.rand }
func (g *Game) Logger() logx.Logger { return g.log }
func (g *Game) Ticks() uint32       { return g.ticks }

func (g *Game) RailNetwork() *RailNetwork { return g.rail }

// InSpawnPhase 在前 NumSpawnPhaseTurns 个 tick 内为真。
func (g *Game) InSpawnPhase() bool { return g.ticks <= g.cfg.NumSpawnPhaseTurns }

// AdvanceTick 由调度器在一个 tick 结束后调用。
func (g *Game) AdvanceTick() { g.ticks++ }

// SetExecutionSink 绑定调度器，execution 通过 AddExecution 派生新的 execution。
func (g *Game) SetExecutionSink(s ExecutionSink) { g.sink = s }

func (g *Game) AddExecution(execs ...Execution) {
	if g.sink == nil {
		g.log.Warn("game: no execution sink, executions dropped", zap.Int("count", len(execs)))
		return
	}
	g.sink.Add(execs...)
}

// AddPlayer 分配下一个 SmallID。
func (g *Game) AddPlayer(info PlayerInfo) *Player {
	p := newPlayer(g, SmallID(len(g.players)), info)
	g.players = append(g.players, p)
	return p
}

func (g *Game) Player(id SmallID) (*Player, bool) {
	if id == TerraNulliusID || int(id) >= len(g.players) {
		return nil, false
	}
	return g.players[id], true
}

func (g *Game) PlayerByName(name string) (*Player, bool) {
	for _, p := range g.players[1:] {
		if p.info.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Players 按 SmallID 升序返回全部玩家（含已灭亡的）。
func (g *Game) Players() []*Player { return slices.Clone(g.players[1:]) }

// Owner 返回地块归属；无主时返回 nil。
func (g *Game) Owner(t TileRef) *Player {
	id := g.m.OwnerID(t)
	if id == TerraNulliusID {
		return nil
	}
	return g.players[id]
}

// Conquer 把地块 t 划给 p，原主（如果有）失去该地块。
func (g *Game) Conquer(p *Player, t TileRef) {
	if !g.m.IsValidRef(t) || !g.m.IsLand(t) {
		g.log.Warn("game: conquer on invalid tile", zap.Uint32("tile", uint32(t)), zap.Uint16("player", uint16(p.smallID)))
		return
	}
	if prev := g.Owner(t); prev != nil {
		if prev == p {
			return
		}
		delete(prev.tiles, t)
		delete(prev.borderTiles, t)
		prev.lastTileChange = g.ticks
	}
	g.m.setOwnerID(t, p.smallID)
	p.tiles[t] = struct{}{}
	p.lastTileChange = g.ticks
	if !p.hasSpawned {
		p.hasSpawned = true
	}
	g.updateBorders(t)
}

// Relinquish 把地块退回无主状态。
func (g *Game) Relinquish(t TileRef) {
	if !g.m.IsValidRef(t) {
		return
	}
	prev := g.Owner(t)
	if prev == nil {
		return
	}
	delete(prev.tiles, t)
	delete(prev.borderTiles, t)
	prev.lastTileChange = g.ticks
	g.m.setOwnerID(t, TerraNulliusID)
	g.updateBorders(t)
}

// ConquerPlayer 记录整体吞并：金币全部转给征服者。地块由调用方逐块 Conquer。
func (g *Game) ConquerPlayer(conqueror, conquered *Player) {
	if conqueror == nil || conquered == nil || conqueror == conquered {
		return
	}
	gold := conquered.RemoveGold(conquered.gold)
	conqueror.AddGold(gold)
	conquered.conqueredBy = conqueror.smallID
	g.log.Info("game: player conquered",
		zap.String("conqueror", conqueror.info.Name),
		zap.String("conquered", conquered.info.Name),
		zap.Int64("gold", gold))
}

// updateBorders 重新计算 t 及其 4 邻域的边境标记。
func (g *Game) updateBorders(t TileRef) {
	g.refreshBorder(t)
	for _, n := range g.m.Neighbors(t) {
		g.refreshBorder(n)
	}
}

// refreshBorder：与不同归属的地块相邻即为边境；地图边缘本身不算。
func (g *Game) refreshBorder(t TileRef) {
	owner := g.Owner(t)
	if owner == nil {
		return
	}
	for _, n := range g.m.Neighbors(t) {
		if g.m.OwnerID(n) != owner.smallID {
			owner.borderTiles[t] = struct{}{}
			return
		}
	}
	delete(owner.borderTiles, t)
}

// BuildUnit 在 tile 上为 owner 建造单位。建筑类单位要求 tile 归 owner 所有。
func (g *Game) BuildUnit(owner *Player, typ UnitType, tile TileRef) (*Unit, error) {
	if owner == nil {
		return nil, ErrPlayerNotFound
	}
	if !g.m.IsValidRef(tile) {
		return nil, ErrInvalidTile.WithData("tile", tile)
	}
	if typ.IsTerritoryBound() && !owner.HasTile(tile) {
		return nil, ErrCannotBuild.WithData("unit", typ.String()).WithData("tile", tile)
	}
	g.nextUnitID++
	u := &Unit{id: g.nextUnitID, typ: typ, owner: owner, tile: tile, active: true}
	g.units = append(g.units, u)
	owner.units = append(owner.units, u)
	return u, nil
}

// BuildTrainUnit 建造火车头或车厢。
func (g *Game) BuildTrainUnit(owner *Player, tile TileRef, tt TrainType, loaded bool) (*Unit, error) {
	u, err := g.BuildUnit(owner, UnitTrain, tile)
	if err != nil {
		return nil, err
	}
	u.trainType = tt
	u.loaded = loaded
	return u, nil
}

// DeleteUnit 使单位失效并移除；建筑上的车站随之移除。
func (g *Game) DeleteUnit(u *Unit) {
	if u == nil || !u.active {
		return
	}
	u.active = false
	g.units = slices.DeleteFunc(g.units, func(o *Unit) bool { return o == u })
	u.owner.units = slices.DeleteFunc(u.owner.units, func(o *Unit) bool { return o == u })
	if s, ok := g.rail.StationOf(u); ok {
		g.rail.RemoveStation(s)
	}
}

func (g *Game) MoveUnit(u *Unit, tile TileRef) {
	if u == nil || !u.active {
		return
	}
	if !g.m.IsValidRef(tile) {
		g.log.Warn("game: move to invalid tile", zap.Uint32("unit", u.id), zap.Uint32("tile", uint32(tile)))
		return
	}
	u.tile = tile
}

func (g *Game) captureUnit(p *Player, u *Unit) {
	if u == nil || !u.active || u.owner == p {
		return
	}
	prev := u.owner
	prev.units = slices.DeleteFunc(prev.units, func(o *Unit) bool { return o == u })
	u.owner = p
	p.units = append(p.units, u)
}

func (g *Game) Unit(id uint32) (*Unit, bool) {
	for _, u := range g.units {
		if u.id == id {
			return u, true
		}
	}
	return nil, false
}

// Units 按建造顺序返回存活单位；types 为空时返回全部。
func (g *Game) Units(types ...UnitType) []*Unit {
	out := make([]*Unit, 0, len(g.units))
	for _, u := range g.units {
		if len(types) == 0 || slices.Contains(types, u.typ) {
			out = append(out, u)
		}
	}
	return out
}

// NearbyUnits 返回曼哈顿距离 rng 内的指定类型单位，按建造顺序。
func (g *Game) NearbyUnits(tile TileRef, rng int, types ...UnitType) []*Unit {
	out := make([]*Unit, 0)
	for _, u := range g.Units(types...) {
		if g.m.ManhattanDist(u.tile, tile) <= rng {
			out = append(out, u)
		}
	}
	return out
}

// CreateAttack 登记一次进攻。target 为 nil 表示无主地。
func (g *Game) CreateAttack(attacker, target *Player, troops int64, source *TileRef) *Attack {
	g.nextAttackID++
	a := &Attack{id: g.nextAttackID, attacker: attacker, target: target, troops: troops, active: true}
	if source != nil {
		a.source, a.hasSrc = *source, true
	}
	attacker.outgoingAttacks = append(attacker.outgoingAttacks, a)
	attacker.attacksLaunched++
	if target != nil {
		target.incomingAttacks = append(target.incomingAttacks, a)
	}
	return a
}

// CreateAlliance 建立同盟，已结盟时返回已有的同盟。
func (g *Game) CreateAlliance(requestor, recipient *Player) *Alliance {
	for _, a := range g.alliances {
		if (a.requestor == requestor && a.recipient == recipient) || (a.requestor == recipient && a.recipient == requestor) {
			return a
		}
	}
	a := &Alliance{
		requestor: requestor,
		recipient: recipient,
		createdAt: g.ticks,
		expiresAt: g.ticks + g.cfg.AllianceDuration,
	}
	g.alliances = append(g.alliances, a)
	return a
}

func (g *Game) ExpireAlliance(a *Alliance) {
	g.alliances = slices.DeleteFunc(g.alliances, func(o *Alliance) bool { return o == a })
}

func (g *Game) SetRailTile(t TileRef, rt RailType) { g.railTiles[t] = rt }
func (g *Game) ClearRailTile(t TileRef)            { delete(g.railTiles, t) }

func (g *Game) RailTile(t TileRef) (RailType, bool) {
	rt, ok := g.railTiles[t]
	return rt, ok
}

func (g *Game) NumRailTiles() int { return len(g.railTiles) }
