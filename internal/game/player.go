package game

import (
	"slices"
)

type PlayerType uint8

const (
	PlayerHuman PlayerType = iota
	PlayerBot
	PlayerFakeHuman
)

func (t PlayerType) String() string {
	switch t {
	case PlayerHuman:
		return "human"
	case PlayerBot:
		return "bot"
	case PlayerFakeHuman:
		return "fake_human"
	default:
		return "unknown"
	}
}

func ParsePlayerType(s string) (PlayerType, bool) {
	switch s {
	case "human", "":
		return PlayerHuman, true
	case "bot":
		return PlayerBot, true
	case "fake_human":
		return PlayerFakeHuman, true
	default:
		return 0, false
	}
}

type PlayerInfo struct {
	Name     string     `json:"name" mapstructure:"name"`
	Type     PlayerType `json:"type" mapstructure:"type"`
	ClientID string     `json:"client_id" mapstructure:"client_id"`
}

// Embargo 是对某个玩家的禁运。Temporary 的禁运在配置的时长后自动解除。
type Embargo struct {
	Target    SmallID
	CreatedAt uint32
	Temporary bool
}

const (
	relationMin = -100
	relationMax = 100
)

// Player 是竞技场中的一个玩家。
// tiles/borderTiles 用集合存，保证“是不是我的地块”是 O(1)；需要遍历时统一排序后输出。
type Player struct {
	g       *Game
	smallID SmallID
	info    PlayerInfo

	tiles       map[TileRef]struct{}
	borderTiles map[TileRef]struct{}

	troops int64
	gold   int64
	units  []*Unit

	relations map[SmallID]int
	embargoes map[SmallID]Embargo

	outgoingAttacks []*Attack
	incomingAttacks []*Attack

	lastTileChange    uint32
	largestClusterBox BoundingBox
	hasSpawned        bool
	conqueredBy       SmallID
	attacksLaunched   int
}

func newPlayer(g *Game, id SmallID, info PlayerInfo) *Player {
	return &Player{
		g:           g,
		smallID:     id,
		info:        info,
		tiles:       make(map[TileRef]struct{}),
		borderTiles: make(map[TileRef]struct{}),
		relations:   make(map[SmallID]int),
		embargoes:   make(map[SmallID]Embargo),
	}
}

func (p *Player) SmallID() SmallID { return p.smallID }
func (p *Player) Name() string     { return p.info.Name }
func (p *Player) Type() PlayerType { return p.info.Type }
func (p *Player) Info() PlayerInfo { return p.info }

// IsAlive 等价于仍拥有地块。
func (p *Player) IsAlive() bool      { return len(p.tiles) > 0 }
func (p *Player) HasSpawned() bool   { return p.hasSpawned }
func (p *Player) NumTilesOwned() int { return len(p.tiles) }

func (p *Player) HasTile(t TileRef) bool {
	_, ok := p.tiles[t]
	return ok
}

func (p *Player) IsBorderTile(t TileRef) bool {
	_, ok := p.borderTiles[t]
	return ok
}

// Tiles 返回升序排序后的地块副本。
func (p *Player) Tiles() []TileRef { return sortedTiles(p.tiles) }

// BorderTiles 返回升序排序后的边境地块副本。
func (p *Player) BorderTiles() []TileRef { return sortedTiles(p.borderTiles) }

func (p *Player) NumBorderTiles() int { return len(p.borderTiles) }

func (p *Player) Troops() int64 { return p.troops }

func (p *Player) AddTroops(n int64) {
	if n <= 0 {
		return
	}
	p.troops += n
}

// RemoveTroops 扣减兵力，返回实际扣除量（不会扣成负数）。
func (p *Player) RemoveTroops(n int64) int64 {
	if n <= 0 {
		return 0
	}
	n = min(n, p.troops)
	p.troops -= n
	return n
}

func (p *Player) Gold() int64 { return p.gold }

func (p *Player) AddGold(n int64) {
	if n <= 0 {
		return
	}
	p.gold += n
}

func (p *Player) RemoveGold(n int64) int64 {
	if n <= 0 {
		return 0
	}
	n = min(n, p.gold)
	p.gold -= n
	return n
}

// Units 返回指定类型的存活单位；不传类型时返回全部。
func (p *Player) Units(types ...UnitType) []*Unit {
	out := make([]*Unit, 0, len(p.units))
	for _, u := range p.units {
		if len(types) == 0 || slices.Contains(types, u.typ) {
			out = append(out, u)
		}
	}
	return out
}

func (p *Player) LastTileChange() uint32 { return p.lastTileChange }

func (p *Player) LargestClusterBoundingBox() BoundingBox { return p.largestClusterBox }

func (p *Player) SetLargestClusterBoundingBox(b BoundingBox) { p.largestClusterBox = b }

func (p *Player) OutgoingAttacks() []*Attack { return slices.Clone(p.outgoingAttacks) }
func (p *Player) IncomingAttacks() []*Attack { return slices.Clone(p.incomingAttacks) }

func (p *Player) AttacksLaunched() int { return p.attacksLaunched }

// ConqueredBy 返回吞并该玩家的玩家 id；未被吞并时为 0。
func (p *Player) ConqueredBy() SmallID { return p.conqueredBy }

// SharesBorderWith 判断是否与 other 接壤；other 为 nil 表示无主陆地。
func (p *Player) SharesBorderWith(other *Player) bool {
	m := p.g.m
	for t := range p.borderTiles {
		for _, n := range m.Neighbors(t) {
			if other == nil {
				if m.IsLand(n) && !m.HasOwner(n) {
					return true
				}
				continue
			}
			if m.OwnerID(n) == other.smallID {
				return true
			}
		}
	}
	return false
}

// NeighborPlayers 返回接壤的其他玩家，按 SmallID 升序。
func (p *Player) NeighborPlayers() []*Player {
	m := p.g.m
	ids := make(map[SmallID]struct{})
	for t := range p.borderTiles {
		for _, n := range m.Neighbors(t) {
			id := m.OwnerID(n)
			if id != TerraNulliusID && id != p.smallID {
				ids[id] = struct{}{}
			}
		}
	}
	out := make([]*Player, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		if o, ok := p.g.Player(id); ok {
			out = append(out, o)
		}
	}
	return out
}

// Relation 取值范围 [-100, 100]，0 为中立。
func (p *Player) Relation(other *Player) int {
	if other == nil {
		return 0
	}
	return p.relations[other.smallID]
}

func (p *Player) UpdateRelation(other *Player, delta int) {
	if other == nil || other == p {
		return
	}
	v := p.relations[other.smallID] + delta
	v = max(relationMin, min(relationMax, v))
	if v == 0 {
		delete(p.relations, other.smallID)
		return
	}
	p.relations[other.smallID] = v
}

// DecayRelations 让所有关系值向 0 回落 1 点。
func (p *Player) DecayRelations() {
	for id, v := range p.relations {
		switch {
		case v > 0:
			v--
		case v < 0:
			v++
		}
		if v == 0 {
			delete(p.relations, id)
		} else {
			p.relations[id] = v
		}
	}
}

func (p *Player) Alliances() []*Alliance {
	out := make([]*Alliance, 0)
	for _, a := range p.g.alliances {
		if a.requestor == p || a.recipient == p {
			out = append(out, a)
		}
	}
	return out
}

func (p *Player) IsAlliedWith(other *Player) bool {
	if other == nil || other == p {
		return false
	}
	for _, a := range p.g.alliances {
		if (a.requestor == p && a.recipient == other) || (a.requestor == other && a.recipient == p) {
			return true
		}
	}
	return false
}

// IsFriendly 目前等价于结盟。
func (p *Player) IsFriendly(other *Player) bool { return p.IsAlliedWith(other) }

func (p *Player) AddEmbargo(target *Player, temporary bool) {
	if target == nil || target == p {
		return
	}
	p.embargoes[target.smallID] = Embargo{Target: target.smallID, CreatedAt: p.g.ticks, Temporary: temporary}
}

func (p *Player) StopEmbargo(target SmallID) {
	delete(p.embargoes, target)
}

// Embargoes 按目标 id 升序返回。
func (p *Player) Embargoes() []Embargo {
	out := make([]Embargo, 0, len(p.embargoes))
	for _, id := range sortedIDsFromEmbargo(p.embargoes) {
		out = append(out, p.embargoes[id])
	}
	return out
}

func (p *Player) HasEmbargoAgainst(other *Player) bool {
	if other == nil {
		return false
	}
	_, ok := p.embargoes[other.smallID]
	return ok
}

// CanTrade 双方任一方有禁运即不可贸易。
func (p *Player) CanTrade(other *Player) bool {
	if other == nil {
		return false
	}
	return !p.HasEmbargoAgainst(other) && !other.HasEmbargoAgainst(p)
}

// CaptureUnit 把 u 的归属转给 p。
func (p *Player) CaptureUnit(u *Unit) {
	p.g.captureUnit(p, u)
}

func sortedTiles(set map[TileRef]struct{}) []TileRef {
	out := make([]TileRef, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func sortedIDs(set map[SmallID]struct{}) []SmallID {
	out := make([]SmallID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func sortedIDsFromEmbargo(m map[SmallID]Embargo) []SmallID {
	out := make([]SmallID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
