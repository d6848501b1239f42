package execution

import (
	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
	"FrontierSim/modules/kit/logx"

	"go.uber.org/zap"
)

// RailroadExecution 在两座车站之间修铁路：跨 tick 轮询寻路，按建造速度逐 tick 铺轨，铺完后接入路网。
type RailroadExecution struct {
	g      *game.Game
	env    *Env
	from   *game.Station
	to     *game.Station
	search pathfind.Search
	tiles  []game.RailTile
	built  int
	active bool
}

func NewRailroadExecution(env *Env, from, to *game.Station) *RailroadExecution {
	return &RailroadExecution{env: env, from: from, to: to, active: true}
}

func (e *RailroadExecution) Init(g *game.Game, _ uint32) {
	e.g = g
	e.search = e.env.RailSearch(e.from.Tile(), e.to.Tile())
}

func (e *RailroadExecution) Tick(_ uint32) {
	game.MustInitialized(e.g, "railroad")
	if !e.active {
		return
	}
	if !e.from.IsActive() || !e.to.IsActive() {
		e.cancel()
		return
	}

	if e.tiles == nil {
		switch e.search.Compute() {
		case pathfind.Pending:
			return
		case pathfind.Completed:
			path := removeLoops(orthogonalize(e.g.Map(), e.search.ReconstructPath()))
			e.tiles = computeRailTiles(e.g.Map(), e.g.Logger(), path)
		default:
			e.g.Logger().Warn("railroad: no route between stations",
				zap.Uint32("from", e.from.Unit().ID()), zap.Uint32("to", e.to.Unit().ID()))
			e.active = false
			return
		}
	}

	speed := max(e.g.Config().RailBuildSpeed, 1)
	for i := 0; i < speed && e.built < len(e.tiles); i++ {
		rt := e.tiles[e.built]
		e.g.SetRailTile(rt.Tile, rt.Type)
		e.built++
	}
	if e.built == len(e.tiles) {
		e.g.RailNetwork().Connect(game.NewRailroad(e.from, e.to, e.tiles))
		e.active = false
	}
}

func (e *RailroadExecution) IsActive() bool               { return e.active }
func (e *RailroadExecution) ActiveDuringSpawnPhase() bool { return false }

// cancel 撤掉已经铺下的铁轨。
func (e *RailroadExecution) cancel() {
	for _, rt := range e.tiles[:e.built] {
		e.g.ClearRailTile(rt.Tile)
	}
	e.active = false
}

// orthogonalize 把斜向一步拆成两步，拐角优先落在陆地上。
func orthogonalize(m *game.GameMap, path []game.TileRef) []game.TileRef {
	if len(path) < 2 {
		return path
	}
	out := make([]game.TileRef, 0, len(path)+len(path)/2)
	out = append(out, path[0])
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if m.X(a) != m.X(b) && m.Y(a) != m.Y(b) {
			corner := m.Ref(m.X(b), m.Y(a))
			if alt := m.Ref(m.X(a), m.Y(b)); m.IsWater(corner) && m.IsLand(alt) {
				corner = alt
			}
			out = append(out, corner)
		}
		out = append(out, b)
	}
	return out
}

// removeLoops 去掉路径里的回环：某格再次出现时，截掉两次出现之间的部分。
func removeLoops(path []game.TileRef) []game.TileRef {
	out := make([]game.TileRef, 0, len(path))
	at := make(map[game.TileRef]int, len(path))
	for _, t := range path {
		if i, ok := at[t]; ok {
			for _, dropped := range out[i+1:] {
				delete(at, dropped)
			}
			out = out[:i+1]
			continue
		}
		at[t] = len(out)
		out = append(out, t)
	}
	return out
}

// computeRailTiles 为每个地块计算铁轨走向。
func computeRailTiles(m *game.GameMap, log logx.Logger, path []game.TileRef) []game.RailTile {
	out := make([]game.RailTile, len(path))
	for i, t := range path {
		out[i].Tile = t
		switch {
		case len(path) == 1:
			out[i].Type = game.RailVertical
		case i == 0:
			out[i].Type = endpointDirection(m, t, path[1])
		case i == len(path)-1:
			out[i].Type = endpointDirection(m, path[i-1], t)
		default:
			out[i].Type = computeDirection(m, log, path[i-1], t, path[i+1])
		}
	}
	return out
}

func endpointDirection(m *game.GameMap, a, b game.TileRef) game.RailType {
	dx, dy := m.X(b)-m.X(a), m.Y(b)-m.Y(a)
	switch {
	case dx == 0 && dy != 0:
		return game.RailVertical
	case dy == 0 && dx != 0:
		return game.RailHorizontal
	}
	return game.RailVertical
}

// computeDirection 按进入与离开当前地块的方向判断直轨或拐角。
// 无法识别的组合记 warn 并按竖直处理。
func computeDirection(m *game.GameMap, log logx.Logger, prev, cur, next game.TileRef) game.RailType {
	dx1, dy1 := m.X(cur)-m.X(prev), m.Y(cur)-m.Y(prev)
	dx2, dy2 := m.X(next)-m.X(cur), m.Y(next)-m.Y(cur)

	if dx1 == dx2 && dy1 == dy2 {
		if dx1 != 0 && dy1 == 0 {
			return game.RailHorizontal
		}
		if dx1 == 0 && dy1 != 0 {
			return game.RailVertical
		}
	}

	switch {
	case dx1 == 0 && dy1 == -1 && dx2 == 1 && dy2 == 0:
		return game.RailBottomRight
	case dx1 == 0 && dy1 == -1 && dx2 == -1 && dy2 == 0:
		return game.RailBottomLeft
	case dx1 == 0 && dy1 == 1 && dx2 == 1 && dy2 == 0:
		return game.RailTopRight
	case dx1 == 0 && dy1 == 1 && dx2 == -1 && dy2 == 0:
		return game.RailTopLeft
	case dx1 == 1 && dy1 == 0 && dx2 == 0 && dy2 == -1:
		return game.RailTopLeft
	case dx1 == -1 && dy1 == 0 && dx2 == 0 && dy2 == -1:
		return game.RailTopRight
	case dx1 == 1 && dy1 == 0 && dx2 == 0 && dy2 == 1:
		return game.RailBottomLeft
	case dx1 == -1 && dy1 == 0 && dx2 == 0 && dy2 == 1:
		return game.RailBottomRight
	}

	log.Warn("railroad: unknown rail pattern",
		zap.Int("x", m.X(cur)), zap.Int("y", m.Y(cur)),
		zap.Int("dx1", dx1), zap.Int("dy1", dy1), zap.Int("dx2", dx2), zap.Int("dy2", dy2))
	return game.RailVertical
}
