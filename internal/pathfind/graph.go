package pathfind

import "FrontierSim/internal/game"

// GraphAdapter 是寻路看到的地图能力视图。寻路只读不写，也不持有地图。
type GraphAdapter interface {
	Neighbors(t game.TileRef) []game.TileRef
	Cost(t game.TileRef) float32
	Position(t game.TileRef) game.Cell
	IsTraversable(from, to game.TileRef) bool
}

type TravelMode uint8

const (
	// Water 只走水域。
	Water TravelMode = iota
	// Land 走陆地，以及紧贴海岸的水域（允许岸到岸穿越）。
	Land
)

// MapAdapter 把 GameMap 包装成 GraphAdapter。
// WaterPenalty > 0 时为“偏好陆地”模式：水域可走但代价更高。
type MapAdapter struct {
	m            *game.GameMap
	mode         TravelMode
	waterPenalty float32
}

func NewWaterAdapter(m *game.GameMap) *MapAdapter {
	return &MapAdapter{m: m, mode: Water}
}

func NewLandAdapter(m *game.GameMap) *MapAdapter {
	return &MapAdapter{m: m, mode: Land}
}

// NewPreferLandAdapter 允许穿越任意水域，每个水格额外计 penalty。
func NewPreferLandAdapter(m *game.GameMap, penalty float32) *MapAdapter {
	return &MapAdapter{m: m, mode: Land, waterPenalty: max(penalty, 0)}
}

func (a *MapAdapter) Map() *game.GameMap { return a.m }

func (a *MapAdapter) Neighbors(t game.TileRef) []game.TileRef { return a.m.Neighbors(t) }

func (a *MapAdapter) Cost(t game.TileRef) float32 {
	if a.waterPenalty > 0 && a.m.IsWater(t) {
		return 1 + a.waterPenalty
	}
	return 1
}

func (a *MapAdapter) Position(t game.TileRef) game.Cell {
	return game.Cell{X: a.m.X(t), Y: a.m.Y(t)}
}

func (a *MapAdapter) IsTraversable(_, to game.TileRef) bool {
	switch a.mode {
	case Water:
		return a.m.IsWater(to)
	default:
		if a.m.IsLand(to) || a.waterPenalty > 0 {
			return true
		}
		return a.m.IsShoreline(to)
	}
}
