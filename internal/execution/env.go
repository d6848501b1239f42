package execution

import (
	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
)

// Env 是铁路寻路用到的、按局共享的只读数据。
type Env struct {
	Coarse       *pathfind.CoarseMap
	PathOpts     pathfind.Options
	WaterPenalty float32
}

func NewEnv(g *game.Game) (*Env, error) {
	cfg := g.Config()
	cm, err := pathfind.NewCoarseMap(g.Map(), cfg.PathCoarseFactor)
	if err != nil {
		return nil, err
	}
	return &Env{
		Coarse:       cm,
		PathOpts:     pathfind.OptionsFromConfig(cfg),
		WaterPenalty: float32(cfg.PathCoarseWaterPenalty),
	}, nil
}

// RailSearch 为两座车站之间的铁路新建一次分层寻路（偏好陆地）。
func (e *Env) RailSearch(from, to game.TileRef) pathfind.Search {
	adapter := pathfind.NewPreferLandAdapter(e.Coarse.Coarse(), e.WaterPenalty)
	return pathfind.NewHierarchical(e.Coarse, adapter, []game.TileRef{from}, to, e.PathOpts)
}
