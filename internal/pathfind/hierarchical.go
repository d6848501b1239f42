package pathfind

import (
	"slices"

	"FrontierSim/internal/game"
)

// Hierarchical 在粗地图上跑双向 A*，完成后放大回精细地图并修正两端，
// 保证路径以请求的起点开始、以请求的终点结束。
type Hierarchical struct {
	cm      *CoarseMap
	inner   *AStar
	sources []game.TileRef
	dst     game.TileRef
	path    []game.TileRef
}

// NewHierarchical 的 adapter 必须包装 cm.Coarse()。
func NewHierarchical(cm *CoarseMap, adapter GraphAdapter, sources []game.TileRef, dst game.TileRef, opts Options) *Hierarchical {
	coarseSrc := make([]game.TileRef, 0, len(sources))
	for _, s := range sources {
		p := cm.Project(s)
		if !slices.Contains(coarseSrc, p) {
			coarseSrc = append(coarseSrc, p)
		}
	}
	return &Hierarchical{
		cm:      cm,
		inner:   NewAStar(adapter, coarseSrc, cm.Project(dst), opts),
		sources: slices.Clone(sources),
		dst:     dst,
	}
}

func (h *Hierarchical) Compute() Status {
	if h.path != nil {
		return Completed
	}
	st := h.inner.Compute()
	if st != Completed {
		return st
	}
	h.path = h.fixExtremes(h.cm.Upscale(h.inner.ReconstructPath()))
	return Completed
}

func (h *Hierarchical) ReconstructPath() []game.TileRef {
	return slices.Clone(h.path)
}

// fixExtremes：起点不在路径里就补在前面，在路径里就从它截起；终点同理。
// 补点时插值连接，避免跳格。
func (h *Hierarchical) fixExtremes(path []game.TileRef) []game.TileRef {
	fine := h.cm.Fine()

	start := -1
	for i, t := range path {
		if slices.Contains(h.sources, t) {
			start = i
			break
		}
	}
	if start >= 0 {
		path = path[start:]
	} else {
		src := h.closestSource(path[0])
		head := appendLine(fine, nil, cellOf(fine, src), cellOf(fine, path[0]))
		path = append(head, path...)
	}

	if end := slices.Index(path, h.dst); end >= 0 {
		path = path[:end+1]
	} else {
		tail := appendLine(fine, nil, cellOf(fine, h.dst), cellOf(fine, path[len(path)-1]))
		slices.Reverse(tail)
		path = append(path, tail...)
	}
	return path
}

func (h *Hierarchical) closestSource(t game.TileRef) game.TileRef {
	fine := h.cm.Fine()
	best := h.sources[0]
	for _, s := range h.sources[1:] {
		if fine.ManhattanDist(s, t) < fine.ManhattanDist(best, t) {
			best = s
		}
	}
	return best
}

func cellOf(m *game.GameMap, t game.TileRef) game.Cell {
	return game.Cell{X: m.X(t), Y: m.Y(t)}
}
