package pathfind

import (
	"slices"

	"FrontierSim/internal/game"
)

// SearchFactory 为 (起点, 终点) 新建一次寻路。
type SearchFactory func(src, dst game.TileRef) Search

// Navigator 为单个移动单位逐格给出下一步。终点变化或单位偏离路径时重新寻路。
type Navigator struct {
	newSearch SearchFactory
	search    Search
	dst       game.TileRef
	path      []game.TileRef
	idx       int
}

func NewNavigator(f SearchFactory) *Navigator {
	return &Navigator{newSearch: f}
}

// NewMapNavigator 在精细地图上直接跑双向 A*。
func NewMapNavigator(adapter GraphAdapter, opts Options) *Navigator {
	return NewNavigator(func(src, dst game.TileRef) Search {
		return NewAStar(adapter, []game.TileRef{src}, dst, opts)
	})
}

// NextTile 返回 cur 之后的下一格。
// 到达终点返回 Completed；寻路还在算返回 (cur, Pending)；找不到返回 PathNotFound。
func (n *Navigator) NextTile(cur, dst game.TileRef) (game.TileRef, Status) {
	if cur == dst {
		return dst, Completed
	}
	if n.search == nil || n.dst != dst {
		n.reset(cur, dst)
	}
	if n.path == nil {
		switch n.search.Compute() {
		case Completed:
			n.path = n.search.ReconstructPath()
			n.idx = 0
		case Pending:
			return cur, Pending
		default:
			n.search = nil
			return cur, PathNotFound
		}
	}

	if n.idx >= len(n.path) || n.path[n.idx] != cur {
		i := slices.Index(n.path, cur)
		if i < 0 {
			n.reset(cur, dst)
			return cur, Pending
		}
		n.idx = i
	}
	if n.idx+1 >= len(n.path) {
		return dst, Completed
	}
	n.idx++
	return n.path[n.idx], NextTile
}

func (n *Navigator) reset(cur, dst game.TileRef) {
	n.search = n.newSearch(cur, dst)
	n.dst = dst
	n.path = nil
	n.idx = 0
}
