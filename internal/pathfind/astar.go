package pathfind

import (
	"slices"

	"FrontierSim/internal/game"
)

// Status 是一次 Compute 的结果。
type Status uint8

const (
	NextTile Status = iota
	Pending
	Completed
	PathNotFound
)

func (s Status) String() string {
	switch s {
	case NextTile:
		return "next_tile"
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case PathNotFound:
		return "path_not_found"
	default:
		return "unknown"
	}
}

// Search 是可跨 tick 续算的寻路。
type Search interface {
	Compute() Status
	ReconstructPath() []game.TileRef
}

type Options struct {
	// NodeBudget 是单次 Compute 允许展开的节点数。
	NodeBudget int
	// MaxAttempts 是 Compute 的总调用次数上限，用完仍未相遇即 PathNotFound。
	MaxAttempts int
	// DirectionPenalty 在转向时追加，路径更直但不再最优。
	DirectionPenalty float32
}

func OptionsFromConfig(cfg game.Config) Options {
	return Options{
		NodeBudget:       cfg.PathNodeBudget,
		MaxAttempts:      cfg.PathMaxAttempts,
		DirectionPenalty: float32(cfg.PathDirectionPenalty),
	}
}

// heuristicWeight 放大曼哈顿距离，用最优性换更少的展开。
const heuristicWeight = 2

type frontier struct {
	open   *MinHeap
	g      map[game.TileRef]float32
	prev   map[game.TileRef]game.TileRef
	closed map[game.TileRef]struct{}
}

func newFrontier() frontier {
	return frontier{
		open:   NewMinHeap(64),
		g:      make(map[game.TileRef]float32, 256),
		prev:   make(map[game.TileRef]game.TileRef, 256),
		closed: make(map[game.TileRef]struct{}, 256),
	}
}

// AStar 是双向 A*：正向从所有起点出发，反向从终点出发，两边任一方弹出对方已打分的节点即相遇。
// 状态保存在结构体里，预算用完返回 Pending，下次 Compute 接着算。
type AStar struct {
	g    GraphAdapter
	opts Options

	sources       []game.TileRef
	dst           game.TileRef
	closestSource game.TileRef

	fwd frontier
	bwd frontier

	attemptsLeft int
	meeting      game.TileRef
	completed    bool
	failed       bool
}

func NewAStar(g GraphAdapter, sources []game.TileRef, dst game.TileRef, opts Options) *AStar {
	a := &AStar{
		g:            g,
		opts:         opts,
		sources:      slices.Clone(sources),
		dst:          dst,
		fwd:          newFrontier(),
		bwd:          newFrontier(),
		attemptsLeft: opts.MaxAttempts,
	}
	if len(a.sources) == 0 {
		a.failed = true
		return a
	}
	a.closestSource = a.sources[0]
	best := a.manhattan(a.closestSource, dst)
	for _, s := range a.sources[1:] {
		if d := a.manhattan(s, dst); d < best {
			best, a.closestSource = d, s
		}
	}
	for _, s := range a.sources {
		if _, ok := a.fwd.g[s]; ok {
			continue
		}
		a.fwd.g[s] = 0
		a.fwd.open.Push(s, a.heuristic(s, dst))
	}
	a.bwd.g[dst] = 0
	a.bwd.open.Push(dst, a.heuristic(dst, a.closestSource))
	return a
}

func (a *AStar) Compute() Status {
	if a.completed {
		return Completed
	}
	if a.failed {
		return PathNotFound
	}
	a.attemptsLeft--

	budget := a.opts.NodeBudget
	for a.fwd.open.Len() > 0 && a.bwd.open.Len() > 0 {
		if budget <= 0 {
			if a.attemptsLeft <= 0 {
				a.failed = true
				return PathNotFound
			}
			return Pending
		}
		budget--

		cur, _ := a.fwd.open.Pop()
		if _, ok := a.bwd.g[cur]; ok {
			a.meeting, a.completed = cur, true
			return Completed
		}
		a.expand(&a.fwd, cur, true)

		cur, _ = a.bwd.open.Pop()
		if _, ok := a.fwd.g[cur]; ok {
			a.meeting, a.completed = cur, true
			return Completed
		}
		a.expand(&a.bwd, cur, false)
	}
	a.failed = true
	return PathNotFound
}

func (a *AStar) expand(f *frontier, cur game.TileRef, forward bool) {
	if _, done := f.closed[cur]; done {
		return
	}
	f.closed[cur] = struct{}{}

	target := a.dst
	if !forward {
		target = a.closestSource
	}
	prev, hasPrev := f.prev[cur]
	for _, n := range a.g.Neighbors(cur) {
		// 反向搜索里真实的移动方向是 n -> cur。进入终点的边总是放行，终点本身可能不可通行（如港口所在的陆地）。
		from, to := cur, n
		if !forward {
			from, to = n, cur
		}
		if to != a.dst && !a.g.IsTraversable(from, to) {
			continue
		}
		cost := f.g[cur] + a.g.Cost(n)
		if hasPrev && a.opts.DirectionPenalty > 0 && a.turns(prev, cur, n) {
			cost += a.opts.DirectionPenalty
		}
		if old, seen := f.g[n]; seen && cost >= old {
			continue
		}
		f.g[n] = cost
		f.prev[n] = cur
		f.open.Push(n, cost+a.heuristic(n, target))
	}
}

func (a *AStar) turns(prev, cur, next game.TileRef) bool {
	p, c, n := a.g.Position(prev), a.g.Position(cur), a.g.Position(next)
	return sign(c.X-p.X) != sign(n.X-c.X) || sign(c.Y-p.Y) != sign(n.Y-c.Y)
}

func (a *AStar) heuristic(from, to game.TileRef) float32 {
	return float32(heuristicWeight * a.manhattan(from, to))
}

func (a *AStar) manhattan(from, to game.TileRef) int {
	p, q := a.g.Position(from), a.g.Position(to)
	return absInt(p.X-q.X) + absInt(p.Y-q.Y)
}

// ReconstructPath 只在 Completed 之后有效：起点…相遇点 + 相遇点…终点。
func (a *AStar) ReconstructPath() []game.TileRef {
	if !a.completed {
		return nil
	}
	path := []game.TileRef{a.meeting}
	for cur := a.meeting; ; {
		p, ok := a.fwd.prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)
	for cur := a.meeting; ; {
		n, ok := a.bwd.prev[cur]
		if !ok {
			break
		}
		path = append(path, n)
		cur = n
	}
	return path
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
