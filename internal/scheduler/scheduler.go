package scheduler

import (
	"slices"

	"FrontierSim/internal/game"
	"FrontierSim/modules/kit/logx"

	"go.uber.org/zap"
)

type entry struct {
	exec        game.Execution
	initialized bool
}

// Scheduler 持有全部 execution，按插入顺序推进。
//
// 每个 tick：
//  1. 初始化待初始化的 execution（出生阶段只初始化出生阶段可运行的）
//  2. 推进已初始化且活跃的 execution（出生阶段只推进出生阶段可运行的）
//  3. 移除已失效的 execution，然后推进世界 tick
//
// tick 内新加入的 execution 进入 pending，下一个 tick 才被初始化。
type Scheduler struct {
	g       *game.Game
	log     logx.Logger
	active  []*entry
	pending []game.Execution
}

func New(g *game.Game, log logx.Logger) *Scheduler {
	if log == nil {
		log = logx.Nop()
	}
	s := &Scheduler{g: g, log: log}
	g.SetExecutionSink(s)
	return s
}

// Add 实现 game.ExecutionSink。
func (s *Scheduler) Add(execs ...game.Execution) {
	s.pending = append(s.pending, execs...)
}

func (s *Scheduler) Game() *game.Game { return s.g }

// NumActive 返回已进入活跃列表的 execution 数量（含尚未初始化的）。
func (s *Scheduler) NumActive() int { return len(s.active) }

func (s *Scheduler) NumPending() int { return len(s.pending) }

// Executions 按插入顺序返回活跃列表的快照。
func (s *Scheduler) Executions() []game.Execution {
	out := make([]game.Execution, len(s.active))
	for i, en := range s.active {
		out[i] = en.exec
	}
	return out
}

// Tick 推进一个完整的模拟 tick。
func (s *Scheduler) Tick() {
	ticks := s.g.Ticks()
	spawnPhase := s.g.InSpawnPhase()

	incoming := s.pending
	s.pending = nil
	for _, e := range incoming {
		s.active = append(s.active, &entry{exec: e})
	}

	// 本轮遍历的长度固定：初始化时派生的 execution 进 pending，不影响本轮。
	current := s.active
	for _, en := range current {
		if en.initialized || (spawnPhase && !en.exec.ActiveDuringSpawnPhase()) {
			continue
		}
		en.exec.Init(s.g, ticks)
		en.initialized = true
	}

	for _, en := range current {
		if !en.initialized || !en.exec.IsActive() {
			continue
		}
		if spawnPhase && !en.exec.ActiveDuringSpawnPhase() {
			continue
		}
		en.exec.Tick(ticks)
	}

	before := len(s.active)
	s.active = slices.DeleteFunc(s.active, func(en *entry) bool {
		return en.initialized && !en.exec.IsActive()
	})
	if removed := before - len(s.active); removed > 0 {
		s.log.Debug("scheduler: executions removed", zap.Uint32("tick", ticks), zap.Int("removed", removed))
	}

	s.g.AdvanceTick()
}
