package game

// Execution 是每个模拟实体共用的生命周期契约。
//
// 状态：未初始化 → 活跃 → 不活跃（终态，由调度器移除，不再复用）。
type Execution interface {
	IsActive() bool
	Init(g *Game, ticks uint32)
	Tick(ticks uint32)
	ActiveDuringSpawnPhase() bool
}

// ExecutionSink 接收 tick 中新建的 execution，下一个 tick 才会被初始化。
type ExecutionSink interface {
	Add(execs ...Execution)
}
