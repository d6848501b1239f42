package dc

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"FrontierSim/internal/stats/app/port"
	"FrontierSim/internal/stats/entity"
	"FrontierSim/modules/kit/logx"
)

const retryBackoff = 200 * time.Millisecond

// StatsDC 持有一局的统计聚合：Record 只改内存并置脏，Flush 同步出快照、异步写库。
// Record/Flush 由模拟循环单线程调用；写库在独立 goroutine。
type StatsDC struct {
	repo       port.StatsRepository
	entity     *entity.GameStats
	flushEvery time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending *entity.Snapshot
	version uint64
	saved   uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewStatsDC(gameID entity.GameID, repo port.StatsRepository, flushEvery time.Duration, log logx.Logger) *StatsDC {
	if log == nil {
		log = logx.Nop()
	}
	if flushEvery <= 0 {
		flushEvery = 3000 * time.Millisecond
	}
	d := &StatsDC{
		repo:       repo,
		entity:     entity.NewGameStats(gameID),
		flushEvery: flushEvery,
		log:        log,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *StatsDC) Record(tick uint32, at time.Time, rows []entity.PlayerStats) {
	d.entity.Record(tick, at, rows)
}

func (d *StatsDC) Flush(ctx context.Context) {
	_ = ctx
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *StatsDC) IsDirty() bool {
	return d.entity.Dirty()
}

func (d *StatsDC) Entity() *entity.GameStats {
	return d.entity
}

func (d *StatsDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// SavedVersion 是已成功写库的最大快照版本。
func (d *StatsDC) SavedVersion() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// Close 先把脏数据出快照，再等写协程清空队列；ctx 到期直接返回。
func (d *StatsDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *StatsDC) buildNextSnapshot() (*entity.Snapshot, bool) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *StatsDC) enqueueLatest(s *entity.Snapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *StatsDC) popPending() *entity.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeueOnError 关闭后不再重排，避免仓储一直失败时 Close 卡死。
func (d *StatsDC) requeueOnError(s *entity.Snapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	return true
}

func (d *StatsDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *StatsDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.Save(context.Background(), s); err != nil {
			d.log.Warn("stats save failed",
				zap.Int64("game_id", int64(s.GameID)),
				zap.Uint64("version", s.Version),
				zap.Error(err))
			// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。
			if !d.requeueOnError(s) {
				return
			}
			time.Sleep(retryBackoff)
			continue
		}
		d.mu.Lock()
		d.saved = max(d.saved, s.Version)
		d.mu.Unlock()
	}
}
