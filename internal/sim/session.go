package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FrontierSim/internal/execution"
	"FrontierSim/internal/game"
	"FrontierSim/internal/scheduler"
	"FrontierSim/internal/stats/dc"
	"FrontierSim/internal/stats/entity"
	"FrontierSim/modules/kit/errx"
	"FrontierSim/modules/kit/logx"
	"FrontierSim/modules/kit/tracex"
)

const (
	defaultQueueSize   = 1024
	defaultRecordEvery = 10
	// 出生点之间至少隔开的距离，以出生半径的倍数计。
	spawnSpacing = 3
)

var ErrQueueFull = errx.NewBiz("COMMAND_QUEUE_FULL", "命令队列已满")

type Options struct {
	GameID int64
	Rules  game.Config
	Map    *game.GameMap
	// Bots 是开局自动出生的 bot 名字，出生点由种子决定。
	Bots []string
	// Stats 为 nil 时不记录统计。
	Stats       *dc.StatsDC
	RecordEvery uint32
	QueueSize   int
	Log         logx.Logger
}

// Ticket 是命令的受理回执。
type Ticket struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	// AfterTick 是受理时已完成的 tick；命令在下一个 tick 开始时生效。
	AfterTick uint32 `json:"after_tick"`
}

type queued struct {
	ticket Ticket
	cmd    Command
}

// Session 是一局模拟。Step/Run/Close 只能在同一个协程上调用；
// Submit/View/Subscribe 可以被任意协程并发调用。
type Session struct {
	id          int64
	g           *game.Game
	sched       *scheduler.Scheduler
	env         *execution.Env
	log         logx.Logger
	ctx         context.Context
	landTiles   int
	stats       *dc.StatsDC
	recordEvery uint32

	mu       sync.Mutex
	queue    []queued
	queueCap int
	closed   bool

	view atomic.Pointer[StateView]

	subMu   sync.Mutex
	subs    map[int]chan *StateView
	nextSub int
}

func NewSession(opts Options) (*Session, error) {
	if opts.Map == nil {
		return nil, errx.ErrReqParamERR.WithData("field", "map")
	}
	log := opts.Log
	if log == nil {
		log = logx.Nop()
	}
	ctx := tracex.WithGameID(context.Background(), opts.GameID)
	log = log.WithContext(ctx)

	g := game.NewGame(opts.Rules, opts.Map, log)
	env, err := execution.NewEnv(g)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:          opts.GameID,
		g:           g,
		sched:       scheduler.New(g, log),
		env:         env,
		log:         log,
		ctx:         ctx,
		landTiles:   opts.Map.NumLandTiles(),
		stats:       opts.Stats,
		recordEvery: opts.RecordEvery,
		queueCap:    opts.QueueSize,
		subs:        make(map[int]chan *StateView),
	}
	if s.recordEvery == 0 {
		s.recordEvery = defaultRecordEvery
	}
	if s.queueCap <= 0 {
		s.queueCap = defaultQueueSize
	}

	for i, t := range pickSpawnTiles(g, len(opts.Bots)) {
		s.sched.Add(execution.NewSpawnExecution(game.PlayerInfo{Name: opts.Bots[i], Type: game.PlayerBot}, t))
	}
	s.publish()
	log.Info("session created",
		zap.Int("width", opts.Map.Width()),
		zap.Int("height", opts.Map.Height()),
		zap.Int("land_tiles", s.landTiles),
		zap.Int("bots", len(opts.Bots)))
	return s, nil
}

func (s *Session) ID() int64 { return s.id }

// Map 返回地图；地形不可变，宽高可并发读取。
func (s *Session) Map() *game.GameMap { return s.g.Map() }

// Game 只能在模拟协程上使用。
func (s *Session) Game() *game.Game { return s.g }

// View 返回最近一次发布的快照。
func (s *Session) View() *StateView { return s.view.Load() }

// Submit 受理一条命令，下一个 tick 开始时转换为 execution。
func (s *Session) Submit(cmd Command) (Ticket, error) {
	if cmd == nil {
		return Ticket{}, ErrBadCommand.WithData("reason", "nil command")
	}
	if err := cmd.Check(s.g.Map()); err != nil {
		return Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Ticket{}, ErrSessionDone
	}
	if len(s.queue) >= s.queueCap {
		return Ticket{}, ErrQueueFull.WithReason(ReasonQueueFull)
	}
	t := Ticket{ID: uuid.NewString(), Kind: cmd.Kind(), AfterTick: s.View().Tick}
	s.queue = append(s.queue, queued{ticket: t, cmd: cmd})
	return t, nil
}

// Step 推进一个 tick：先落实排队的命令，再跑调度器，最后发布快照。
func (s *Session) Step() {
	s.drainCommands()
	s.sched.Tick()
	v := s.publish()
	if s.stats != nil && v.Tick%s.recordEvery == 0 {
		s.stats.Record(v.Tick, time.Now(), statsRows(v))
	}
}

// Run 按 interval 推进，直到 ctx 结束或达到 maxTicks（0 表示不限）。
// 统计按 DC 的节奏异步刷盘。
func (s *Session) Run(ctx context.Context, interval time.Duration, maxTicks uint32) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var flushC <-chan time.Time
	if s.stats != nil {
		ft := time.NewTicker(s.stats.FlushEvery())
		defer ft.Stop()
		flushC = ft.C
	}

	s.log.Info("session run", zap.Duration("interval", interval), zap.Uint32("max_ticks", maxTicks))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-flushC:
			s.stats.Flush(ctx)
		case <-ticker.C:
			s.Step()
			if maxTicks > 0 && s.g.Ticks() >= maxTicks {
				s.log.Info("session reached max ticks", zap.Uint32("tick", s.g.Ticks()))
				return nil
			}
		}
	}
}

// Close 拒绝新命令、关闭全部订阅，并等待统计落库。
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.queue = nil
	s.mu.Unlock()

	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()

	if s.stats == nil {
		return nil
	}
	if v := s.View(); v != nil {
		s.stats.Record(v.Tick, time.Now(), statsRows(v))
	}
	if err := s.stats.Close(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Subscribe 订阅每个 tick 的快照。通道只保留最新一份，慢消费者会跳过中间 tick。
func (s *Session) Subscribe() (<-chan *StateView, func()) {
	ch := make(chan *StateView, 1)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	if v := s.View(); v != nil {
		ch <- v
	}
	s.subMu.Unlock()
	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
	return ch, cancel
}

func (s *Session) drainCommands() {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, q := range batch {
		exec, err := q.cmd.Build(s.g, s.env)
		if err != nil {
			reason := "unknown"
			var e *errx.Error
			if errors.As(err, &e) {
				reason = string(e.Code())
			}
			logx.ReportBizReject(s.ctx, s.log, logx.NewBizLog("sim.command."+q.ticket.Kind, reason, err.Error()),
				zap.String("ticket", q.ticket.ID))
			continue
		}
		s.sched.Add(exec)
	}
}

func (s *Session) publish() *StateView {
	v := buildView(s.id, s.g, s.landTiles, s.sched.NumActive()+s.sched.NumPending())
	s.view.Store(v)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
	return v
}

func statsRows(v *StateView) []entity.PlayerStats {
	rows := make([]entity.PlayerStats, 0, len(v.Players))
	for _, p := range v.Players {
		rows = append(rows, entity.PlayerStats{
			SmallID:      p.ID,
			Name:         p.Name,
			Type:         p.Type,
			TilesOwned:   p.TilesOwned,
			TerritoryPct: p.TerritoryPct,
			Troops:       p.Troops,
			Gold:         p.Gold,
			Units:        p.Units,
			Alive:        p.Alive,
			Rank:         p.Rank,
		})
	}
	return rows
}

// pickSpawnTiles 用局内随机源挑 n 个互相隔开的陆地出生点；
// 地图太挤时逐步放宽间距。
func pickSpawnTiles(g *game.Game, n int) []game.TileRef {
	if n <= 0 {
		return nil
	}
	m := g.Map()
	minDist := max(spawnSpacing*g.Config().SpawnRadius, 1)
	out := make([]game.TileRef, 0, n)
	for minDist >= 1 && len(out) < n {
		for attempt := 0; attempt < 1000 && len(out) < n; attempt++ {
			t := game.TileRef(g.Rand().NextInt(0, m.NumTiles()))
			if !m.IsLand(t) || m.HasOwner(t) || tooClose(m, out, t, minDist) {
				continue
			}
			out = append(out, t)
		}
		minDist--
	}
	if len(out) < n {
		g.Logger().Warn("not enough spawn tiles for bots", zap.Int("want", n), zap.Int("got", len(out)))
	}
	return out
}

func tooClose(m *game.GameMap, picked []game.TileRef, t game.TileRef, minDist int) bool {
	for _, p := range picked {
		if m.EuclideanDistSquared(p, t) < minDist*minDist {
			return true
		}
	}
	return false
}
