package handler

import (
	"context"

	"go.uber.org/zap"

	"FrontierSim/internal/game"
	"FrontierSim/internal/observer/dto"
	"FrontierSim/internal/pathworker"
	"FrontierSim/internal/sim"
	"FrontierSim/internal/stats/app/port"
	"FrontierSim/internal/stats/entity"
	"FrontierSim/modules/kit/errx"
	"FrontierSim/modules/kit/logx"
)

// PushTick 是每个 tick 推给 ws 订阅者的消息名。
const PushTick = "sim.tick"

// Simulation 是观察端看到的会话。
type Simulation interface {
	ID() int64
	Map() *game.GameMap
	View() *sim.StateView
	Submit(cmd sim.Command) (sim.Ticket, error)
	Subscribe() (<-chan *sim.StateView, func())
}

type PathFinder interface {
	FindPath(ctx context.Context, mode pathworker.Mode, from, to game.TileRef) (*pathworker.PathResponse, error)
}

var (
	ErrNoSnapshot = errx.NewSys(errx.CodeUnavailable, "快照尚未就绪")
	ErrNoPaths    = errx.NewSys(errx.CodeUnavailable, "寻路服务未启用")
	ErrNoStats    = errx.NewSys(errx.CodeUnavailable, "统计仓储未启用")
)

// Observer 汇总 HTTP 与 ws 共用的查询/命令逻辑。
type Observer struct {
	sim   Simulation
	paths PathFinder
	stats port.StatsRepository
	log   logx.Logger
}

// NewObserver 中 paths、stats 可以为 nil，对应接口返回 503。
func NewObserver(s Simulation, paths PathFinder, stats port.StatsRepository, log logx.Logger) *Observer {
	if log == nil {
		log = logx.Nop()
	}
	return &Observer{sim: s, paths: paths, stats: stats, log: log}
}

func (o *Observer) State() (*sim.StateView, error) {
	v := o.sim.View()
	if v == nil {
		return nil, ErrNoSnapshot
	}
	return v, nil
}

func (o *Observer) Player(id uint16) (sim.PlayerView, error) {
	v, err := o.State()
	if err != nil {
		return sim.PlayerView{}, err
	}
	p, ok := v.Player(id)
	if !ok {
		return sim.PlayerView{}, game.ErrPlayerNotFound.WithData("id", id)
	}
	return p, nil
}

func (o *Observer) Path(ctx context.Context, req dto.PathReq) (dto.PathResp, error) {
	if o.paths == nil {
		return dto.PathResp{}, ErrNoPaths
	}
	m := o.sim.Map()
	if !m.IsValidCoord(req.FromX, req.FromY) || !m.IsValidCoord(req.ToX, req.ToY) {
		return dto.PathResp{}, game.ErrInvalidTile.
			WithData("from", dto.Point{X: req.FromX, Y: req.FromY}).
			WithData("to", dto.Point{X: req.ToX, Y: req.ToY})
	}
	resp, err := o.paths.FindPath(ctx, pathworker.Mode(req.Mode), m.Ref(req.FromX, req.FromY), m.Ref(req.ToX, req.ToY))
	if err != nil {
		return dto.PathResp{}, err
	}
	return dto.NewPathResp(m, resp), nil
}

func (o *Observer) Stats(ctx context.Context) (*entity.Snapshot, error) {
	if o.stats == nil {
		return nil, ErrNoStats
	}
	return o.stats.Latest(ctx, entity.GameID(o.sim.ID()))
}

func (o *Observer) Submit(ctx context.Context, operator string, cmd sim.Command) (sim.Ticket, error) {
	t, err := o.sim.Submit(cmd)
	if err != nil {
		return sim.Ticket{}, err
	}
	o.log.WithContext(ctx).Info("command accepted",
		zap.String("operator", operator),
		zap.String("kind", t.Kind),
		zap.String("ticket", t.ID),
		zap.Uint32("after_tick", t.AfterTick))
	return t, nil
}

// Stream 把会话快照推给 conn，直到连接关闭或会话结束。
func (o *Observer) Stream(conn interface {
	Push(name string, data any) bool
	Done() <-chan struct{}
}) {
	ch, cancel := o.sim.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					return
				}
				conn.Push(PushTick, v)
			case <-conn.Done():
				return
			}
		}
	}()
}
