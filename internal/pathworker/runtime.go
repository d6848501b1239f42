package pathworker

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
	"FrontierSim/internal/shared/simconfig"
	"FrontierSim/modules/kit/errx"
	"FrontierSim/modules/kit/logx"
)

const defaultAskTimeout = 2 * time.Second

// Runtime 是观察端发起临时寻路查询的入口：请求经 actor mailbox 进入 worker，
// 结果按 correlation id 配对，超时受 ctx 与配置双重约束。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	worker  *protoactor.PID
	timeout time.Duration
	log     logx.Logger
}

// NewRuntime 复制 m 的地形（不含归属）交给 worker，之后模拟里的地图变化与 worker 无关。
func NewRuntime(m *game.GameMap, rules game.Config, cfg simconfig.PathWorkerConfig, log logx.Logger) (*Runtime, error) {
	if log == nil {
		log = logx.Nop()
	}
	terrain := m.TerrainOnly()
	coarse, err := pathfind.NewCoarseMap(terrain, rules.PathCoarseFactor)
	if err != nil {
		return nil, err
	}
	opts := pathfind.OptionsFromConfig(rules)
	if cfg.NodeBudget > 0 {
		opts.NodeBudget = cfg.NodeBudget
	}
	if cfg.MaxAttempts > 0 {
		opts.MaxAttempts = cfg.MaxAttempts
	}
	timeout := cfg.AskTimeout()
	if timeout <= 0 {
		timeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return NewWorkerActor(terrain, coarse, opts, float32(rules.PathCoarseWaterPenalty), log)
	})
	worker := root.Spawn(props)

	return &Runtime{
		system:  system,
		root:    root,
		worker:  worker,
		timeout: timeout,
		log:     log,
	}, nil
}

// FindPath 向 worker 请求一条路径。找不到路返回 PATH_NOT_FOUND 业务错误，超时返回 TIMEOUT。
func (r *Runtime) FindPath(ctx context.Context, mode Mode, from, to game.TileRef) (*PathResponse, error) {
	if r == nil || r.root == nil || r.worker == nil {
		return nil, ErrNotRunning
	}
	if !mode.Valid() {
		return nil, errBadRequest.WithData("mode", string(mode))
	}

	req := &PathRequest{
		CorrelationID: uuid.NewString(),
		Mode:          mode,
		From:          from,
		To:            to,
	}
	timeout := r.timeoutFromContext(ctx)
	res, err := r.root.RequestFuture(r.worker, req, timeout).Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithData("correlation_id", req.CorrelationID).WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithData("correlation_id", req.CorrelationID).WithCause(err)
	}

	resp, ok := res.(*PathResponse)
	if !ok || resp == nil {
		return nil, errx.ErrInternal.WithData("correlation_id", req.CorrelationID)
	}
	if resp.CorrelationID != req.CorrelationID {
		// 同一 future 不会串号；出现即说明 worker 回错了请求。
		r.log.Error("path worker correlation mismatch",
			zap.String("want", req.CorrelationID),
			zap.String("got", resp.CorrelationID))
		return nil, errx.ErrInternal.WithData("correlation_id", req.CorrelationID)
	}
	if resp.Err != nil {
		return resp, resp.Err
	}
	return resp, nil
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.worker != nil {
		_ = r.root.StopFuture(r.worker).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
