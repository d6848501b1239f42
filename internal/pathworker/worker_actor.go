package pathworker

import (
	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
	"FrontierSim/modules/kit/logx"
)

// WorkerActor 持有只含地形的地图副本，在自己的 mailbox 上串行跑完整次寻路，
// 不碰模拟循环里的任何状态。
type WorkerActor struct {
	m            *game.GameMap
	coarse       *pathfind.CoarseMap
	opts         pathfind.Options
	waterPenalty float32
	log          logx.Logger
	served       int
}

func NewWorkerActor(m *game.GameMap, coarse *pathfind.CoarseMap, opts pathfind.Options, waterPenalty float32, log logx.Logger) *WorkerActor {
	return &WorkerActor{
		m:            m,
		coarse:       coarse,
		opts:         opts,
		waterPenalty: waterPenalty,
		log:          log,
	}
}

func (w *WorkerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		w.log.Debug("path worker started", zap.String("pid", ctx.Self().String()))
	case *actor.Stopping:
		w.log.Debug("path worker stopping", zap.Int("served", w.served))
	case *PathRequest:
		if msg == nil {
			ctx.Respond(&PathResponse{Status: pathfind.PathNotFound, Err: errBadRequest.WithData("reason", "nil request")})
			return
		}
		w.served++
		ctx.Respond(w.solve(msg))
	default:
		return
	}
}

func (w *WorkerActor) solve(req *PathRequest) *PathResponse {
	resp := &PathResponse{CorrelationID: req.CorrelationID, Status: pathfind.PathNotFound}
	if !w.m.IsValidRef(req.From) || !w.m.IsValidRef(req.To) {
		resp.Err = game.ErrInvalidTile.WithData("from", uint32(req.From)).WithData("to", uint32(req.To))
		return resp
	}

	search, ok := w.newSearch(req)
	if !ok {
		resp.Err = errBadRequest.WithData("mode", string(req.Mode))
		return resp
	}

	// 预算由 opts.MaxAttempts 兜底，Pending 之外的状态都会终止循环。
	for {
		resp.Attempts++
		st := search.Compute()
		if st == pathfind.Pending {
			continue
		}
		resp.Status = st
		break
	}
	if resp.Status == pathfind.Completed {
		resp.Path = search.ReconstructPath()
		return resp
	}
	resp.Err = pathfind.ErrPathNotFound.WithData("from", uint32(req.From)).WithData("to", uint32(req.To))
	return resp
}

func (w *WorkerActor) newSearch(req *PathRequest) (pathfind.Search, bool) {
	src := []game.TileRef{req.From}
	switch req.Mode {
	case ModeWater:
		return pathfind.NewAStar(pathfind.NewWaterAdapter(w.m), src, req.To, w.opts), true
	case ModeLand:
		return pathfind.NewAStar(pathfind.NewLandAdapter(w.m), src, req.To, w.opts), true
	case ModeRail:
		adapter := pathfind.NewPreferLandAdapter(w.coarse.Coarse(), w.waterPenalty)
		return pathfind.NewHierarchical(w.coarse, adapter, src, req.To, w.opts), true
	default:
		return nil, false
	}
}
