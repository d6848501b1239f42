package ws

import (
	"context"

	"FrontierSim/internal/observer/dto"
	"FrontierSim/internal/observer/handler"
	"FrontierSim/internal/shared/security"
	"FrontierSim/internal/shared/transport"
	"FrontierSim/internal/shared/transport/ws"
	"FrontierSim/internal/sim"
)

// ConnKeyOperator 保存 admin.auth 通过后的操作者。
const ConnKeyOperator = "operator"

type WsHandler struct {
	obs *handler.Observer
}

func NewWsHandler(o *handler.Observer) *WsHandler {
	return &WsHandler{obs: o}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	simGroup := r.Group("sim")
	simGroup.Handle("state", h.state)
	simGroup.Handle("player", h.player)
	simGroup.Handle("path", h.path)
	simGroup.Handle("stats", h.stats)

	adminGroup := r.Group("admin")
	adminGroup.Handle("auth", h.auth)
	adminGroup.Handle("spawn", h.command(func() sim.Command { return &sim.SpawnCommand{} }))
	adminGroup.Handle("structure", h.command(func() sim.Command { return &sim.BuildCommand{} }))
	adminGroup.Handle("attack", h.command(func() sim.Command { return &sim.AttackCommand{} }))
	adminGroup.Handle("train", h.command(func() sim.Command { return &sim.TrainCommand{} }))
	adminGroup.Handle("move", h.command(func() sim.Command { return &sim.MoveCommand{} }))
}

// OnOpen 在握手后订阅快照推送。
func (h *WsHandler) OnOpen(conn ws.WSConn) {
	h.obs.Stream(conn)
}

func (h *WsHandler) state(ctx context.Context, _ *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	v, err := h.obs.State()
	if err != nil {
		h.error(ctx, wsResp, "sim.state", err)
		return
	}
	h.ok(wsResp, v)
}

func (h *WsHandler) player(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.PlayerReq
	if err := ws.Bind(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	p, err := h.obs.Player(req.ID)
	if err != nil {
		h.error(ctx, wsResp, "sim.player", err)
		return
	}
	h.ok(wsResp, p)
}

func (h *WsHandler) path(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.PathReq
	if err := ws.Bind(wsReq, &req); err != nil || req.Mode == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	resp, err := h.obs.Path(ctx, req)
	if err != nil {
		h.error(ctx, wsResp, "sim.path", err)
		return
	}
	h.ok(wsResp, resp)
}

func (h *WsHandler) stats(ctx context.Context, _ *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	s, err := h.obs.Stats(ctx)
	if err != nil {
		h.error(ctx, wsResp, "sim.stats", err)
		return
	}
	h.ok(wsResp, s)
}

type authReq struct {
	Token string `json:"token"`
}

func (h *WsHandler) auth(_ context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req authReq
	if err := ws.Bind(wsReq, &req); err != nil || req.Token == "" || wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	claims, err := security.ParseAdmin(req.Token)
	if err != nil {
		h.fail(wsResp, transport.Unauthorized, "invalid token")
		return
	}
	wsReq.Conn.SetProperty(ConnKeyOperator, claims.Operator)
	h.ok(wsResp, map[string]string{"operator": claims.Operator})
}

func (h *WsHandler) command(newCmd func() sim.Command) ws.HandlerFunc {
	return func(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
		if wsReq.Conn == nil {
			h.fail(wsResp, transport.Unauthorized, "unauthorized")
			return
		}
		operator, ok := wsReq.Conn.GetProperty(ConnKeyOperator).(string)
		if !ok {
			h.fail(wsResp, transport.Unauthorized, "unauthorized")
			return
		}
		cmd := newCmd()
		if err := ws.Bind(wsReq, cmd); err != nil {
			h.fail(wsResp, transport.InvalidParam, "参数有误")
			return
		}
		ticket, err := h.obs.Submit(ctx, operator, cmd)
		if err != nil {
			h.error(ctx, wsResp, "admin."+cmd.Kind(), err)
			return
		}
		h.ok(wsResp, ticket)
	}
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, action string, err error) {
	code, msg := h.obs.HandleError(ctx, action, err)
	h.fail(resp, code, msg)
}
