package http

import (
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"FrontierSim/internal/observer/dto"
	"FrontierSim/internal/observer/handler"
	"FrontierSim/internal/shared/security"
	"FrontierSim/internal/shared/transport"
	"FrontierSim/internal/shared/transport/http/middleware"
	"FrontierSim/internal/sim"
)

type HttpHandler struct {
	obs *handler.Observer
}

func NewHttpHandler(o *handler.Observer) *HttpHandler {
	return &HttpHandler{obs: o}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	api := group.Group("/api")
	api.GET("/state", h.State)
	api.GET("/players/:id", h.Player)
	api.GET("/path", h.Path)
	api.GET("/stats", h.Stats)

	admin := group.Group("/admin", middleware.AdminAuth())
	admin.POST("/spawn", h.command(func() sim.Command { return &sim.SpawnCommand{} }))
	admin.POST("/structure", h.command(func() sim.Command { return &sim.BuildCommand{} }))
	admin.POST("/attack", h.command(func() sim.Command { return &sim.AttackCommand{} }))
	admin.POST("/train", h.command(func() sim.Command { return &sim.TrainCommand{} }))
	admin.POST("/move", h.command(func() sim.Command { return &sim.MoveCommand{} }))
}

func (h *HttpHandler) State(c *gin.Context) {
	v, err := h.obs.State()
	if err != nil {
		h.error(c.Request.Context(), c, err)
		return
	}
	h.ok(c, v)
}

func (h *HttpHandler) Player(c *gin.Context) {
	var req dto.PlayerReq
	if err := c.ShouldBindUri(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	p, err := h.obs.Player(req.ID)
	if err != nil {
		h.error(c.Request.Context(), c, err)
		return
	}
	h.ok(c, p)
}

func (h *HttpHandler) Path(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PathReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	resp, err := h.obs.Path(ctx, req)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.obs.Stats(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, s)
}

// command 绑定请求体到 newCmd 给出的命令并入队，返回受理回执。
func (h *HttpHandler) command(newCmd func() sim.Command) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		cmd := newCmd()
		if err := c.ShouldBindJSON(cmd); err != nil {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
		operator := ""
		if claims, ok := c.Get(middleware.ClaimsKey); ok {
			operator = claims.(*security.Claims).Operator
		}
		ticket, err := h.obs.Submit(ctx, operator, cmd)
		if err != nil {
			h.error(ctx, c, err)
			return
		}
		h.ok(c, ticket)
	}
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := h.obs.HandleError(ctx, c.Request.Method+" "+c.FullPath(), err)
	h.fail(c, code, msg)
}
