package observer

import (
	"github.com/gin-gonic/gin"

	"FrontierSim/internal/observer/handler"
	"FrontierSim/internal/observer/handler/http"
	obsws "FrontierSim/internal/observer/handler/ws"
	transporthttp "FrontierSim/internal/shared/transport/http"
	"FrontierSim/internal/shared/transport/ws"
	"FrontierSim/internal/stats/app/port"
	"FrontierSim/modules/kit/logx"
)

// Module 把观察端挂到 HTTP 与 ws 上。
type Module struct {
	wsHandler   *obsws.WsHandler
	httpHandler *http.HttpHandler
}

func New(s handler.Simulation, paths handler.PathFinder, stats port.StatsRepository, log logx.Logger) *Module {
	obs := handler.NewObserver(s, paths, stats, log)
	return &Module{
		wsHandler:   obsws.NewWsHandler(obs),
		httpHandler: http.NewHttpHandler(obs),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

// OnOpen 用作 ws.NewServer 的握手回调。
func (m *Module) OnOpen(conn ws.WSConn) {
	m.wsHandler.OnOpen(conn)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
