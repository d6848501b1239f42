package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"FrontierSim/modules/kit/logx"
)

// OpenFunc 在握手完成后回调，用于订阅推送。
type OpenFunc func(conn WSConn)

type Server struct {
	router *Router
	log    logx.Logger
	onOpen OpenFunc
}

func NewServer(r *Router, l logx.Logger, onOpen OpenFunc) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		log:    l,
		onOpen: onOpen,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	upgrader := websocket.Upgrader{
		// 观察端只读 + 受 JWT 保护的命令，不校验 Origin
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	wsConn, err := upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	s.log.Info("websocket upgrade success", zap.String("conn_id", connID), zap.String("addr", wsConn.RemoteAddr().String()))

	wsServer := NewWsServer(wsConn, s.log.With(zap.String("conn_id", connID)))
	wsServer.SetProperty(ConnKeyID, connID)
	wsServer.Router(s.router)
	wsServer.handshake(connID)
	wsServer.Run()
	if s.onOpen != nil {
		s.onOpen(wsServer)
	}
}
