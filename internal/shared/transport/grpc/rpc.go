package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"FrontierSim/modules/kit/logx"
)

// ServiceName 是模拟会话在 health 服务里登记的名字。
const ServiceName = "frontier.sim"

// HealthServer 对外暴露标准 grpc health 协议，供编排系统探活。
type HealthServer struct {
	addr   string
	srv    *grpc.Server
	health *health.Server
	log    logx.Logger
}

func NewHealthServer(addr string, log logx.Logger) *HealthServer {
	if log == nil {
		log = logx.Nop()
	}
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryServerTraceInterceptor()),
		grpc.ChainStreamInterceptor(StreamServerTraceInterceptor()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{addr: addr, srv: srv, health: hs, log: log}
}

// SetServing 切换会话的健康状态。
func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(ServiceName, status)
}

// Listen 绑定端口，返回实际地址（addr 端口为 0 时有用）。
func (h *HealthServer) Listen() (net.Listener, error) {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return nil, fmt.Errorf("grpc listen %s: %w", h.addr, err)
	}
	return lis, nil
}

// Serve 阻塞直到 Stop。
func (h *HealthServer) Serve(lis net.Listener) error {
	h.log.Info("grpc health server start", zap.String("addr", lis.Addr().String()))
	return h.srv.Serve(lis)
}

// Stop 先标记全部 NOT_SERVING，再优雅停机；ctx 到期后强停。
func (h *HealthServer) Stop(ctx context.Context) {
	h.health.Shutdown()
	done := make(chan struct{})
	go func() {
		h.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		h.srv.Stop()
	}
}

// Dial 建立带 trace 注入的客户端连接。
func Dial(target string) (*grpc.ClientConn, error) {
	// grpc Dial 拨号配置
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(UnaryClientTraceInterceptor()),
		grpc.WithChainStreamInterceptor(StreamClientTraceInterceptor()),
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", target, err)
	}
	return conn, nil
}
