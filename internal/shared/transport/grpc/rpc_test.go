package grpc

import (
	"context"
	"testing"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"FrontierSim/modules/kit/logx"
	"FrontierSim/modules/kit/tracex"
)

func TestHealthServer_状态切换(t *testing.T) {
	hs := NewHealthServer("127.0.0.1:0", logx.Nop())
	lis, err := hs.Listen()
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = hs.Serve(lis) }()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		hs.Stop(ctx)
	}()

	conn, err := Dial(lis.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("初始状态 = %v", resp.GetStatus())
	}

	hs.SetServing(true)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil || resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v err=%v", resp.GetStatus(), err)
	}
}

func TestTrace_出入站元数据往返(t *testing.T) {
	ctx := tracex.WithTraceID(context.Background(), "t-9")
	ctx = tracex.WithGameID(ctx, 42)
	out := injectTraceToOutgoing(ctx)
	md, ok := metadata.FromOutgoingContext(out)
	if !ok {
		t.Fatalf("缺少 outgoing metadata")
	}

	in := extractTraceFromIncoming(metadata.NewIncomingContext(context.Background(), md))
	if id, _ := tracex.TraceIDFrom(in); id != "t-9" {
		t.Fatalf("trace id = %q", id)
	}
	if gid, _ := tracex.GameIDFrom(in); gid != 42 {
		t.Fatalf("game id = %d", gid)
	}
}
