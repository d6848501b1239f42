package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"FrontierSim/internal/observer"
	"FrontierSim/internal/pathworker"
	"FrontierSim/internal/shared/logs"
	"FrontierSim/internal/shared/simconfig"
	"FrontierSim/internal/shared/transport/grpc"
	transporthttp "FrontierSim/internal/shared/transport/http"
	"FrontierSim/internal/shared/transport/ws"
	"FrontierSim/internal/shared/utils"
	"FrontierSim/internal/sim"
	"FrontierSim/internal/stats/dc"
	"FrontierSim/internal/stats/entity"
	"FrontierSim/internal/stats/infra/persistence"
	"FrontierSim/modules/kit/logx"
)

func hostPort(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func main() {
	conf, loader, err := simconfig.Load("", true)
	if err != nil {
		panic(err)
	}
	if err := logs.Init("sim", conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.String("file", loader.ConfigFile()), zap.Any("conf", conf))
	loader.OnChange(func() {
		logs.Info("配置已变更，会话参数需重启后生效", zap.String("file", loader.ConfigFile()))
	})

	baseLogger := logx.NewZapLogger(logs.Logger())

	sf, err := utils.NewSnowflake(conf.Sim.NodeID)
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}
	gameID := sf.NextID()

	m, err := loadMap(conf.Map, conf.Game.Seed)
	if err != nil {
		logs.Fatal("load map failed", zap.Error(err))
	}

	repo, closeRepo, err := persistence.Open(conf, logs.Logger())
	if err != nil {
		logs.Fatal("open stats repository failed", zap.String("backend", conf.Stats.Backend), zap.Error(err))
	}
	defer closeRepo()
	statsDC := dc.NewStatsDC(entity.GameID(gameID), repo, conf.Stats.FlushInterval(), baseLogger)

	sess, err := sim.NewSession(sim.Options{
		GameID:      gameID,
		Rules:       conf.Game,
		Map:         m,
		Bots:        conf.Sim.Bots,
		Stats:       statsDC,
		RecordEvery: conf.Stats.RecordEveryTick,
		QueueSize:   conf.Sim.CommandQueue,
		Log:         baseLogger,
	})
	if err != nil {
		logs.Fatal("create session failed", zap.Error(err))
	}

	paths, err := pathworker.NewRuntime(m, conf.Game, conf.PathWorker, baseLogger)
	if err != nil {
		logs.Fatal("start path worker failed", zap.Error(err))
	}
	defer paths.Shutdown()

	obs := observer.New(sess, paths, repo, baseLogger)

	wsRouter := ws.NewRouter(baseLogger)
	obs.WsRegister(wsRouter)

	httpServer := transporthttp.NewHttpServer(hostPort(conf.HTTPServer.Host, conf.HTTPServer.Port), nil, baseLogger, conf.HTTPServer.Cors...)
	httpServer.Register(obs)
	wsServer := ws.NewServer(wsRouter, baseLogger, obs.OnOpen)
	httpServer.Engine().GET("/ws", gin.WrapH(wsServer))

	health := grpc.NewHealthServer(hostPort(conf.GRPCServer.Host, conf.GRPCServer.Port), baseLogger)
	lis, err := health.Listen()
	if err != nil {
		logs.Fatal("grpc listen failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("http server start failed: %w", err)
		}
	}()
	go func() {
		if err := health.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	simDone := make(chan error, 1)
	go func() {
		simDone <- sess.Run(ctx, conf.Sim.TickInterval(), conf.Sim.MaxTicks)
	}()
	health.SetServing(true)
	logs.Info("sim started",
		zap.Int64("game_id", gameID),
		zap.Int("width", m.Width()),
		zap.Int("height", m.Height()),
		zap.String("stats_backend", conf.Stats.Backend))

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	case err := <-simDone:
		simDone = nil
		logs.Info("会话结束", zap.Uint32("tick", sess.View().Tick), zap.Error(err))
	}
	health.SetServing(false)
	stop()
	if simDone != nil {
		<-simDone
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	if err := sess.Close(shutdownCtx); err != nil {
		logs.Error("flush stats failed", zap.Error(err))
	}
	health.Stop(shutdownCtx)
	logs.Info("sim stopped", zap.Int64("game_id", gameID), zap.Uint64("stats_version", statsDC.SavedVersion()))
}
