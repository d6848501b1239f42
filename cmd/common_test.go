package cmd

import (
	"testing"

	"FrontierSim/internal/shared/simconfig"
	"FrontierSim/internal/stats/infra/persistence"
)

func TestReadConfig(t *testing.T) {
	conf, loader, err := simconfig.Load("", false)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if loader.ConfigFile() == "" {
		t.Fatalf("未找到配置文件")
	}
	if conf.HTTPServer.Port == 0 || conf.Sim.NodeID == 0 || len(conf.Sim.Bots) == 0 {
		t.Fatalf("conf = %+v", conf)
	}
	switch conf.Stats.Backend {
	case persistence.BackendMemory, persistence.BackendMongoDB, persistence.BackendMySQL, persistence.BackendLevelDB:
	default:
		t.Fatalf("stats backend = %q", conf.Stats.Backend)
	}
	if conf.Game.Seed == 0 || conf.Game.TrainSpeed == 0 {
		t.Fatalf("game = %+v", conf.Game)
	}
}
