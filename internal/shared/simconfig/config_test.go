package simconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"FrontierSim/internal/game"
)

const sampleYAML = `
httpserver:
  host: 127.0.0.1
  port: 8088
stats:
  backend: leveldb
  flush_interval_ms: 250
game:
  seed: 99
  spawn_radius: 3
sim:
  bots: [north, south]
`

func TestLoad_未填写字段使用默认规则(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	path := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	conf, _, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if conf.HTTPServer.Port != 8088 || conf.Stats.Backend != "leveldb" {
		t.Fatalf("conf = %+v", conf)
	}
	if conf.Game.Seed != 99 || conf.Game.SpawnRadius != 3 {
		t.Fatalf("game = %+v", conf.Game)
	}
	def := game.DefaultConfig()
	if conf.Game.TrainSpeed != def.TrainSpeed || conf.Game.ClusterCheckInterval != def.ClusterCheckInterval {
		t.Fatalf("默认值丢失: %+v", conf.Game)
	}
	if conf.Stats.FlushInterval() != 250*time.Millisecond {
		t.Fatalf("flush interval = %v", conf.Stats.FlushInterval())
	}
	if len(conf.Sim.Bots) != 2 || conf.Sim.TickInterval() != 100*time.Millisecond {
		t.Fatalf("sim = %+v", conf.Sim)
	}
	if os.Getenv("JWT_SECRET") != "from-env" {
		t.Fatalf("环境变量应优先")
	}
}
