package logs

import (
	"path/filepath"
	"testing"

	"FrontierSim/internal/shared/simconfig"
)

func TestInit_写文件并替换全局logger(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sim.log")
	if err := Init("frontier-test", simconfig.LogConfig{FileDir: file, Level: "debug"}); err != nil {
		t.Fatalf("Init err=%v", err)
	}
	if Logger() == nil || !Logger().Core().Enabled(-1) {
		t.Fatalf("debug 级别应启用")
	}
	Info("hello")
}

func TestInit_非法级别回退info(t *testing.T) {
	if err := Init("frontier-test", simconfig.LogConfig{Level: "nope"}); err != nil {
		t.Fatalf("Init err=%v", err)
	}
	if Logger().Core().Enabled(-1) {
		t.Fatalf("debug 不应启用")
	}
}
