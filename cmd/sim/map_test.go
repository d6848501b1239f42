package main

import (
	"os"
	"path/filepath"
	"testing"

	"FrontierSim/internal/game"
	"FrontierSim/internal/shared/simconfig"
)

func TestLoadMap_读取ASCII文件(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.map")
	if err := os.WriteFile(path, []byte("# tiny\n...~\n..-~\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := loadMap(simconfig.MapConfig{File: path}, 1)
	if err != nil {
		t.Fatalf("loadMap err=%v", err)
	}
	if m.Width() != 4 || m.Height() != 2 || m.NumLandTiles() != 5 {
		t.Fatalf("map = %dx%d land=%d", m.Width(), m.Height(), m.NumLandTiles())
	}
}

func TestLoadMap_同种子生成结果一致(t *testing.T) {
	cfg := simconfig.MapConfig{Width: 60, Height: 40, Islands: 3}
	a, err := loadMap(cfg, 7)
	if err != nil {
		t.Fatalf("loadMap err=%v", err)
	}
	b, _ := loadMap(cfg, 7)
	if a.Width() != 60 || a.Height() != 40 {
		t.Fatalf("size = %dx%d", a.Width(), a.Height())
	}
	for i := 0; i < a.NumTiles(); i++ {
		if a.Terrain(game.TileRef(i)) != b.Terrain(game.TileRef(i)) {
			t.Fatalf("tile %d 不一致", i)
		}
	}
}

func TestLoadMap_文件不存在(t *testing.T) {
	if _, err := loadMap(simconfig.MapConfig{File: "/no/such/map"}, 1); err == nil {
		t.Fatalf("期望报错")
	}
}
