package main

import (
	"fmt"
	"os"

	"FrontierSim/internal/game"
	"FrontierSim/internal/shared/simconfig"
)

// loadMap 优先读 ASCII 地图文件，否则按种子生成群岛。
func loadMap(cfg simconfig.MapConfig, seed uint64) (*game.GameMap, error) {
	if cfg.File != "" {
		f, err := os.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("open map file: %w", err)
		}
		defer f.Close()
		return game.ParseASCIIMap(f)
	}
	width, height, islands := cfg.Width, cfg.Height, cfg.Islands
	if width <= 0 {
		width = 200
	}
	if height <= 0 {
		height = 120
	}
	if islands <= 0 {
		islands = 4
	}
	return game.GenerateIslands(width, height, seed, islands)
}
