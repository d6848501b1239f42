package simconfig

import (
	"os"

	"FrontierSim/internal/game"
	"FrontierSim/internal/shared/config"
)

// Load 读取配置；cfgName 为空时向上查找 configs/conf.yml。
// 未填写的 game 段字段回落到 game.DefaultConfig。
func Load(cfgName string, watch bool) (*Config, *config.Loader, error) {
	conf := &Config{Game: game.DefaultConfig()}
	l, err := config.Load(cfgName, conf, watch)
	if err != nil {
		return nil, nil, err
	}
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", conf.JWTSecret)
	}
	return conf, l, nil
}
