package game

// Config 是模拟规则参数。mapstructure tag 对应 configs/conf.yml 的 game 段。
type Config struct {
	Seed               uint64 `mapstructure:"seed"`
	NumSpawnPhaseTurns uint32 `mapstructure:"num_spawn_phase_turns"`
	SpawnRadius        int    `mapstructure:"spawn_radius"`

	StartTroops          int64 `mapstructure:"start_troops"`
	StartGold            int64 `mapstructure:"start_gold"`
	TroopIncreaseBase    int64 `mapstructure:"troop_increase_base"`
	TroopIncreasePerTile int64 `mapstructure:"troop_increase_per_tile"`
	MaxTroopsBase        int64 `mapstructure:"max_troops_base"`
	MaxTroopsPerTile     int64 `mapstructure:"max_troops_per_tile"`
	GoldPerTick          int64 `mapstructure:"gold_per_tick"`
	GoldPerTenTiles      int64 `mapstructure:"gold_per_ten_tiles"`

	RelationDecayInterval    uint32 `mapstructure:"relation_decay_interval"`
	AllianceDuration         uint32 `mapstructure:"alliance_duration"`
	TemporaryEmbargoDuration uint32 `mapstructure:"temporary_embargo_duration"`
	ClusterCheckInterval     uint32 `mapstructure:"cluster_check_interval"`

	AttackTilesPerTick int   `mapstructure:"attack_tiles_per_tick"`
	AttackTileCost     int64 `mapstructure:"attack_tile_cost"`

	StationRange       int    `mapstructure:"station_range"`
	RailBuildSpeed     int    `mapstructure:"rail_build_speed"`
	TrainSpeed         int    `mapstructure:"train_speed"`
	TrainCars          int    `mapstructure:"train_cars"`
	TrainCarSpacing    int    `mapstructure:"train_car_spacing"`
	TrainSpawnInterval uint32 `mapstructure:"train_spawn_interval"`
	TrainTradeGold     int64  `mapstructure:"train_trade_gold"`

	PathNodeBudget         int     `mapstructure:"path_node_budget"`
	PathMaxAttempts        int     `mapstructure:"path_max_attempts"`
	PathDirectionPenalty   float64 `mapstructure:"path_direction_penalty"`
	PathCoarseFactor       int     `mapstructure:"path_coarse_factor"`
	PathCoarseWaterPenalty float64 `mapstructure:"path_coarse_water_penalty"`
}

func DefaultConfig() Config {
	return Config{
		Seed:                     1,
		NumSpawnPhaseTurns:       100,
		SpawnRadius:              4,
		StartTroops:              2500,
		StartGold:                0,
		TroopIncreaseBase:        10,
		TroopIncreasePerTile:     1,
		MaxTroopsBase:            50000,
		MaxTroopsPerTile:         1000,
		GoldPerTick:              10,
		GoldPerTenTiles:          1,
		RelationDecayInterval:    10,
		AllianceDuration:         3000,
		TemporaryEmbargoDuration: 3000,
		ClusterCheckInterval:     20,
		AttackTilesPerTick:       8,
		AttackTileCost:           20,
		StationRange:             40,
		RailBuildSpeed:           4,
		TrainSpeed:               2,
		TrainCars:                5,
		TrainCarSpacing:          2,
		TrainSpawnInterval:       200,
		TrainTradeGold:           5000,
		PathNodeBudget:           5000,
		PathMaxAttempts:          50,
		PathDirectionPenalty:     2,
		PathCoarseFactor:         2,
		PathCoarseWaterPenalty:   6,
	}
}

// MaxTroops 随领土线性增长。
func (c Config) MaxTroops(p *Player) int64 {
	return c.MaxTroopsBase + int64(p.NumTilesOwned())*c.MaxTroopsPerTile
}

// TroopIncreaseRate 在未达上限时至少为 1，达到上限后为 0。
func (c Config) TroopIncreaseRate(p *Player) int64 {
	room := c.MaxTroops(p) - p.Troops()
	if room <= 0 {
		return 0
	}
	inc := c.TroopIncreaseBase + int64(p.NumTilesOwned())*c.TroopIncreasePerTile
	inc = max(inc, 1)
	return min(inc, room)
}

func (c Config) GoldAdditionRate(p *Player) int64 {
	return c.GoldPerTick + int64(p.NumTilesOwned()/10)*c.GoldPerTenTiles
}
