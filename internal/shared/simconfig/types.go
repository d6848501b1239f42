package simconfig

import (
	"time"

	"FrontierSim/internal/game"
)

type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer GRPCServerConfig `yaml:"grpcserver" mapstructure:"grpcserver"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	LevelDB    LevelDBConfig    `yaml:"leveldb" mapstructure:"leveldb"`
	Stats      StatsConfig      `yaml:"stats" mapstructure:"stats"`
	PathWorker PathWorkerConfig `yaml:"pathworker" mapstructure:"pathworker"`
	Map        MapConfig        `yaml:"map" mapstructure:"map"`
	Sim        SimConfig        `yaml:"sim" mapstructure:"sim"`
	Game       game.Config      `yaml:"game" mapstructure:"game"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type LevelDBConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// Cors 为空时不加跨域头。
	Cors []string `yaml:"cors" mapstructure:"cors"`
}

type GRPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// StatsConfig 控制统计快照的落库。
// Backend: memory / mongodb / mysql / leveldb。
type StatsConfig struct {
	Backend         string `yaml:"backend" mapstructure:"backend"`
	RecordEveryTick uint32 `yaml:"record_every_tick" mapstructure:"record_every_tick"`
	FlushIntervalMS int    `yaml:"flush_interval_ms" mapstructure:"flush_interval_ms"`
}

func (c StatsConfig) FlushInterval() time.Duration {
	if c.FlushIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(c.FlushIntervalMS) * time.Millisecond
}

type PathWorkerConfig struct {
	AskTimeoutMS int `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	NodeBudget   int `yaml:"node_budget" mapstructure:"node_budget"`
	MaxAttempts  int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

func (c PathWorkerConfig) AskTimeout() time.Duration {
	if c.AskTimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.AskTimeoutMS) * time.Millisecond
}

// MapConfig: File 非空时读 ASCII 地图，否则按种子生成群岛。
type MapConfig struct {
	File    string `yaml:"file" mapstructure:"file"`
	Width   int    `yaml:"width" mapstructure:"width"`
	Height  int    `yaml:"height" mapstructure:"height"`
	Islands int    `yaml:"islands" mapstructure:"islands"`
}

// SimConfig 控制会话节奏与初始玩家。
type SimConfig struct {
	TickIntervalMS int      `yaml:"tick_interval_ms" mapstructure:"tick_interval_ms"`
	MaxTicks       uint32   `yaml:"max_ticks" mapstructure:"max_ticks"`
	NodeID         int64    `yaml:"node_id" mapstructure:"node_id"`
	CommandQueue   int      `yaml:"command_queue" mapstructure:"command_queue"`
	Bots           []string `yaml:"bots" mapstructure:"bots"`
}

func (c SimConfig) TickInterval() time.Duration {
	if c.TickIntervalMS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}
