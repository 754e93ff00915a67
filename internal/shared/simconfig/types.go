package simconfig

type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Sim     SimConfig     `yaml:"sim" mapstructure:"sim"`
	Balance BalanceConfig `yaml:"balance" mapstructure:"balance"`
}

// SimConfig 是一次平衡性扫描的默认参数，命令行 flag 可以逐项覆盖。
type SimConfig struct {
	Generations      int     `yaml:"generations" mapstructure:"generations"`
	Players          int     `yaml:"players" mapstructure:"players"`
	Days             int     `yaml:"days" mapstructure:"days"`
	WorldSize        int     `yaml:"world_size" mapstructure:"world_size"`
	PlotsPerPlayer   int     `yaml:"plots_per_player" mapstructure:"plots_per_player"`
	ForsakenCoverage float64 `yaml:"forsaken_coverage" mapstructure:"forsaken_coverage"`
	Parallel         int     `yaml:"parallel" mapstructure:"parallel"`
}

// BalanceConfig 是 CI 门禁阈值。
type BalanceConfig struct {
	Threshold       float64 `yaml:"threshold" mapstructure:"threshold"`               // 默认 70
	StrictThreshold float64 `yaml:"strict_threshold" mapstructure:"strict_threshold"` // strict 模式 80 且零 critical
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
