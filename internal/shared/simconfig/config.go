package simconfig

import (
	"os"

	"Ashfall/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

// Load 从当前目录向上查找 configs/conf.yml 并填充 Conf，然后补齐缺省值。
func Load() {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	config.Load(config.FindUpward(curDir, defaultConfigRelPath), &Conf)
	applyDefaults(&Conf)
}

// LoadFrom 从指定路径加载（命令行 -config 覆盖默认查找）。
func LoadFrom(path string) {
	config.Load(path, &Conf)
	applyDefaults(&Conf)
}

func applyDefaults(c *Config) {
	if c.Sim.Generations <= 0 {
		c.Sim.Generations = 100
	}
	if c.Sim.Players <= 0 {
		c.Sim.Players = 8
	}
	if c.Sim.Days <= 0 {
		c.Sim.Days = 50
	}
	if c.Sim.WorldSize <= 0 {
		c.Sim.WorldSize = 100
	}
	if c.Sim.PlotsPerPlayer <= 0 {
		c.Sim.PlotsPerPlayer = 9
	}
	if c.Sim.ForsakenCoverage <= 0 {
		c.Sim.ForsakenCoverage = 0.15
	}
	if c.Sim.Parallel <= 0 {
		c.Sim.Parallel = 4
	}
	if c.Balance.Threshold <= 0 {
		c.Balance.Threshold = 70
	}
	if c.Balance.StrictThreshold <= 0 {
		c.Balance.StrictThreshold = 80
	}
}
