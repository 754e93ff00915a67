// Package gameconfig 聚合加载全部基础数值表。
// 入口进程启动时调用一次 Load()；任何表非法都会在这里 fail fast。
package gameconfig

import (
	"Ashfall/internal/shared/gameconfig/classes"
	"Ashfall/internal/shared/gameconfig/races"
	"Ashfall/internal/shared/gameconfig/terrain"
	"Ashfall/internal/shared/gameconfig/units"
)

func Load() {
	units.Load()
	races.Load()
	classes.Load()
	terrain.Load()
}
