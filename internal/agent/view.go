package agent

import (
	gamedomain "Ashfall/internal/game/domain"
)

// Coord 是地图坐标。
type Coord struct {
	X int
	Y int
}

// TargetView 是一个可打击目标的只读快照。
type TargetView struct {
	X        int
	Y        int
	Strength int  // 守军/据点强度估算
	Forsaken bool // true 为废弃者据点
	OwnerId  int  // 玩家目标时的归属
	Distance int  // 到己方最近军队的切比雪夫距离
}

// ArmyView 是己方军队的只读快照。
type ArmyView struct {
	Id            int
	X             int
	Y             int
	Strength      int
	Quantity      int
	CaptainAboard bool
}

// View 是 agent 能看到的全部状态，由编排器按玩家组装。
// 只读：agent 不得持有或改写其中引用，候选目标/扩张点已由编排器预筛。
type View struct {
	Day           int
	CombatAllowed bool // planning 阶段为 false

	Resources gamedomain.Resources
	Score     int

	Armies     []ArmyView
	OwnedCells int
	Buildings  int
	HasWall    bool // 主城格是否已有墙

	Targets []TargetView
	Expand  []Coord
	Home    Coord
}
