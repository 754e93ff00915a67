package domain

type PlayerID int

// Zone 是到地图中心的同心分区，名字与 gameconfig/terrain 对齐。
type Zone string

const (
	ZoneHeart  Zone = "heart"
	ZoneInner  Zone = "inner"
	ZoneMiddle Zone = "middle"
	ZoneOuter  Zone = "outer"
)

// Terrain 是地形类别，取值来自 gameconfig/terrain 的 terrains 表。
type Terrain string

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellState 是一格世界地块。
// 坐标/分区/地形生成后不变；归属、据点、建筑、驻军随世代推进而变化。
// 整张图只活在一个世代内，世代结束即丢弃，不落盘。
type CellState struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Zone    Zone    `json:"zone"`
	Terrain Terrain `json:"terrain"`

	Owner            PlayerID `json:"owner"` // 0 表示无主
	Forsaken         bool     `json:"forsaken"`
	ForsakenStrength int      `json:"forsakenStrength"`
	Buildings        []string `json:"buildings,omitempty"`
	GarrisonArmyId   int      `json:"garrisonArmyId,omitempty"` // 0 表示无驻军
}

const BuildingWall = "wall"

// HasWall 判断该格是否有已建成的城墙（战斗结算的守方加成输入）。
func (c *CellState) HasWall() bool {
	for _, b := range c.Buildings {
		if b == BuildingWall {
			return true
		}
	}
	return false
}

// Unclaimed 表示既无玩家归属也无废弃者据点。
func (c *CellState) Unclaimed() bool {
	return c.Owner == 0 && !c.Forsaken
}
