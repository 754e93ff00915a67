package domain

// Captain 是玩家唯一的主将：职业/技能固定，状态随战斗变化。
// 阵亡是永久的；重伤只在恢复窗口内生效。
type Captain struct {
	Class           string `json:"class"`
	Skill           string `json:"skill"`
	Dead            bool   `json:"dead"`
	WoundedUntilDay int    `json:"woundedUntilDay,omitempty"` // 0 表示无伤
}

// Wounded 判断在给定模拟日是否仍处于重伤恢复期。
func (c *Captain) Wounded(day int) bool {
	return !c.Dead && day <= c.WoundedUntilDay
}
