package domain

// Resources 是五种同质资源的资源池。
// 战斗战利品、建造/训练开销、agent 的经济决策都以它为单位。
type Resources struct {
	Gold  int `json:"gold"`
	Wood  int `json:"wood"`
	Stone int `json:"stone"`
	Iron  int `json:"iron"`
	Grain int `json:"grain"`
}

// Add 返回两池相加的新值（值语义，不改动接收者）。
func (r Resources) Add(o Resources) Resources {
	return Resources{
		Gold:  r.Gold + o.Gold,
		Wood:  r.Wood + o.Wood,
		Stone: r.Stone + o.Stone,
		Iron:  r.Iron + o.Iron,
		Grain: r.Grain + o.Grain,
	}
}

// Sub 返回扣减后的新值，各项在 0 处截断。
func (r Resources) Sub(o Resources) Resources {
	return Resources{
		Gold:  max(0, r.Gold-o.Gold),
		Wood:  max(0, r.Wood-o.Wood),
		Stone: max(0, r.Stone-o.Stone),
		Iron:  max(0, r.Iron-o.Iron),
		Grain: max(0, r.Grain-o.Grain),
	}
}

// Scale 返回按比例缩放的新值（战利品抽成用），逐项向下取整。
func (r Resources) Scale(f float64) Resources {
	return Resources{
		Gold:  int(float64(r.Gold) * f),
		Wood:  int(float64(r.Wood) * f),
		Stone: int(float64(r.Stone) * f),
		Iron:  int(float64(r.Iron) * f),
		Grain: int(float64(r.Grain) * f),
	}
}

// Total 返回五项总量（积分/评分口径）。
func (r Resources) Total() int {
	return r.Gold + r.Wood + r.Stone + r.Iron + r.Grain
}
