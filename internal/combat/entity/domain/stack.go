package domain

// UnitStack 是一摞同兵种单位：数量 + 聚合血量。
// 不变量：0 ≤ Hp ≤ Quantity×单兵 hp；Quantity ≥ 0；数量归零的摞会被移除。
type UnitStack struct {
	CfgId        int    `json:"cfgId"`
	Quantity     int    `json:"quantity"`
	Hp           int    `json:"hp"`                     // 聚合血量
	Prisoner     bool   `json:"prisoner,omitempty"`     // 俘虏摞出力打六折
	OriginalRace string `json:"originalRace,omitempty"` // 俘虏的原种族
}

// CloneRoster 深拷贝一份兵团（copy-then-commit 的基础）。
func CloneRoster(in []UnitStack) []UnitStack {
	out := make([]UnitStack, len(in))
	copy(out, in)
	return out
}

// RosterQuantity 返回兵团总单位数。
func RosterQuantity(in []UnitStack) int {
	total := 0
	for _, s := range in {
		total += s.Quantity
	}
	return total
}
