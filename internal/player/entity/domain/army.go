package domain

import (
	combatdomain "Ashfall/internal/combat/entity/domain"
	"Ashfall/internal/shared/gameconfig/units"
)

// Army 是驻在某格上的一支军队。
// 总强度与粮耗永远现算，不落脏数据；主将随军标记全局至多一支为 true。
type Army struct {
	Id            int                      `json:"id"`
	Owner         PlayerID                 `json:"owner"`
	X             int                      `json:"x"`
	Y             int                      `json:"y"`
	Stacks        []combatdomain.UnitStack `json:"stacks"`
	CaptainAboard bool                     `json:"captainAboard"`
}

// Strength 现算总强度：Σ(atk+def)×数量，俘虏不打折（强度是规模口径，不是出力口径）。
func (a *Army) Strength() int {
	total := 0
	for _, st := range a.Stacks {
		u, ok := units.Get(st.CfgId)
		if !ok {
			continue
		}
		total += (u.Atk + u.Def) * st.Quantity
	}
	return total
}

// FoodUpkeep 现算每日粮耗。
func (a *Army) FoodUpkeep() int {
	total := 0
	for _, st := range a.Stacks {
		u, ok := units.Get(st.CfgId)
		if !ok {
			continue
		}
		total += u.Food * st.Quantity
	}
	return total
}

// Quantity 返回军队总单位数。
func (a *Army) Quantity() int {
	return combatdomain.RosterQuantity(a.Stacks)
}
