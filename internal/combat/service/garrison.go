package service

import (
	"Ashfall/internal/combat/entity/domain"
	"Ashfall/internal/shared/gameconfig/units"
)

// 废弃者据点的强度折算：每 4 点强度 1 个 Shieldbearer，每 8 点 1 个 Raider。
const (
	garrisonShieldDivisor = 4
	garrisonRaiderDivisor = 8

	garrisonShieldCfgId = 101
	garrisonRaiderCfgId = 102
)

// NewStack 建一摞满血单位；未知 cfgId 返回 false。
func NewStack(cfgId, quantity int) (domain.UnitStack, bool) {
	u, ok := units.Get(cfgId)
	if !ok {
		return domain.UnitStack{}, false
	}
	return domain.UnitStack{
		CfgId:    cfgId,
		Quantity: quantity,
		Hp:       quantity * u.Hp,
	}, true
}

// GarrisonRoster 把据点强度折算成守军伪兵团。
// 折算是确定性的：同一强度永远得到同一守军。
func GarrisonRoster(strength int) []domain.UnitStack {
	if strength <= 0 {
		return nil
	}
	var out []domain.UnitStack
	if q := strength / garrisonShieldDivisor; q > 0 {
		st, _ := NewStack(garrisonShieldCfgId, q)
		out = append(out, st)
	}
	if q := strength / garrisonRaiderDivisor; q > 0 {
		st, _ := NewStack(garrisonRaiderCfgId, q)
		out = append(out, st)
	}
	if len(out) == 0 {
		// 强度太低也至少有一个守卫
		st, _ := NewStack(garrisonRaiderCfgId, 1)
		out = append(out, st)
	}
	return out
}
