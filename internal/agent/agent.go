// Package agent 实现平衡性模拟的自治决策策略。
//
// 每个 agent 是 (玩家视图) → 单个带优先级动作 的纯函数：
// 不持有状态、不改世界，动作由编排器统一执行，
// 因此同一天内任意子集、任意顺序调用都是安全的。
package agent

import (
	playerdomain "Ashfall/internal/player/entity/domain"
	"Ashfall/internal/shared/rng"
)

// Agent 是一种决策策略。
type Agent interface {
	Policy() playerdomain.PolicyType
	// Decide 对给定视图产出恰好一个动作；随机性只来自传入的 rng。
	Decide(v View, r *rng.Source) Action
}

// ForPolicy 按策略枚举取 agent 实例；未知策略回退 balanced。
func ForPolicy(p playerdomain.PolicyType) Agent {
	if w, ok := policyWeights[p]; ok {
		return &weightedAgent{policy: p, weights: w}
	}
	return &weightedAgent{policy: playerdomain.PolicyBalanced, weights: policyWeights[playerdomain.PolicyBalanced]}
}

// weightedAgent：五种策略共用一套候选生成，只差打分权重。
type weightedAgent struct {
	policy  playerdomain.PolicyType
	weights map[ActionType]float64
}

func (a *weightedAgent) Policy() playerdomain.PolicyType {
	return a.policy
}

func (a *weightedAgent) Decide(v View, r *rng.Source) Action {
	cands := candidates(v)

	// random 策略：在候选里均匀抽一个，不看基准分
	if a.policy == playerdomain.PolicyRandom {
		pick := cands[r.IntRange(0, len(cands)-1)]
		pick.Priority = r.Float64()
		return pick
	}

	best := cands[0]
	bestScore := -1.0
	for _, c := range cands {
		w := a.weights[c.Type]
		// ±10% 抖动，避免同视图下策略退化成固定脚本
		score := c.Priority * w * (0.9 + 0.2*r.Float64())
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	best.Priority = bestScore
	return best
}

// candidates 从视图生成本日全部可行动作（带基准分）。wait 永远在列，
// 所以任何策略任何局面都有产出。
func candidates(v View) []Action {
	out := []Action{{Type: ActionWait, Priority: 0.10}}

	// 建墙：主城没墙且材料够
	if !v.HasWall && v.Resources.Wood >= 200 && v.Resources.Stone >= 150 {
		out = append(out, Action{
			Type:     ActionBuild,
			Priority: 0.55,
			Payload:  map[string]any{"kind": "wall", "x": v.Home.X, "y": v.Home.Y},
		})
	}

	// 练兵：金铁够就补 Raider
	if v.Resources.Gold >= 100 && v.Resources.Iron >= 50 {
		qty := min(20, v.Resources.Gold/20)
		out = append(out, Action{
			Type:     ActionTrain,
			Priority: 0.50,
			Payload:  map[string]any{"cfgId": 102, "quantity": qty},
		})
	}

	// 升级：有建筑且石料富余
	if v.Buildings > 0 && v.Resources.Stone >= 300 {
		out = append(out, Action{Type: ActionUpgrade, Priority: 0.30, Payload: map[string]any{}})
	}

	// 扩张：有可直接宣称的邻接无主格
	if len(v.Expand) > 0 {
		c := v.Expand[0]
		out = append(out, Action{
			Type:     ActionExpand,
			Priority: 0.60,
			Payload:  map[string]any{"x": c.X, "y": c.Y},
		})
	}

	if len(v.Armies) > 0 {
		strongest := v.Armies[0]
		for _, a := range v.Armies {
			if a.Strength > strongest.Strength {
				strongest = a
			}
		}

		// 驻防：把最强军队调回主城
		out = append(out, Action{
			Type:     ActionDefend,
			Priority: 0.35,
			Payload:  map[string]any{"armyId": strongest.Id, "x": v.Home.X, "y": v.Home.Y},
		})

		if v.CombatAllowed && len(v.Targets) > 0 {
			// 攻击：挑强度比最划算的目标
			best := v.Targets[0]
			bestRatio := ratio(strongest.Strength, best.Strength)
			for _, tg := range v.Targets[1:] {
				if r := ratio(strongest.Strength, tg.Strength); r > bestRatio {
					bestRatio = r
					best = tg
				}
			}
			prio := 0.40 + 0.30*minf(bestRatio, 2)/2
			out = append(out, Action{
				Type:     ActionAttack,
				Priority: prio,
				Payload:  map[string]any{"armyId": strongest.Id, "x": best.X, "y": best.Y},
			})

			// 行军：目标太远时先挪一步
			if best.Distance > 1 {
				out = append(out, Action{
					Type:     ActionMove,
					Priority: 0.30,
					Payload:  map[string]any{"armyId": strongest.Id, "x": best.X, "y": best.Y},
				})
			}
		}
	}

	return out
}

func ratio(mine, theirs int) float64 {
	if theirs <= 0 {
		return 2
	}
	return float64(mine) / float64(theirs)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
