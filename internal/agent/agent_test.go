package agent

import (
	"testing"

	gamedomain "Ashfall/internal/game/domain"
	playerdomain "Ashfall/internal/player/entity/domain"
	"Ashfall/internal/shared/rng"
)

func richView() View {
	return View{
		Day:           10,
		CombatAllowed: true,
		Resources:     gamedomain.Resources{Gold: 1000, Wood: 1000, Stone: 1000, Iron: 1000, Grain: 1000},
		Armies:        []ArmyView{{Id: 1, X: 5, Y: 5, Strength: 800, Quantity: 40}},
		OwnedCells:    9,
		Buildings:     1,
		Targets: []TargetView{
			{X: 8, Y: 8, Strength: 300, Forsaken: true, Distance: 3},
			{X: 6, Y: 5, Strength: 900, OwnerId: 2, Distance: 1},
		},
		Expand: []Coord{{X: 4, Y: 5}},
		Home:   Coord{X: 5, Y: 5},
	}
}

func TestDecide_每次恰好一个动作且视图不被改动(t *testing.T) {
	for _, p := range playerdomain.AllPolicies {
		v := richView()
		before := len(v.Targets)
		act := ForPolicy(p).Decide(v, rng.New(42))
		if act.Type == "" {
			t.Fatalf("策略 %s 没有产出动作", p)
		}
		if len(v.Targets) != before {
			t.Fatalf("策略 %s 改动了视图", p)
		}
	}
}

func TestDecide_同种子同视图产出一致(t *testing.T) {
	for _, p := range playerdomain.AllPolicies {
		a1 := ForPolicy(p).Decide(richView(), rng.New(7))
		a2 := ForPolicy(p).Decide(richView(), rng.New(7))
		if a1.Type != a2.Type || a1.Priority != a2.Priority {
			t.Fatalf("策略 %s 不可复现：%+v != %+v", p, a1, a2)
		}
	}
}

func TestDecide_激进策略偏向进攻_经济策略偏向建设(t *testing.T) {
	counts := func(p playerdomain.PolicyType) map[ActionType]int {
		out := make(map[ActionType]int)
		r := rng.New(99)
		for i := 0; i < 500; i++ {
			out[ForPolicy(p).Decide(richView(), r).Type]++
		}
		return out
	}

	agg := counts(playerdomain.PolicyAggressive)
	eco := counts(playerdomain.PolicyEconomic)
	if agg[ActionAttack] <= eco[ActionAttack] {
		t.Fatalf("期望激进策略攻击频次更高，agg=%v eco=%v", agg, eco)
	}
	ecoBuildish := eco[ActionBuild] + eco[ActionUpgrade] + eco[ActionExpand]
	aggBuildish := agg[ActionBuild] + agg[ActionUpgrade] + agg[ActionExpand]
	if ecoBuildish <= aggBuildish {
		t.Fatalf("期望经济策略建设类频次更高，eco=%d agg=%d", ecoBuildish, aggBuildish)
	}
}

func TestDecide_planning阶段不产出攻击(t *testing.T) {
	v := richView()
	v.CombatAllowed = false
	r := rng.New(3)
	for i := 0; i < 300; i++ {
		act := ForPolicy(playerdomain.PolicyAggressive).Decide(v, r)
		if act.Type == ActionAttack {
			t.Fatalf("planning 阶段不允许攻击动作")
		}
	}
}

func TestDecide_空档局面也有wait兜底(t *testing.T) {
	v := View{Day: 1} // 什么都没有
	act := ForPolicy(playerdomain.PolicyBalanced).Decide(v, rng.New(1))
	if act.Type != ActionWait {
		t.Fatalf("期望空档局面产出 wait，got=%s", act.Type)
	}
}

func TestForPolicy_未知策略回退balanced(t *testing.T) {
	a := ForPolicy(playerdomain.PolicyType("nope"))
	if a.Policy() != playerdomain.PolicyBalanced {
		t.Fatalf("期望回退 balanced，got=%s", a.Policy())
	}
}
