package service

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"Ashfall/internal/combat/entity/domain"
	gamedomain "Ashfall/internal/game/domain"
	"Ashfall/internal/shared/gameconfig/classes"
	"Ashfall/internal/shared/gameconfig/races"
	"Ashfall/internal/shared/gameconfig/units"
	"Ashfall/internal/shared/rng"
	"Ashfall/modules/kit/logx"
)

func TestMain(m *testing.M) {
	units.Load()
	races.Load()
	classes.Load()
	os.Exit(m.Run())
}

func mustStack(t *testing.T, cfgId, qty int) domain.UnitStack {
	t.Helper()
	st, ok := NewStack(cfgId, qty)
	if !ok {
		t.Fatalf("未知兵种 cfgId=%d", cfgId)
	}
	return st
}

func scenario42Input(t *testing.T) Input {
	// 基准场景：攻方 100 个 (atk=12,def=15,hp=40)，守方 100 个 (atk=8,def=25,hp=60)，无墙
	return Input{
		Attacker: Side{PlayerId: 1, Race: "Valdren", Roster: []domain.UnitStack{mustStack(t, 102, 100)}},
		Defender: Side{PlayerId: 2, Race: "Valdren", Roster: []domain.UnitStack{mustStack(t, 101, 100)}},
	}
}

func TestResolve_种子42基准场景_结果合法且可逐字节复现(t *testing.T) {
	r1, err := NewCombatService(rng.New(42), logx.Nop()).Resolve(scenario42Input(t))
	if err != nil {
		t.Fatalf("结算失败：%v", err)
	}
	if len(r1.Rounds) == 0 || len(r1.Rounds) > MaxRounds {
		t.Fatalf("期望回合数在 1..%d，got=%d", MaxRounds, len(r1.Rounds))
	}
	if r1.AttackerCasualties < 0 || r1.DefenderCasualties < 0 {
		t.Fatalf("期望伤亡非负，atk=%d def=%d", r1.AttackerCasualties, r1.DefenderCasualties)
	}
	switch r1.Result {
	case domain.ResultAttackerVictory, domain.ResultDefenderVictory, domain.ResultDraw:
	default:
		t.Fatalf("未知终局标签 %q", r1.Result)
	}

	r2, err := NewCombatService(rng.New(42), logx.Nop()).Resolve(scenario42Input(t))
	if err != nil {
		t.Fatalf("重放失败：%v", err)
	}
	b1, _ := json.Marshal(r1)
	b2, _ := json.Marshal(r2)
	if string(b1) != string(b2) {
		t.Fatalf("期望同种子逐字节一致：\n%s\n!=\n%s", b1, b2)
	}
}

func TestResolve_伤亡守恒_数量只减不增且不为负(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		in := scenario42Input(t)
		rec, err := NewCombatService(rng.New(seed), logx.Nop()).Resolve(in)
		if err != nil {
			t.Fatalf("seed=%d 结算失败：%v", seed, err)
		}
		preAtk := domain.RosterQuantity(rec.InitialAttacker)
		preDef := domain.RosterQuantity(rec.InitialDefender)
		postAtk := domain.RosterQuantity(rec.FinalAttacker)
		postDef := domain.RosterQuantity(rec.FinalDefender)
		if postAtk < 0 || postDef < 0 {
			t.Fatalf("seed=%d 数量为负", seed)
		}
		if postAtk > preAtk || postDef > preDef {
			t.Fatalf("seed=%d 期望战后数量不超过战前（重组只回伤亡的一部分），pre=(%d,%d) post=(%d,%d)",
				seed, preAtk, preDef, postAtk, postDef)
		}
	}
}

func TestResolve_一方打光立即收场(t *testing.T) {
	// 巨大攻方 vs 一个守卒，第一回合必然打光
	in := Input{
		Attacker: Side{PlayerId: 1, Race: "Morghast", Roster: []domain.UnitStack{mustStack(t, 104, 500)}},
		Defender: Side{PlayerId: 2, Race: "Valdren", Roster: []domain.UnitStack{mustStack(t, 102, 1)}},
	}
	rec, err := NewCombatService(rng.New(8), logx.Nop()).Resolve(in)
	if err != nil {
		t.Fatalf("结算失败：%v", err)
	}
	if len(rec.Rounds) != 1 {
		t.Fatalf("期望 1 回合收场，got=%d", len(rec.Rounds))
	}
	if rec.Result != domain.ResultAttackerVictory {
		t.Fatalf("期望攻方胜，got=%s", rec.Result)
	}
}

func TestResolve_畸形兵团直接报错不结算(t *testing.T) {
	base := scenario42Input(t)

	negative := base
	negative.Attacker.Roster = []domain.UnitStack{{CfgId: 101, Quantity: -3, Hp: 0}}
	if _, err := NewCombatService(rng.New(1), logx.Nop()).Resolve(negative); !errors.Is(err, ErrRosterInvalid) {
		t.Fatalf("期望负数量报 ROSTER_INVALID，got=%v", err)
	}

	unknown := base
	unknown.Defender.Roster = []domain.UnitStack{{CfgId: 999, Quantity: 5, Hp: 100}}
	if _, err := NewCombatService(rng.New(1), logx.Nop()).Resolve(unknown); !errors.Is(err, ErrRosterInvalid) {
		t.Fatalf("期望未知兵种报 ROSTER_INVALID，got=%v", err)
	}

	overHp := base
	overHp.Attacker.Roster = []domain.UnitStack{{CfgId: 101, Quantity: 1, Hp: 61}}
	if _, err := NewCombatService(rng.New(1), logx.Nop()).Resolve(overHp); !errors.Is(err, ErrRosterInvalid) {
		t.Fatalf("期望血量越界报 ROSTER_INVALID，got=%v", err)
	}
}

func TestDeathSave_修正封顶且按阈值定生死(t *testing.T) {
	s := NewCombatService(rng.New(21), logx.Nop())
	// Stonekin(+2) + Warlord(+2) + Last Stand(+3) = 7，必须封顶到 6
	c := Captain{Race: "Stonekin", Class: "Warlord", Skill: "Last Stand"}
	for i := 0; i < 200; i++ {
		ds := s.deathSave(c)
		if ds.Bonus != maxDeathSaveBonus {
			t.Fatalf("期望修正封顶 %d，got=%d", maxDeathSaveBonus, ds.Bonus)
		}
		if ds.FinalRoll != ds.Roll+ds.Bonus {
			t.Fatalf("期望 finalRoll=roll+bonus，got=%+v", ds)
		}
		wantWounded := ds.FinalRoll >= deathSaveThreshold
		if wantWounded && ds.Outcome != domain.CaptainWounded {
			t.Fatalf("期望 finalRoll=%d 存活，got=%s", ds.FinalRoll, ds.Outcome)
		}
		if !wantWounded && ds.Outcome != domain.CaptainDead {
			t.Fatalf("期望 finalRoll=%d 阵亡，got=%s", ds.FinalRoll, ds.Outcome)
		}
	}
}

func TestResolve_亡团才触发免死判定(t *testing.T) {
	in := Input{
		Attacker: Side{
			PlayerId: 1, Race: "Morghast",
			Roster:  []domain.UnitStack{mustStack(t, 104, 500)},
			Captain: &Captain{Race: "Morghast", Class: "Warlord", Skill: "Overrun"},
		},
		Defender: Side{
			PlayerId: 2, Race: "Valdren",
			Roster:  []domain.UnitStack{mustStack(t, 102, 1)},
			Captain: &Captain{Race: "Valdren", Class: "Priest", Skill: "Benediction"},
		},
	}
	rec, err := NewCombatService(rng.New(4), logx.Nop()).Resolve(in)
	if err != nil {
		t.Fatalf("结算失败：%v", err)
	}
	if rec.AttackerCaptain != nil {
		t.Fatalf("攻方未亡团，不应有判定，got=%+v", rec.AttackerCaptain)
	}
	if rec.DefenderCaptain == nil {
		t.Fatalf("守方亡团，期望有免死判定")
	}
}

func TestResolve_干净胜利才有战利品与俘虏(t *testing.T) {
	res := gamedomain.Resources{Gold: 1000, Wood: 1000, Stone: 1000, Iron: 1000, Grain: 1000}

	// 干净胜利：守方被打光
	wipe := Input{
		Attacker:          Side{PlayerId: 1, Race: "Graveborn", Roster: []domain.UnitStack{mustStack(t, 104, 500)}},
		Defender:          Side{PlayerId: 2, Race: "Valdren", Roster: []domain.UnitStack{mustStack(t, 102, 50)}},
		DefenderResources: res,
	}
	rec, err := NewCombatService(rng.New(17), logx.Nop()).Resolve(wipe)
	if err != nil {
		t.Fatalf("结算失败：%v", err)
	}
	if rec.Result != domain.ResultAttackerVictory {
		t.Fatalf("期望攻方胜，got=%s", rec.Result)
	}
	if rec.Loot.Total() == 0 {
		t.Fatalf("期望干净胜利有战利品")
	}
	// Graveborn 俘虏率 1.5×：50 伤亡 × 15% × 1.5 = 11
	if len(rec.Prisoners) == 0 {
		t.Fatalf("期望有俘虏")
	}
	for _, p := range rec.Prisoners {
		if !p.Prisoner || p.OriginalRace != "Valdren" {
			t.Fatalf("期望俘虏带原种族标记，got=%+v", p)
		}
	}

	// 未打光：即便攻方数量占优也不结算战利品
	grind := Input{
		Attacker:          Side{PlayerId: 1, Race: "Valdren", Roster: []domain.UnitStack{mustStack(t, 101, 300)}},
		Defender:          Side{PlayerId: 2, Race: "Stonekin", Roster: []domain.UnitStack{mustStack(t, 101, 200)}},
		DefenderResources: res,
	}
	rec2, err := NewCombatService(rng.New(17), logx.Nop()).Resolve(grind)
	if err != nil {
		t.Fatalf("结算失败：%v", err)
	}
	if domain.RosterQuantity(rec2.FinalDefender) > 0 && rec2.Loot.Total() != 0 {
		t.Fatalf("期望守方未打光时无战利品，got=%+v", rec2.Loot)
	}
}

func TestApplyDamage_吃损顺序与残血回抬启发式(t *testing.T) {
	roster := []domain.UnitStack{
		mustStack(t, 105, 10), // siege 最后吃
		mustStack(t, 101, 10), // defender 先吃
	}
	// 打掉恰好 5 个 Shieldbearer（hp=60）
	cas := applyDamage(roster, 300)
	if cas != 5 {
		t.Fatalf("期望 5 个伤亡，got=%d", cas)
	}
	if roster[0].Quantity != 10 {
		t.Fatalf("期望 siege 未被波及，got=%d", roster[0].Quantity)
	}
	if roster[1].Quantity != 5 {
		t.Fatalf("期望 defender 剩 5，got=%d", roster[1].Quantity)
	}

	// 部分伤害后的回抬：钉死现有行为，剩余血量不得低于名义血量的 10%
	roster2 := []domain.UnitStack{mustStack(t, 101, 10)} // hp=600
	applyDamage(roster2, 599)
	u, _ := units.Get(101)
	if roster2[0].Quantity != 1 {
		t.Fatalf("期望剩 1 个，got=%d", roster2[0].Quantity)
	}
	wantFloor := int(float64(roster2[0].Quantity*u.Hp) * hpRefloorShare)
	if roster2[0].Hp < wantFloor {
		t.Fatalf("期望残血回抬到 ≥%d，got=%d", wantFloor, roster2[0].Hp)
	}
	if roster2[0].Hp > roster2[0].Quantity*u.Hp {
		t.Fatalf("期望聚合血量不超过名义上限")
	}
}

func TestRosterAtk_俘虏摞出力打六折(t *testing.T) {
	full := []domain.UnitStack{mustStack(t, 102, 100)} // atk 12×100
	pris := domain.CloneRoster(full)
	pris[0].Prisoner = true
	if got, want := rosterAtk(pris), rosterAtk(full)*prisonerEffectiveness; got != want {
		t.Fatalf("期望俘虏出力 %.1f，got=%.1f", want, got)
	}
}

func TestGarrisonRoster_同强度折算恒定且非空(t *testing.T) {
	a := GarrisonRoster(400)
	b := GarrisonRoster(400)
	ba, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	if string(ba) != string(bb) {
		t.Fatalf("期望折算确定性，%s != %s", ba, bb)
	}
	if len(GarrisonRoster(1)) == 0 {
		t.Fatalf("期望最低强度也有守军")
	}
	if GarrisonRoster(0) != nil {
		t.Fatalf("期望零强度无守军")
	}
}
