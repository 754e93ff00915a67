package generation

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	combatdomain "Ashfall/internal/combat/entity/domain"
	playerdomain "Ashfall/internal/player/entity/domain"
	"Ashfall/internal/shared/gameconfig"
	"Ashfall/modules/kit/logx"
)

func TestMain(m *testing.M) {
	gameconfig.Load()
	os.Exit(m.Run())
}

func testConfig(seed int64) Config {
	return Config{
		Seed:             seed,
		Days:             20,
		Players:          4,
		WorldSize:        100,
		PlotsPerPlayer:   5,
		ForsakenCoverage: 0.10,
	}
}

func mustRun(t *testing.T, cfg Config) *Summary {
	t.Helper()
	o, err := New(cfg, logx.Nop())
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	s, err := o.Run()
	if err != nil {
		t.Fatalf("世代运行失败：%v", err)
	}
	return s
}

func TestNew_非法参数逐项报GENERATION_INVALID(t *testing.T) {
	bad := []Config{
		{Seed: 1, Days: 8, Players: 4, WorldSize: 100, PlotsPerPlayer: 5},  // 天数不够三阶段
		{Seed: 1, Days: 20, Players: 1, WorldSize: 100, PlotsPerPlayer: 5}, // 人数不足
		{Seed: 1, Days: 20, Players: 4, WorldSize: 0, PlotsPerPlayer: 5},   // 尺寸非法
		{Seed: 1, Days: 20, Players: 4, WorldSize: 41, PlotsPerPlayer: 5},  // 小于 heart/inner 保留区，必然无处落位
		{Seed: 1, Days: 20, Players: 4, WorldSize: 100, PlotsPerPlayer: 0}, // 出生簇非法
		{Seed: 1, Days: 20, Players: 4, WorldSize: 100, PlotsPerPlayer: 5, ForsakenCoverage: 1.5},
	}
	for i, cfg := range bad {
		if _, err := New(cfg, nil); !errors.Is(err, ErrGenerationInvalid) {
			t.Fatalf("case %d 期望 GENERATION_INVALID，got=%v", i, err)
		}
	}
}

func TestPhaseOf_三阶段边界(t *testing.T) {
	o, err := New(testConfig(1), nil)
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	cases := []struct {
		day  int
		want Phase
	}{
		{1, PhasePlanning},
		{5, PhasePlanning},
		{6, PhaseActive},
		{15, PhaseActive},
		{16, PhaseEndgame},
		{20, PhaseEndgame},
	}
	for _, c := range cases {
		if got := o.PhaseOf(c.day); got != c.want {
			t.Fatalf("day=%d 期望 %s，got=%s", c.day, c.want, got)
		}
	}
}

func TestRun_同种子两次运行摘要逐字节一致(t *testing.T) {
	s1 := mustRun(t, testConfig(42))
	s2 := mustRun(t, testConfig(42))

	b1, _ := json.Marshal(s1)
	b2, _ := json.Marshal(s2)
	if string(b1) != string(b2) {
		t.Fatalf("同种子摘要不一致：\n%s\n---\n%s", b1, b2)
	}
}

func TestRun_摘要形状完整(t *testing.T) {
	cfg := testConfig(7)
	s := mustRun(t, cfg)

	if s.Seed != cfg.Seed {
		t.Fatalf("期望 seed=%d，got=%d", cfg.Seed, s.Seed)
	}
	if s.FinalDay < 1 || s.FinalDay > cfg.Days {
		t.Fatalf("finalDay 越界：%d", s.FinalDay)
	}
	if len(s.Players) != cfg.Players {
		t.Fatalf("期望 %d 个玩家终局态，got=%d", cfg.Players, len(s.Players))
	}
	for _, p := range s.Players {
		if p.Race == "" || p.Class == "" || p.Skill == "" || p.Policy == "" {
			t.Fatalf("玩家 %d 终局态字段缺失：%+v", p.Id, p)
		}
		if p.JoinedDay != 1 {
			t.Fatalf("开局玩家 joinedDay 应为 1，got=%d", p.JoinedDay)
		}
	}
	if s.D20Rolls == 0 && len(s.Combats) > 0 {
		t.Fatal("有战斗却没有掷骰审计计数")
	}
}

func TestRun_胜者是未淘汰玩家里的最高分(t *testing.T) {
	s := mustRun(t, testConfig(99))
	if s.WinnerId == 0 {
		return // 全灭世代允许无胜者
	}
	var winner *PlayerEndState
	for i := range s.Players {
		if s.Players[i].Id == s.WinnerId {
			winner = &s.Players[i]
		}
	}
	if winner == nil {
		t.Fatalf("胜者 %d 不在玩家列表里", s.WinnerId)
	}
	if winner.Eliminated {
		t.Fatal("胜者不能是已淘汰玩家")
	}
	for _, p := range s.Players {
		if !p.Eliminated && p.Score > winner.Score {
			t.Fatalf("玩家 %d 分数 %d 高于胜者 %d", p.Id, p.Score, winner.Score)
		}
	}
}

func TestUpdateEliminations_淘汰标记单向不可逆(t *testing.T) {
	o, err := New(testConfig(1), nil)
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	p := &playerdomain.SimPlayer{
		Id:         1,
		Race:       "Stonekin",
		Captain:    playerdomain.Captain{Class: "Warlord", Skill: "Last Stand", Dead: true},
		OwnedCells: map[int]bool{},
	}
	o.players = append(o.players, p)

	o.updateEliminations()
	if !p.Eliminated {
		t.Fatal("满足谓词却未淘汰")
	}

	// 事后补领地也不能复活
	p.OwnedCells[3] = true
	o.updateEliminations()
	if !p.Eliminated {
		t.Fatal("淘汰标记被翻回了")
	}
}

func TestSeatLateJoiner_planning内允许且领地不与在座玩家重叠(t *testing.T) {
	o, err := New(testConfig(11), logx.Nop())
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	if err := o.setup(); err != nil {
		t.Fatalf("setup 失败：%v", err)
	}
	o.day = 3

	before := len(o.players)
	p, err := o.SeatLateJoiner("Valdren", "Warlord", "Overrun", playerdomain.PolicyBalanced)
	if err != nil {
		t.Fatalf("planning 期补位失败：%v", err)
	}
	if len(o.players) != before+1 || p.JoinedDay != 3 {
		t.Fatalf("补位玩家未正确入座：players=%d joinedDay=%d", len(o.players), p.JoinedDay)
	}
	for idx := range p.OwnedCells {
		for _, other := range o.players[:before] {
			if other.OwnedCells[idx] {
				t.Fatalf("补位领地 %d 与玩家 %d 重叠", idx, other.Id)
			}
		}
	}
}

func TestSeatLateJoiner_planning结束后拒绝(t *testing.T) {
	o, err := New(testConfig(11), logx.Nop())
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	if err := o.setup(); err != nil {
		t.Fatalf("setup 失败：%v", err)
	}
	o.day = 6

	if _, err := o.SeatLateJoiner("Valdren", "Warlord", "Overrun", playerdomain.PolicyBalanced); !errors.Is(err, ErrLateJoinClosed) {
		t.Fatalf("期望 LATE_JOIN_CLOSED，got=%v", err)
	}
}

func TestBuildView_planning阶段禁战视图(t *testing.T) {
	o, err := New(testConfig(11), logx.Nop())
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	if err := o.setup(); err != nil {
		t.Fatalf("setup 失败：%v", err)
	}
	p := o.players[0]

	if v := o.buildView(p, PhasePlanning); v.CombatAllowed {
		t.Fatal("planning 阶段 CombatAllowed 应为 false")
	}
	if v := o.buildView(p, PhaseActive); !v.CombatAllowed {
		t.Fatal("active 阶段 CombatAllowed 应为 true")
	}
}

func TestUpkeep_断粮减员每摞至少1个单位(t *testing.T) {
	o, err := New(testConfig(1), nil)
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	p := &playerdomain.SimPlayer{Id: 1}
	p.Armies = []*playerdomain.Army{{
		Id: 1, Owner: 1,
		Stacks: []combatdomain.UnitStack{
			{CfgId: 102, Quantity: 10, Hp: 400},   // 2% 向下取整为 0 的小摞
			{CfgId: 101, Quantity: 100, Hp: 6000}, // 100/50 = 2
		},
	}}
	o.players = append(o.players, p)

	o.upkeep()

	if got := p.Armies[0].Stacks[0].Quantity; got != 9 {
		t.Fatalf("期望 10 人摞断粮至少减 1，got=%d", got)
	}
	if got := p.Armies[0].Stacks[0].Hp; got != 9*40 {
		t.Fatalf("期望血量随减员封顶到 %d，got=%d", 9*40, got)
	}
	if got := p.Armies[0].Stacks[1].Quantity; got != 98 {
		t.Fatalf("期望 100 人摞减员 2 个，got=%d", got)
	}
	if p.Resources.Grain != 0 {
		t.Fatalf("期望断粮后粮食钳在 0，got=%d", p.Resources.Grain)
	}
}
