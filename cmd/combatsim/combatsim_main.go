// combatsim 手工跑单场战斗，逐回合打印结算过程，调平衡数值时用。
//
// 默认场景：100 Raider（攻）对 100 Shieldbearer（守），种子 42。
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	combatdomain "Ashfall/internal/combat/entity/domain"
	combatservice "Ashfall/internal/combat/service"
	gamedomain "Ashfall/internal/game/domain"
	"Ashfall/internal/shared/gameconfig"
	"Ashfall/internal/shared/rng"
	"Ashfall/modules/kit/logx"
)

func main() {
	var (
		seed    = flag.Int64("seed", 42, "随机种子")
		atkCfg  = flag.Int("atk-unit", 102, "攻方兵种 cfgId")
		atkQty  = flag.Int("atk-qty", 100, "攻方数量")
		defCfg  = flag.Int("def-unit", 101, "守方兵种 cfgId")
		defQty  = flag.Int("def-qty", 100, "守方数量")
		atkRace = flag.String("atk-race", "Valdren", "攻方种族")
		defRace = flag.String("def-race", "Valdren", "守方种族")
		wall    = flag.Bool("wall", false, "守方有城墙")
		verbose = flag.Bool("verbose", false, "输出完整 JSON 战斗记录")
	)
	flag.Parse()

	gameconfig.Load()

	atkStack, ok := combatservice.NewStack(*atkCfg, *atkQty)
	if !ok {
		fmt.Fprintln(os.Stderr, "未知攻方兵种:", *atkCfg)
		os.Exit(2)
	}
	defStack, ok := combatservice.NewStack(*defCfg, *defQty)
	if !ok {
		fmt.Fprintln(os.Stderr, "未知守方兵种:", *defCfg)
		os.Exit(2)
	}

	in := combatservice.Input{
		Attacker: combatservice.Side{
			PlayerId: 1,
			Race:     *atkRace,
			Roster:   []combatdomain.UnitStack{atkStack},
		},
		Defender: combatservice.Side{
			PlayerId: 2,
			Race:     *defRace,
			Roster:   []combatdomain.UnitStack{defStack},
		},
		DefenderHasWall:   *wall,
		DefenderResources: gamedomain.Resources{Gold: 1000, Wood: 1000, Stone: 1000, Iron: 1000, Grain: 1000},
	}

	svc := combatservice.NewCombatService(rng.New(*seed), logx.Nop())
	rec, err := svc.Resolve(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "结算失败:", err)
		os.Exit(2)
	}

	fmt.Printf("种子 %d：%s(%d×%d) 攻 %s(%d×%d)",
		*seed, *atkRace, *atkCfg, *atkQty, *defRace, *defCfg, *defQty)
	if *wall {
		fmt.Print("，守方有墙")
	}
	fmt.Println()

	for _, rr := range rec.Rounds {
		fmt.Printf("回合 %d：攻骰 %-2d 守骰 %-2d | 攻方输出 %-5d 承伤亡 %-4d（重组 %d）| 守方输出 %-5d 承伤亡 %-4d（重组 %d）\n",
			rr.Round, rr.AttackerRoll, rr.DefenderRoll,
			rr.AttackerDamage, rr.AttackerCasualties, rr.AttackerReformed,
			rr.DefenderDamage, rr.DefenderCasualties, rr.DefenderReformed)
	}

	fmt.Printf("结果：%s | 攻方伤亡 %d / 守方伤亡 %d | 攻方余 %d / 守方余 %d\n",
		rec.Result,
		rec.AttackerCasualties, rec.DefenderCasualties,
		combatdomain.RosterQuantity(rec.FinalAttacker),
		combatdomain.RosterQuantity(rec.FinalDefender))
	if rec.Loot.Total() > 0 {
		fmt.Printf("战利品：%+v\n", rec.Loot)
	}
	if len(rec.Prisoners) > 0 {
		fmt.Printf("俘虏：%d 单位\n", combatdomain.RosterQuantity(rec.Prisoners))
	}

	if *verbose {
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "序列化失败:", err)
			os.Exit(2)
		}
		fmt.Println(string(b))
	}
}
