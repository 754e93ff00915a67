package generation

import (
	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"Ashfall/internal/agent"
	combatdomain "Ashfall/internal/combat/entity/domain"
	combatservice "Ashfall/internal/combat/service"
	gamedomain "Ashfall/internal/game/domain"
	playerdomain "Ashfall/internal/player/entity/domain"
	"Ashfall/internal/shared/gameconfig/units"
	worlddomain "Ashfall/internal/world/entity/domain"
)

// 动作成本与产出表。数值是平衡模拟的输入，不是引擎常量，
// 将来要做成本扫描时再抽去配置。
const (
	wallWoodCost  = 200
	wallStoneCost = 150

	unitGoldCost = 20
	unitIronCost = 5

	expandGoldCost   = 100
	upgradeStoneCost = 300
)

// terrainYield 是每格每日产出表。
func terrainYield(t worlddomain.Terrain) gamedomain.Resources {
	switch t {
	case "plains":
		return gamedomain.Resources{Gold: 2, Grain: 8}
	case "forest":
		return gamedomain.Resources{Wood: 6, Grain: 3}
	case "hills":
		return gamedomain.Resources{Stone: 5, Iron: 3}
	case "swamp":
		return gamedomain.Resources{Grain: 4}
	case "ruins":
		return gamedomain.Resources{Gold: 5, Iron: 2}
	case "wasteland":
		return gamedomain.Resources{Gold: 1}
	default:
		return gamedomain.Resources{}
	}
}

func stackUnitHp(cfgId int) int {
	u, ok := units.Get(cfgId)
	if !ok {
		return 1
	}
	return u.Hp
}

// applyAction 执行一条非战斗动作。非法/付不起的动作静默作废：
// agent 基于快照决策，落地时条件可能已不成立，这不算错误。
func (o *Orchestrator) applyAction(p *playerdomain.SimPlayer, act agent.Action) {
	switch act.Type {
	case agent.ActionBuild:
		var pl agent.BuildPayload
		if mapstructure.Decode(act.Payload, &pl) != nil {
			return
		}
		o.applyBuild(p, pl)
	case agent.ActionTrain:
		var pl agent.TrainPayload
		if mapstructure.Decode(act.Payload, &pl) != nil {
			return
		}
		o.applyTrain(p, pl)
	case agent.ActionExpand:
		var pl agent.ExpandPayload
		if mapstructure.Decode(act.Payload, &pl) != nil {
			return
		}
		o.applyExpand(p, pl)
	case agent.ActionMove, agent.ActionDefend:
		var pl agent.MovePayload
		if mapstructure.Decode(act.Payload, &pl) != nil {
			return
		}
		o.applyMove(p, pl)
	case agent.ActionUpgrade:
		o.applyUpgrade(p)
	case agent.ActionWait:
	}
}

// applyBuild 目前只有城墙一种建筑。
func (o *Orchestrator) applyBuild(p *playerdomain.SimPlayer, pl agent.BuildPayload) {
	if pl.Kind != worlddomain.BuildingWall {
		return
	}
	cell := o.world.At(pl.X, pl.Y)
	if cell == nil || cell.Owner != worlddomain.PlayerID(p.Id) || cell.HasWall() {
		return
	}
	if p.Resources.Wood < wallWoodCost || p.Resources.Stone < wallStoneCost {
		return
	}
	p.Resources = p.Resources.Sub(gamedomain.Resources{Wood: wallWoodCost, Stone: wallStoneCost})
	cell.Buildings = append(cell.Buildings, worlddomain.BuildingWall)
	p.Buildings++
}

// applyTrain 把新兵并进主将军队（无主将军队时并进第一支，全无则在主城新建）。
func (o *Orchestrator) applyTrain(p *playerdomain.SimPlayer, pl agent.TrainPayload) {
	u, ok := units.Get(pl.CfgId)
	if !ok || pl.Quantity <= 0 {
		return
	}
	cost := gamedomain.Resources{Gold: unitGoldCost * pl.Quantity, Iron: unitIronCost * pl.Quantity}
	if p.Resources.Gold < cost.Gold || p.Resources.Iron < cost.Iron {
		return
	}
	p.Resources = p.Resources.Sub(cost)

	army := p.CaptainArmy()
	if army == nil && len(p.Armies) > 0 {
		army = p.Armies[0]
	}
	if army == nil {
		home := o.homeOf(p)
		army = &playerdomain.Army{Id: o.nextArmyId, Owner: p.Id}
		o.nextArmyId++
		p.Armies = append(p.Armies, army)
		o.placeArmy(p, army, home.X, home.Y)
	}
	for i := range army.Stacks {
		if army.Stacks[i].CfgId == pl.CfgId && !army.Stacks[i].Prisoner {
			army.Stacks[i].Quantity += pl.Quantity
			army.Stacks[i].Hp += pl.Quantity * u.Hp
			return
		}
	}
	st, _ := combatservice.NewStack(pl.CfgId, pl.Quantity)
	army.Stacks = append(army.Stacks, st)
}

// applyExpand 宣称一块邻接无主格。
func (o *Orchestrator) applyExpand(p *playerdomain.SimPlayer, pl agent.ExpandPayload) {
	cell := o.world.At(pl.X, pl.Y)
	if cell == nil || !cell.Unclaimed() || p.Resources.Gold < expandGoldCost {
		return
	}
	adjacent := false
	for _, n := range o.world.Neighbors(pl.X, pl.Y) {
		if o.world.At(n.X, n.Y).Owner == worlddomain.PlayerID(p.Id) {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return
	}
	p.Resources = p.Resources.Sub(gamedomain.Resources{Gold: expandGoldCost})
	cell.Owner = worlddomain.PlayerID(p.Id)
	p.OwnedCells[o.world.ToPosition(pl.X, pl.Y)] = true
}

// applyMove 向目标走一步（切比雪夫步长 1）。敌格/据点格不能直接走进，
// 停在门口，下一天由攻击动作接手。
func (o *Orchestrator) applyMove(p *playerdomain.SimPlayer, pl agent.MovePayload) {
	a := p.ArmyById(pl.ArmyId)
	if a == nil {
		return
	}
	nx, ny := stepToward(a.X, a.Y, pl.X, pl.Y)
	if !o.world.InBounds(nx, ny) {
		return
	}
	dst := o.world.At(nx, ny)
	if dst.Forsaken || (dst.Owner != 0 && dst.Owner != worlddomain.PlayerID(p.Id)) {
		return
	}
	o.placeArmy(p, a, nx, ny)
}

func (o *Orchestrator) applyUpgrade(p *playerdomain.SimPlayer) {
	if p.Buildings == 0 || p.Resources.Stone < upgradeStoneCost {
		return
	}
	p.Resources = p.Resources.Sub(gamedomain.Resources{Stone: upgradeStoneCost})
	p.Buildings++
}

func stepToward(x, y, tx, ty int) (int, int) {
	return x + sign(tx-x), y + sign(ty-y)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// applyAttack 结算一条攻击动作。目标不相邻时退化成一步行军；
// 相邻才真正进结算器。返回的 error 只用于日志，单场失败不拖垮当日。
func (o *Orchestrator) applyAttack(p *playerdomain.SimPlayer, act agent.Action) error {
	var pl agent.AttackPayload
	if err := mapstructure.Decode(act.Payload, &pl); err != nil {
		return ErrGenerationInvalid.Because(err)
	}
	a := p.ArmyById(pl.ArmyId)
	if a == nil || a.Quantity() == 0 || !o.world.InBounds(pl.X, pl.Y) {
		return nil
	}
	if chebyshev(a.X, a.Y, pl.X, pl.Y) > 1 {
		o.applyMove(p, agent.MovePayload{ArmyId: pl.ArmyId, X: pl.X, Y: pl.Y})
		return nil
	}

	cell := o.world.At(pl.X, pl.Y)
	switch {
	case cell.Forsaken:
		return o.attackForsaken(p, a, cell)
	case cell.Owner != 0 && cell.Owner != worlddomain.PlayerID(p.Id):
		return o.attackPlayer(p, a, cell)
	default:
		return nil
	}
}

// attackForsaken 打废弃者据点：守军按强度生成，无主将无城墙无战利品。
func (o *Orchestrator) attackForsaken(p *playerdomain.SimPlayer, a *playerdomain.Army, cell *worlddomain.CellState) error {
	in := combatservice.Input{
		Attacker: combatservice.Side{
			PlayerId: int(p.Id),
			Race:     p.Race,
			Roster:   a.Stacks,
			Captain:  o.captainInput(p, a),
		},
		Defender: combatservice.Side{
			Race:   "Forsaken",
			Roster: combatservice.GarrisonRoster(cell.ForsakenStrength),
		},
	}
	rec, err := o.combatSvc.Resolve(in)
	if err != nil {
		return err
	}
	o.combats = append(o.combats, rec)

	a.Stacks = rec.FinalAttacker
	o.applyCaptainOutcome(p, a, rec.AttackerCaptain)
	o.pruneArmies(p)

	if rec.Result == combatdomain.ResultAttackerVictory && combatdomain.RosterQuantity(rec.FinalDefender) == 0 {
		cell.Forsaken = false
		cell.ForsakenStrength = 0
		cell.Owner = worlddomain.PlayerID(p.Id)
		p.OwnedCells[o.world.ToPosition(cell.X, cell.Y)] = true
		if a.Quantity() > 0 {
			o.placeArmy(p, a, cell.X, cell.Y)
		}
	}
	return nil
}

// attackPlayer 打玩家领地。无驻军的格子直接易主，不出战斗记录。
func (o *Orchestrator) attackPlayer(p *playerdomain.SimPlayer, a *playerdomain.Army, cell *worlddomain.CellState) error {
	enemy := o.playerById(playerdomain.PlayerID(cell.Owner))
	if enemy == nil {
		return nil
	}
	defArmy := enemy.ArmyById(cell.GarrisonArmyId)

	if defArmy == nil || defArmy.Quantity() == 0 {
		o.transferCell(cell, enemy, p)
		if a.Quantity() > 0 {
			o.placeArmy(p, a, cell.X, cell.Y)
		}
		return nil
	}

	in := combatservice.Input{
		Attacker: combatservice.Side{
			PlayerId: int(p.Id),
			Race:     p.Race,
			Roster:   a.Stacks,
			Captain:  o.captainInput(p, a),
		},
		Defender: combatservice.Side{
			PlayerId: int(enemy.Id),
			Race:     enemy.Race,
			Roster:   defArmy.Stacks,
			Captain:  o.captainInput(enemy, defArmy),
		},
		DefenderHasWall:   cell.HasWall(),
		DefenderResources: enemy.Resources,
	}
	rec, err := o.combatSvc.Resolve(in)
	if err != nil {
		return err
	}
	o.combats = append(o.combats, rec)

	a.Stacks = rec.FinalAttacker
	defArmy.Stacks = rec.FinalDefender
	o.applyCaptainOutcome(p, a, rec.AttackerCaptain)
	o.applyCaptainOutcome(enemy, defArmy, rec.DefenderCaptain)

	if rec.Result == combatdomain.ResultAttackerVictory && combatdomain.RosterQuantity(rec.FinalDefender) == 0 {
		p.Resources = p.Resources.Add(rec.Loot)
		enemy.Resources = enemy.Resources.Sub(rec.Loot)
		if len(rec.Prisoners) > 0 {
			a.Stacks = append(a.Stacks, rec.Prisoners...)
		}
		o.transferCell(cell, enemy, p)
		if a.Quantity() > 0 {
			o.placeArmy(p, a, cell.X, cell.Y)
		}
	}

	o.pruneArmies(p)
	o.pruneArmies(enemy)
	return nil
}

// captainInput 主将随军且在世才进判定输入。
func (o *Orchestrator) captainInput(p *playerdomain.SimPlayer, a *playerdomain.Army) *combatservice.Captain {
	if !a.CaptainAboard || p.Captain.Dead || p.Captain.Wounded(o.day) {
		return nil
	}
	return &combatservice.Captain{
		Race:  p.Race,
		Class: p.Captain.Class,
		Skill: p.Captain.Skill,
	}
}

// applyCaptainOutcome 把亡团免死判定落到主将状态上。
func (o *Orchestrator) applyCaptainOutcome(p *playerdomain.SimPlayer, a *playerdomain.Army, save *combatdomain.DeathSave) {
	if save == nil {
		return
	}
	switch save.Outcome {
	case combatdomain.CaptainDead:
		p.Captain.Dead = true
		a.CaptainAboard = false
		o.log.Info("captain died",
			zap.Int("player", int(p.Id)), zap.Int("day", o.day),
			zap.Int("roll", save.Roll), zap.Int("final", save.FinalRoll))
	case combatdomain.CaptainWounded:
		// 重伤不下军籍，恢复窗口内不参与判定
		p.Captain.WoundedUntilDay = o.day + combatservice.WoundedRecoveryDays
	}
}

// transferCell 领地易主并清掉旧驻军引用。
func (o *Orchestrator) transferCell(cell *worlddomain.CellState, from, to *playerdomain.SimPlayer) {
	idx := o.world.ToPosition(cell.X, cell.Y)
	delete(from.OwnedCells, idx)
	to.OwnedCells[idx] = true
	cell.Owner = worlddomain.PlayerID(to.Id)
	cell.GarrisonArmyId = 0
}
