package service

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"Ashfall/internal/combat/entity/domain"
	gamedomain "Ashfall/internal/game/domain"
	"Ashfall/internal/shared/gameconfig/races"
	"Ashfall/internal/shared/gameconfig/units"
	"Ashfall/internal/shared/rng"
	"Ashfall/modules/kit/logx"
)

// Captain 是随军主将的判定输入。
type Captain struct {
	Race  string
	Class string
	Skill string
}

// Side 是一方的战斗输入。
type Side struct {
	PlayerId int
	Race     string
	Roster   []domain.UnitStack
	Captain  *Captain // nil 表示无主将随军
}

// Input 是一场战斗的全部输入。守方打据点时 PlayerId=0、Captain=nil。
type Input struct {
	Attacker          Side
	Defender          Side
	DefenderHasWall   bool
	DefenderResources gamedomain.Resources // 战利品基数
}

// CombatService 实现回合制战斗结算。
// 随机序固定：攻骰 → 守骰 → 攻方重组 → 守方重组 →（亡团时）攻将判定 → 守将判定，
// 同种子同输入必然得到同一份 CombatRecord。
type CombatService struct {
	rand *rng.Source
	log  logx.Logger
}

func NewCombatService(r *rng.Source, log logx.Logger) *CombatService {
	if log == nil {
		log = logx.Nop()
	}
	return &CombatService{rand: r, log: log}
}

// Resolve 结算一场至多 MaxRounds 回合的战斗，返回不可变的战斗记录。
// 兵团畸形/种族未知直接报错，不产出半截记录。
func (s *CombatService) Resolve(in Input) (*domain.CombatRecord, error) {
	if err := validateRoster(in.Attacker.Roster); err != nil {
		return nil, err
	}
	if err := validateRoster(in.Defender.Roster); err != nil {
		return nil, err
	}
	atkRace, ok := races.Get(in.Attacker.Race)
	if !ok {
		return nil, ErrCombatInvalid.With("race", in.Attacker.Race)
	}
	defRace, ok := races.Get(in.Defender.Race)
	if !ok {
		return nil, ErrCombatInvalid.With("race", in.Defender.Race)
	}

	record := &domain.CombatRecord{
		AttackerId:      in.Attacker.PlayerId,
		DefenderId:      in.Defender.PlayerId,
		AttackerRace:    in.Attacker.Race,
		DefenderRace:    in.Defender.Race,
		InitialAttacker: domain.CloneRoster(in.Attacker.Roster),
		InitialDefender: domain.CloneRoster(in.Defender.Roster),
	}

	atk := domain.CloneRoster(in.Attacker.Roster)
	def := domain.CloneRoster(in.Defender.Roster)

	for round := 1; round <= MaxRounds; round++ {
		if domain.RosterQuantity(atk) == 0 || domain.RosterQuantity(def) == 0 {
			break
		}
		// copy-then-commit：整回合在副本上结算，算完才落回
		nextAtk := domain.CloneRoster(atk)
		nextDef := domain.CloneRoster(def)
		rr := s.resolveRound(round, nextAtk, nextDef, atkRace, defRace, in.DefenderHasWall)
		atk, def = compactRoster(nextAtk), compactRoster(nextDef)
		record.Rounds = append(record.Rounds, rr)
	}

	record.FinalAttacker = atk
	record.FinalDefender = def
	record.AttackerCasualties = domain.RosterQuantity(record.InitialAttacker) - domain.RosterQuantity(atk)
	record.DefenderCasualties = domain.RosterQuantity(record.InitialDefender) - domain.RosterQuantity(def)

	// 亡团免死判定：先攻后守，随机序的一部分
	if domain.RosterQuantity(atk) == 0 && in.Attacker.Captain != nil {
		record.AttackerCaptain = s.deathSave(*in.Attacker.Captain)
	}
	if domain.RosterQuantity(def) == 0 && in.Defender.Captain != nil {
		record.DefenderCaptain = s.deathSave(*in.Defender.Captain)
	}

	record.Result = winnerOf(atk, def)

	// 只有干净的攻方胜利（守方被打光）才结算战利品与俘虏
	if record.Result == domain.ResultAttackerVictory && domain.RosterQuantity(def) == 0 {
		record.Loot = in.DefenderResources.Scale(lootShare * atkRace.LootMult)
		record.Prisoners = capturePrisoners(record.InitialDefender, def, in.Defender.Race, atkRace.CaptureMult)
	}

	s.log.Debug("combat resolved",
		zap.Int("attacker", in.Attacker.PlayerId),
		zap.Int("defender", in.Defender.PlayerId),
		zap.Int("rounds", len(record.Rounds)),
		zap.String("result", string(record.Result)))
	return record, nil
}

// resolveRound 在副本上结算一个回合，返回回合记录。
func (s *CombatService) resolveRound(round int, atk, def []domain.UnitStack,
	atkRace, defRace races.RaceDetail, wall bool) domain.RoundRecord {

	atkRoll := s.rand.WeightedD20()
	defRoll := s.rand.WeightedD20()

	// 原始攻防合计：Σ(数值×数量)，俘虏摞打六折
	atkATK := rosterAtk(atk) * atkRace.AggressorAtk // 侵略加成只给进攻发起方
	atkDEF := rosterDef(atk)
	defATK := rosterAtk(def)
	defDEF := rosterDef(def)

	// 修正顺序是固定的：守方墙族加成先乘，攻方法术穿透作用在已调整的防御上，最后上墙
	if wall {
		defDEF *= defRace.WallDef
	}
	defDEF *= atkRace.MagicPen
	if wall {
		defDEF *= wallDefenseMult
	}

	dmgByAtk := damage(atkATK, attackMult(atkRoll), defDEF, defenseMult(defRoll), atkRoll)
	dmgByDef := damage(defATK, attackMult(defRoll), atkDEF, defenseMult(atkRoll), defRoll)

	defCas := applyDamage(def, dmgByAtk)
	atkCas := applyDamage(atk, dmgByDef)

	// 重组（随机序：先攻后守）
	atkReformed := s.reform(atk, atkCas, atkRace)
	defReformed := s.reform(def, defCas, defRace)

	return domain.RoundRecord{
		Round:              round,
		AttackerRoll:       atkRoll,
		DefenderRoll:       defRoll,
		AttackerDamage:     dmgByAtk,
		DefenderDamage:     dmgByDef,
		AttackerCasualties: atkCas - atkReformed,
		DefenderCasualties: defCas - defReformed,
		AttackerReformed:   atkReformed,
		DefenderReformed:   defReformed,
	}
}

// damage = floor(己方 ATK×己方攻击乘数 − 敌方 DEF×敌方防御乘数)。
// 骰出 1 允许零伤害；其余骰点保底 1 点，保证战斗在回合上限内必然收敛。
func damage(atk, atkMult, def, defMult float64, roll int) int {
	d := int(math.Floor(atk*atkMult - def*defMult))
	if roll == 1 {
		return max(0, d)
	}
	return max(1, d)
}

func rosterAtk(roster []domain.UnitStack) float64 {
	total := 0.0
	for _, st := range roster {
		u, _ := units.Get(st.CfgId) // roster 已校验
		v := float64(u.Atk * st.Quantity)
		if st.Prisoner {
			v *= prisonerEffectiveness
		}
		total += v
	}
	return total
}

func rosterDef(roster []domain.UnitStack) float64 {
	total := 0.0
	for _, st := range roster {
		u, _ := units.Get(st.CfgId)
		v := float64(u.Def * st.Quantity)
		if st.Prisoner {
			v *= prisonerEffectiveness
		}
		total += v
	}
	return total
}

// applyDamage 按吃损顺序（defender > attacker > elite > siege）逐摞扣血，
// 消耗的血量按 floor(消耗/单兵 hp) 折算成伤亡，数量归零的摞由调用方清理。
// 返回总伤亡数。
func applyDamage(roster []domain.UnitStack, dmg int) int {
	if dmg <= 0 {
		return 0
	}
	order := make([]int, 0, len(roster))
	for i := range roster {
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		ua, _ := units.Get(roster[order[a]].CfgId)
		ub, _ := units.Get(roster[order[b]].CfgId)
		pa, _ := ua.Role.Priority()
		pb, _ := ub.Role.Priority()
		return pa < pb
	})

	casualties := 0
	remaining := dmg
	for _, idx := range order {
		if remaining <= 0 {
			break
		}
		st := &roster[idx]
		if st.Quantity == 0 {
			continue
		}
		u, _ := units.Get(st.CfgId)

		consumed := min(st.Hp, remaining)
		st.Hp -= consumed
		remaining -= consumed

		dead := min(consumed/u.Hp, st.Quantity)
		st.Quantity -= dead
		if st.Hp == 0 && st.Quantity > 0 {
			// 血量被吃干即全灭，折算余数不再救回
			dead += st.Quantity
			st.Quantity = 0
		}
		casualties += dead

		if st.Quantity > 0 {
			// 平滑启发式：残血摞的聚合血量回抬到名义血量的 ~10%。
			// 行为被测试钉死，保持原样。
			floorHp := int(float64(st.Quantity*u.Hp) * hpRefloorShare)
			if st.Hp < floorHp {
				st.Hp = floorHp
			}
			if cap := st.Quantity * u.Hp; st.Hp > cap {
				st.Hp = cap
			}
		}
	}
	return casualties
}

// reform：Graveborn 类种族在回合末有 ReformChance 概率把至多 ReformMax 比例的
// 本回合伤亡重组回编制；只回数量，血量按半血回。返回重组数。
func (s *CombatService) reform(roster []domain.UnitStack, casualties int, race races.RaceDetail) int {
	if race.ReformChance <= 0 || casualties <= 0 {
		return 0
	}
	if s.rand.Float64() >= race.ReformChance {
		return 0
	}
	share := s.rand.Float64() * race.ReformMax
	want := int(float64(casualties) * share)
	if want <= 0 {
		return 0
	}
	// 回填到第一支未打光的摞；全军覆没时没有可回填的载体，重组失效
	for i := range roster {
		if roster[i].Quantity > 0 {
			u, _ := units.Get(roster[i].CfgId)
			roster[i].Quantity += want
			roster[i].Hp += want * u.Hp / 2
			return want
		}
	}
	return 0
}

// deathSave 亡团免死判定：d20 + 种族/职业/技能修正（封顶 maxDeathSaveBonus），
// 到阈值则重伤存活，否则永久阵亡。
func (s *CombatService) deathSave(c Captain) *domain.DeathSave {
	roll := s.rand.WeightedD20()
	bonus := min(deathSaveBonus(c), maxDeathSaveBonus)
	final := roll + bonus
	outcome := domain.CaptainDead
	if final >= deathSaveThreshold {
		outcome = domain.CaptainWounded
	}
	return &domain.DeathSave{
		Roll:      roll,
		Bonus:     bonus,
		FinalRoll: final,
		Outcome:   outcome,
	}
}

func winnerOf(atk, def []domain.UnitStack) domain.Result {
	aq, dq := domain.RosterQuantity(atk), domain.RosterQuantity(def)
	switch {
	case aq > dq:
		return domain.ResultAttackerVictory
	case dq > aq:
		return domain.ResultDefenderVictory
	default:
		return domain.ResultDraw
	}
}

// capturePrisoners 从守方伤亡里按摞俘获 captureShare×系数 的单位，满血入营。
func capturePrisoners(initial, final []domain.UnitStack, defRaceName string, captureMult float64) []domain.UnitStack {
	finalQty := make(map[int]int)
	for _, st := range final {
		finalQty[st.CfgId] += st.Quantity
	}
	var out []domain.UnitStack
	counted := make(map[int]bool)
	for _, st := range initial {
		if counted[st.CfgId] {
			continue
		}
		counted[st.CfgId] = true
		lost := st.Quantity - finalQty[st.CfgId]
		captured := int(float64(lost) * captureShare * captureMult)
		if captured <= 0 {
			continue
		}
		u, _ := units.Get(st.CfgId)
		out = append(out, domain.UnitStack{
			CfgId:        st.CfgId,
			Quantity:     captured,
			Hp:           captured * u.Hp,
			Prisoner:     true,
			OriginalRace: defRaceName,
		})
	}
	return out
}

// validateRoster 校验兵团：负数量、未知兵种、血量越界都算配置错误。
func validateRoster(roster []domain.UnitStack) error {
	for i, st := range roster {
		if st.Quantity < 0 {
			return ErrRosterInvalid.With("index", i).With("quantity", st.Quantity)
		}
		u, ok := units.Get(st.CfgId)
		if !ok {
			return ErrRosterInvalid.With("index", i).With("cfgId", st.CfgId)
		}
		if st.Hp < 0 || st.Hp > st.Quantity*u.Hp {
			return ErrRosterInvalid.With("index", i).With("hp", st.Hp)
		}
		if st.Quantity > 0 && st.Hp == 0 {
			return ErrRosterInvalid.With("index", i).With("reason", "zero hp with units")
		}
	}
	return nil
}

func compactRoster(in []domain.UnitStack) []domain.UnitStack {
	out := in[:0]
	for _, st := range in {
		if st.Quantity > 0 {
			out = append(out, st)
		}
	}
	return out
}

func deathSaveBonus(c Captain) int {
	total := 0
	if r, ok := races.Get(c.Race); ok {
		total += r.DeathSaveBonus
	}
	return total + classAndSkillBonus(c.Class, c.Skill)
}
