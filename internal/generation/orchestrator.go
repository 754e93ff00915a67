// Package generation 驱动一个完整的 50 天模拟世代：
// 世界生成 → 每日 agent 决策 → 战斗结算 → 心跳/淘汰/计分 → 世代摘要。
package generation

import (
	"go.uber.org/zap"

	"Ashfall/internal/agent"
	combatdomain "Ashfall/internal/combat/entity/domain"
	combatservice "Ashfall/internal/combat/service"
	playerdomain "Ashfall/internal/player/entity/domain"
	playerservice "Ashfall/internal/player/service"
	"Ashfall/internal/shared/gameconfig/classes"
	"Ashfall/internal/shared/gameconfig/races"
	"Ashfall/internal/shared/rng"
	worldentity "Ashfall/internal/world/entity"
	worlddomain "Ashfall/internal/world/entity/domain"
	worldservice "Ashfall/internal/world/service"
	"Ashfall/modules/kit/logx"
)

const (
	planningDays    = 5 // 第 1~5 天禁战
	endgameDays     = 5 // 最后 5 天
	heartbeatPeriod = 5 // 每 5 天一次世界心跳
	startingRaiders = 50
	startingShields = 30
)

// Config 是一个世代的运行参数。
type Config struct {
	Seed             int64
	Days             int
	Players          int
	WorldSize        int
	PlotsPerPlayer   int
	ForsakenCoverage float64
}

// Orchestrator 顺序推进一个世代。单实例不可并发使用；
// 并行跑多个世代时每个实例持有自己的 rng.Source（见 internal/sweep）。
type Orchestrator struct {
	cfg  Config
	rand *rng.Source
	log  logx.Logger

	worldSvc  *worldservice.WorldService
	combatSvc *combatservice.CombatService

	world   *worldentity.WorldEntity
	players []*playerdomain.SimPlayer
	agents  map[playerdomain.PlayerID]agent.Agent

	day        int
	nextArmyId int
	combats    []*combatdomain.CombatRecord
}

// New 校验参数并搭好一个未开跑的世代。
func New(cfg Config, log logx.Logger) (*Orchestrator, error) {
	if cfg.Days <= planningDays+endgameDays {
		return nil, ErrGenerationInvalid.With("days", cfg.Days)
	}
	if cfg.Players < 2 || cfg.WorldSize <= 0 || cfg.PlotsPerPlayer <= 0 {
		return nil, ErrGenerationInvalid.
			With("players", cfg.Players).
			With("worldSize", cfg.WorldSize).
			With("plotsPerPlayer", cfg.PlotsPerPlayer)
	}
	if min := worldservice.MinPlacementSize(); cfg.WorldSize < min {
		return nil, ErrGenerationInvalid.
			With("worldSize", cfg.WorldSize).
			With("minWorldSize", min)
	}
	if cfg.ForsakenCoverage < 0 || cfg.ForsakenCoverage > 1 {
		return nil, ErrGenerationInvalid.With("coverage", cfg.ForsakenCoverage)
	}
	if log == nil {
		log = logx.Nop()
	}
	r := rng.New(cfg.Seed)
	return &Orchestrator{
		cfg:        cfg,
		rand:       r,
		log:        log.With(zap.Int64("seed", cfg.Seed)),
		worldSvc:   worldservice.NewWorldService(r, log),
		combatSvc:  combatservice.NewCombatService(r, log),
		agents:     make(map[playerdomain.PlayerID]agent.Agent),
		nextArmyId: 1,
	}, nil
}

// PhaseOf 返回某天所处阶段。
func (o *Orchestrator) PhaseOf(day int) Phase {
	switch {
	case day <= planningDays:
		return PhasePlanning
	case day > o.cfg.Days-endgameDays:
		return PhaseEndgame
	default:
		return PhaseActive
	}
}

// Run 跑完整个世代并产出摘要。
// 任何 setup 期错误（落位失败、建号失败）都让整个世代失败，不产出半截摘要。
func (o *Orchestrator) Run() (*Summary, error) {
	if err := o.setup(); err != nil {
		return nil, err
	}

	for o.day = 1; o.day <= o.cfg.Days; o.day++ {
		phase := o.PhaseOf(o.day)

		if o.day%heartbeatPeriod == 0 {
			o.worldSvc.Heartbeat(o.world)
		}

		// 先收齐全部决策，再统一执行：agent 之间无顺序依赖
		type decided struct {
			p   *playerdomain.SimPlayer
			act agent.Action
		}
		var decisions []decided
		for _, p := range o.players {
			if p.Eliminated {
				continue
			}
			v := o.buildView(p, phase)
			decisions = append(decisions, decided{p: p, act: o.agents[p.Id].Decide(v, o.rand)})
		}

		// 非战斗动作立即生效，攻击动作进入结算队列
		var attacks []decided
		for _, d := range decisions {
			if d.act.Type == agent.ActionAttack {
				attacks = append(attacks, d)
				continue
			}
			o.applyAction(d.p, d.act)
		}
		for _, d := range attacks {
			if err := o.applyAttack(d.p, d.act); err != nil {
				// 单场战斗失败只作废该场，不污染当日其他结算
				o.log.Warn("attack aborted", zap.Int("player", int(d.p.Id)), zap.Error(err))
			}
		}

		o.upkeep()
		o.updateScores()
		o.updateEliminations()

		if o.liveCount() <= 1 {
			break
		}
	}
	if o.day > o.cfg.Days {
		o.day = o.cfg.Days
	}

	return o.summarize(), nil
}

// setup：生成世界、撒据点、落位并建号。
func (o *Orchestrator) setup() error {
	w, err := o.worldSvc.Generate(o.cfg.WorldSize)
	if err != nil {
		return err
	}
	o.world = w
	if _, err := o.worldSvc.SpawnForsaken(w, o.cfg.ForsakenCoverage); err != nil {
		return err
	}
	clusters, err := o.worldSvc.FindStartingPositions(w, o.cfg.Players, o.cfg.PlotsPerPlayer)
	if err != nil {
		return err
	}

	// 种族/职业/策略轮转铺满，技能在职业内随机：保证每个类别都有样本
	raceNames := rng.Shuffle(o.rand, races.PlayableNames())
	classNames := rng.Shuffle(o.rand, classes.Names())
	policies := rng.Shuffle(o.rand, playerdomain.AllPolicies)

	for i := 0; i < o.cfg.Players; i++ {
		race := raceNames[i%len(raceNames)]
		class := classNames[i%len(classNames)]
		c, _ := classes.Get(class)
		skill := c.Skills[o.rand.IntRange(0, len(c.Skills)-1)].Name
		policy := policies[i%len(policies)]

		p, err := playerservice.NewSimPlayer(playerdomain.PlayerID(i+1), race, class, skill, policy, 1)
		if err != nil {
			return err
		}
		o.seatPlayer(p, clusters[i])
	}
	return nil
}

// seatPlayer 落位：宣称出生簇、建首支携将军队。
func (o *Orchestrator) seatPlayer(p *playerdomain.SimPlayer, cluster []worlddomain.Position) {
	for _, pos := range cluster {
		cell := o.world.At(pos.X, pos.Y)
		cell.Owner = worlddomain.PlayerID(p.Id)
		p.OwnedCells[o.world.ToPosition(pos.X, pos.Y)] = true
	}
	home := cluster[0]
	raiders, _ := combatservice.NewStack(102, startingRaiders)
	shields, _ := combatservice.NewStack(101, startingShields)
	army := &playerdomain.Army{
		Id:            o.nextArmyId,
		Owner:         p.Id,
		Stacks:        []combatdomain.UnitStack{raiders, shields},
		CaptainAboard: true,
	}
	o.nextArmyId++
	p.Armies = append(p.Armies, army)
	o.placeArmy(p, army, home.X, home.Y)
	o.players = append(o.players, p)
	o.agents[p.Id] = agent.ForPolicy(p.Policy)
}

// SeatLateJoiner 在 planning 阶段补一个玩家到外圈无主地；窗口关闭后拒绝。
func (o *Orchestrator) SeatLateJoiner(race, class, skill string, policy playerdomain.PolicyType) (*playerdomain.SimPlayer, error) {
	if o.day > planningDays {
		return nil, ErrLateJoinClosed.With("day", o.day)
	}
	clusters, err := o.worldSvc.FindStartingPositions(o.world, 1, o.cfg.PlotsPerPlayer)
	if err != nil {
		return nil, err
	}
	joinDay := max(o.day, 1)
	p, err := playerservice.NewSimPlayer(playerdomain.PlayerID(len(o.players)+1), race, class, skill, policy, joinDay)
	if err != nil {
		return nil, err
	}
	o.seatPlayer(p, clusters[0])
	return p, nil
}

// placeArmy 挪军队并维护格子的驻军引用。
func (o *Orchestrator) placeArmy(p *playerdomain.SimPlayer, a *playerdomain.Army, x, y int) {
	if old := o.world.At(a.X, a.Y); old != nil && old.GarrisonArmyId == a.Id {
		old.GarrisonArmyId = 0
	}
	a.X, a.Y = x, y
	if cell := o.world.At(x, y); cell != nil && cell.Owner == worlddomain.PlayerID(p.Id) {
		cell.GarrisonArmyId = a.Id
	}
}

func (o *Orchestrator) liveCount() int {
	n := 0
	for _, p := range o.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

func (o *Orchestrator) playerById(id playerdomain.PlayerID) *playerdomain.SimPlayer {
	for _, p := range o.players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// upkeep：按军队粮耗扣粮；断粮的军队当日减员 2%，每个非空摞至少减 1。
func (o *Orchestrator) upkeep() {
	for _, p := range o.players {
		if p.Eliminated {
			continue
		}
		for _, a := range p.Armies {
			need := a.FoodUpkeep()
			if p.Resources.Grain >= need {
				p.Resources.Grain -= need
				continue
			}
			p.Resources.Grain = 0
			for i := range a.Stacks {
				loss := a.Stacks[i].Quantity / 50
				if loss == 0 && a.Stacks[i].Quantity > 0 {
					loss = 1
				}
				a.Stacks[i].Quantity -= loss
				if cap := a.Stacks[i].Quantity * stackUnitHp(a.Stacks[i].CfgId); a.Stacks[i].Hp > cap {
					a.Stacks[i].Hp = cap
				}
			}
		}
		o.pruneArmies(p)

		// 领地产出
		for idx := range p.OwnedCells {
			cell := &o.world.Cells()[idx]
			p.Resources = p.Resources.Add(terrainYield(cell.Terrain))
		}
	}
}

// updateScores：积分 = 资源/10 + 领地×50 + 军力/10 + 建筑×100。
func (o *Orchestrator) updateScores() {
	for _, p := range o.players {
		if p.Eliminated {
			continue
		}
		strength := 0
		for _, a := range p.Armies {
			strength += a.Strength()
		}
		p.Score = p.Resources.Total()/10 + len(p.OwnedCells)*50 + strength/10 + p.Buildings*100
	}
}

// updateEliminations：淘汰标记单向置位，绝不翻回。
func (o *Orchestrator) updateEliminations() {
	for _, p := range o.players {
		if !p.Eliminated && p.ShouldEliminate() {
			p.Eliminated = true
			o.log.Info("player eliminated",
				zap.Int("player", int(p.Id)), zap.Int("day", o.day))
		}
	}
}

// pruneArmies 摘掉打光的军队并同步格子驻军引用。
func (o *Orchestrator) pruneArmies(p *playerdomain.SimPlayer) {
	for i := len(p.Armies) - 1; i >= 0; i-- {
		a := p.Armies[i]
		if a.Quantity() > 0 {
			continue
		}
		if cell := o.world.At(a.X, a.Y); cell != nil && cell.GarrisonArmyId == a.Id {
			cell.GarrisonArmyId = 0
		}
		p.Armies = append(p.Armies[:i], p.Armies[i+1:]...)
	}
}

func (o *Orchestrator) summarize() *Summary {
	s := &Summary{
		Seed:         o.cfg.Seed,
		FinalDay:     o.day,
		Combats:      o.combats,
		D20Rolls:     o.rand.D20Rolls(),
		D20Histogram: o.rand.D20Histogram(),
	}
	var winner *playerdomain.SimPlayer
	for _, p := range o.players {
		s.Players = append(s.Players, PlayerEndState{
			Id:          p.Id,
			Race:        p.Race,
			Class:       p.Captain.Class,
			Skill:       p.Captain.Skill,
			Policy:      p.Policy,
			Score:       p.Score,
			Territories: len(p.OwnedCells),
			Eliminated:  p.Eliminated,
			CaptainDead: p.Captain.Dead,
			JoinedDay:   p.JoinedDay,
		})
		if p.Eliminated {
			continue
		}
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	if winner != nil {
		s.WinnerId = winner.Id
	}
	o.log.Info("generation finished",
		zap.Int("finalDay", s.FinalDay),
		zap.Int("combats", len(s.Combats)),
		zap.Int("winner", int(s.WinnerId)))
	return s
}
