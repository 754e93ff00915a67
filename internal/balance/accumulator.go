// Package balance 把多个世代的摘要聚合成平衡性报告：
// 分种族/职业/技能的胜率与均分、平衡分、失衡问题清单。
package balance

import (
	combatdomain "Ashfall/internal/combat/entity/domain"
	"Ashfall/internal/generation"
)

// categoryStat 是单个条目（某个种族/职业/技能）的累计量。
type categoryStat struct {
	plays      int
	wins       int
	totalScore int
}

// Accumulator 聚合世代摘要。单写者：并行扫描时由根协程串行折叠，
// 不做内部加锁（见 internal/sweep）。
type Accumulator struct {
	generations int
	failures    int

	races   map[string]*categoryStat
	classes map[string]*categoryStat
	skills  map[string]*categoryStat

	combats      int
	attackerWins int
	draws        int

	d20Rolls int
	d20Hist  [20]int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		races:   make(map[string]*categoryStat),
		classes: make(map[string]*categoryStat),
		skills:  make(map[string]*categoryStat),
	}
}

// Generations 返回已折叠的世代数。
func (a *Accumulator) Generations() int {
	return a.generations
}

// AddFailure 记一次失败的世代（跑挂的世代不进统计，但总量要对得上）。
func (a *Accumulator) AddFailure() {
	a.failures++
}

// AddGenerationResult 折叠一个世代摘要。
func (a *Accumulator) AddGenerationResult(s *generation.Summary) {
	if s == nil {
		return
	}
	a.generations++

	for _, p := range s.Players {
		won := p.Id == s.WinnerId && s.WinnerId != 0
		bump(a.races, p.Race, p.Score, won)
		bump(a.classes, p.Class, p.Score, won)
		bump(a.skills, p.Skill, p.Score, won)
	}

	for _, c := range s.Combats {
		a.combats++
		switch c.Result {
		case combatdomain.ResultAttackerVictory:
			a.attackerWins++
		case combatdomain.ResultDraw:
			a.draws++
		}
	}

	a.d20Rolls += s.D20Rolls
	for i, n := range s.D20Histogram {
		a.d20Hist[i] += n
	}
}

func bump(m map[string]*categoryStat, key string, score int, won bool) {
	if key == "" {
		return
	}
	st := m[key]
	if st == nil {
		st = &categoryStat{}
		m[key] = st
	}
	st.plays++
	st.totalScore += score
	if won {
		st.wins++
	}
}
