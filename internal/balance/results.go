package balance

import (
	"fmt"
	"sort"
)

// Severity 是失衡问题的严重级别。
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// 失衡判定参数：相对均匀期望 1/N 的偏差阈值，以及纳入判定的最小样本量。
const (
	minPlaysForIssue = 50

	deviationMedium   = 0.25
	deviationHigh     = 0.50
	deviationCritical = 0.75
)

// 战斗口径的健康区间。
const (
	attackerWinRateMin = 0.35
	attackerWinRateMax = 0.60
	critFrequencyMin   = 0.03
	critFrequencyMax   = 0.07
)

// EntityResult 是单个条目（种族/职业/技能）的最终口径。
type EntityResult struct {
	Name     string  `json:"name"`
	Plays    int     `json:"plays"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"winRate"`
	AvgScore float64 `json:"avgScore"`
}

// CategoryResult 是一个维度（race/class/skill）的汇总。
type CategoryResult struct {
	Dimension    string         `json:"dimension"`
	Entities     []EntityResult `json:"entities"`
	BalanceScore float64        `json:"balanceScore"` // 0~100，100 = 完全均衡
}

// Issue 是一条失衡问题。
type Issue struct {
	Severity  Severity `json:"severity"`
	Dimension string   `json:"dimension"`
	Entity    string   `json:"entity,omitempty"`
	Message   string   `json:"message"`
	Deviation float64  `json:"deviation,omitempty"` // 相对均匀期望的偏差比例
}

// CombatStats 是战斗层面的全局口径。
type CombatStats struct {
	Combats         int     `json:"combats"`
	AttackerWins    int     `json:"attackerWins"`
	Draws           int     `json:"draws"`
	AttackerWinRate float64 `json:"attackerWinRate"`
	D20Rolls        int     `json:"d20Rolls"`
	CritFrequency   float64 `json:"critFrequency"` // 天然 20 的占比
}

// SimulationResults 是整次扫描的最终产物，可直接 JSON 序列化归档。
type SimulationResults struct {
	Generations  int            `json:"generations"`
	Failures     int            `json:"failures"`
	Races        CategoryResult `json:"races"`
	Classes      CategoryResult `json:"classes"`
	Skills       CategoryResult `json:"skills"`
	Combat       CombatStats    `json:"combat"`
	OverallScore float64        `json:"overallScore"` // 三维度平衡分的均值
	Issues       []Issue        `json:"issues"`
	D20Histogram [20]int        `json:"d20Histogram"`
}

// GenerateResults 从累计量产出最终报告。
// 零样本维度给零值口径，绝不除零。
func (a *Accumulator) GenerateResults() *SimulationResults {
	r := &SimulationResults{
		Generations:  a.generations,
		Failures:     a.failures,
		Races:        summarizeCategory("race", a.races),
		Classes:      summarizeCategory("class", a.classes),
		Skills:       summarizeCategory("skill", a.skills),
		D20Histogram: a.d20Hist,
	}
	r.OverallScore = (r.Races.BalanceScore + r.Classes.BalanceScore + r.Skills.BalanceScore) / 3

	r.Combat = CombatStats{
		Combats:      a.combats,
		AttackerWins: a.attackerWins,
		Draws:        a.draws,
		D20Rolls:     a.d20Rolls,
	}
	if a.combats > 0 {
		r.Combat.AttackerWinRate = float64(a.attackerWins) / float64(a.combats)
	}
	if a.d20Rolls > 0 {
		r.Combat.CritFrequency = float64(a.d20Hist[19]) / float64(a.d20Rolls)
	}

	r.Issues = append(r.Issues, categoryIssues(r.Races)...)
	r.Issues = append(r.Issues, categoryIssues(r.Classes)...)
	r.Issues = append(r.Issues, categoryIssues(r.Skills)...)
	r.Issues = append(r.Issues, combatIssues(r.Combat)...)
	return r
}

// summarizeCategory 把一个维度的累计量折成最终口径，条目按名字排序保证输出稳定。
func summarizeCategory(dimension string, m map[string]*categoryStat) CategoryResult {
	out := CategoryResult{Dimension: dimension}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	totalWins := 0
	for _, name := range names {
		st := m[name]
		e := EntityResult{Name: name, Plays: st.plays, Wins: st.wins}
		if st.plays > 0 {
			e.WinRate = float64(st.wins) / float64(st.plays)
			e.AvgScore = float64(st.totalScore) / float64(st.plays)
		}
		totalWins += st.wins
		out.Entities = append(out.Entities, e)
	}

	out.BalanceScore = balanceScore(out.Entities, totalWins)
	return out
}

// balanceScore = 100×(1−var/worstVar)。
// var 是各条目胜场份额相对均匀份额 1/N 的方差；worstVar 是一家通吃时的方差。
// 无样本或单条目时视为完全均衡。
func balanceScore(entities []EntityResult, totalWins int) float64 {
	n := len(entities)
	if n <= 1 || totalWins == 0 {
		return 100
	}
	mean := 1.0 / float64(n)

	variance := 0.0
	for _, e := range entities {
		share := float64(e.Wins) / float64(totalWins)
		variance += (share - mean) * (share - mean)
	}
	variance /= float64(n)

	// 一家通吃：share = (1,0,…,0)
	worst := ((1-mean)*(1-mean) + float64(n-1)*mean*mean) / float64(n)
	if worst <= 0 {
		return 100
	}
	score := 100 * (1 - variance/worst)
	if score < 0 {
		return 0
	}
	return score
}

// categoryIssues 按胜场份额对均匀期望的偏差分级报问题。
// 样本量不足 minPlaysForIssue 的条目不纳入，避免小样本噪声告警。
func categoryIssues(c CategoryResult) []Issue {
	n := len(c.Entities)
	if n <= 1 {
		return nil
	}
	totalWins := 0
	for _, e := range c.Entities {
		totalWins += e.Wins
	}
	if totalWins == 0 {
		return nil
	}
	expected := 1.0 / float64(n)

	var out []Issue
	for _, e := range c.Entities {
		if e.Plays < minPlaysForIssue {
			continue
		}
		share := float64(e.Wins) / float64(totalWins)
		dev := (share - expected) / expected
		abs := dev
		if abs < 0 {
			abs = -abs
		}

		var sev Severity
		switch {
		case abs > deviationCritical:
			sev = SeverityCritical
		case abs > deviationHigh:
			sev = SeverityHigh
		case abs > deviationMedium:
			sev = SeverityMedium
		default:
			continue
		}

		direction := "强势"
		if dev < 0 {
			direction = "弱势"
		}
		out = append(out, Issue{
			Severity:  sev,
			Dimension: c.Dimension,
			Entity:    e.Name,
			Deviation: dev,
			Message: fmt.Sprintf("%s %s %s：胜场份额 %.1f%%，均匀期望 %.1f%%",
				c.Dimension, e.Name, direction, share*100, expected*100),
		})
	}
	return out
}

// combatIssues 检查战斗层面的全局健康区间。
func combatIssues(c CombatStats) []Issue {
	var out []Issue
	if c.Combats >= minPlaysForIssue {
		if c.AttackerWinRate < attackerWinRateMin || c.AttackerWinRate > attackerWinRateMax {
			out = append(out, Issue{
				Severity:  SeverityHigh,
				Dimension: "combat",
				Message: fmt.Sprintf("攻方胜率 %.1f%% 超出健康区间 [%.0f%%, %.0f%%]",
					c.AttackerWinRate*100, attackerWinRateMin*100, attackerWinRateMax*100),
			})
		}
	}
	if c.D20Rolls >= minPlaysForIssue {
		if c.CritFrequency < critFrequencyMin || c.CritFrequency > critFrequencyMax {
			out = append(out, Issue{
				Severity:  SeverityMedium,
				Dimension: "combat",
				Message: fmt.Sprintf("暴击频率 %.2f%% 超出健康区间 [%.0f%%, %.0f%%]",
					c.CritFrequency*100, critFrequencyMin*100, critFrequencyMax*100),
			})
		}
	}
	return out
}
