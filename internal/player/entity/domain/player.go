package domain

import (
	gamedomain "Ashfall/internal/game/domain"
)

type PlayerID int

// PolicyType 是 agent 决策策略的枚举。
type PolicyType string

const (
	PolicyRandom     PolicyType = "random"
	PolicyAggressive PolicyType = "aggressive"
	PolicyDefensive  PolicyType = "defensive"
	PolicyEconomic   PolicyType = "economic"
	PolicyBalanced   PolicyType = "balanced"
)

// AllPolicies 按固定顺序列出全部策略。
var AllPolicies = []PolicyType{
	PolicyRandom, PolicyAggressive, PolicyDefensive, PolicyEconomic, PolicyBalanced,
}

// SimPlayer 是一个模拟玩家在单个世代内的全部状态。
type SimPlayer struct {
	Id      PlayerID   `json:"id"`
	Race    string     `json:"race"`
	Captain Captain    `json:"captain"`
	Policy  PolicyType `json:"policy"`

	Resources  gamedomain.Resources `json:"resources"`
	OwnedCells map[int]bool         `json:"-"` // 扁平格下标集合
	Armies     []*Army              `json:"armies"`
	Buildings  int                  `json:"buildings"` // 已建成建筑计数（含墙）

	Score      int  `json:"score"`
	Eliminated bool `json:"eliminated"`
	JoinedDay  int  `json:"joinedDay"` // 世代开局为 1，补位玩家为入场日
}

// ShouldEliminate 是显式的淘汰谓词：主将已死，且名下既无领土也无军队。
// 集中成一个有名字的谓词，淘汰判定只走这里，单独测试。
func (p *SimPlayer) ShouldEliminate() bool {
	return p.Captain.Dead && len(p.OwnedCells) == 0 && len(p.Armies) == 0
}

// CaptainArmy 返回主将随军的那支军队；不在任何军队时返回 nil。
func (p *SimPlayer) CaptainArmy() *Army {
	for _, a := range p.Armies {
		if a.CaptainAboard {
			return a
		}
	}
	return nil
}

// ArmyById 按 id 查军队；不存在返回 nil。
func (p *SimPlayer) ArmyById(id int) *Army {
	for _, a := range p.Armies {
		if a.Id == id {
			return a
		}
	}
	return nil
}

// RemoveArmy 按 id 摘除军队（打光或并编后调用）。
func (p *SimPlayer) RemoveArmy(id int) {
	for i, a := range p.Armies {
		if a.Id == id {
			p.Armies = append(p.Armies[:i], p.Armies[i+1:]...)
			return
		}
	}
}
