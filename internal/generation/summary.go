package generation

import (
	combatdomain "Ashfall/internal/combat/entity/domain"
	playerdomain "Ashfall/internal/player/entity/domain"
)

// Phase 是世代内的阶段。
type Phase string

const (
	PhasePlanning Phase = "planning" // 1~5 天，禁战
	PhaseActive   Phase = "active"
	PhaseEndgame  Phase = "endgame" // 最后 5 天
)

// PlayerEndState 是世代终局时一个玩家的快照。
type PlayerEndState struct {
	Id          playerdomain.PlayerID   `json:"id"`
	Race        string                  `json:"race"`
	Class       string                  `json:"class"`
	Skill       string                  `json:"skill"`
	Policy      playerdomain.PolicyType `json:"policy"`
	Score       int                     `json:"score"`
	Territories int                     `json:"territories"`
	Eliminated  bool                    `json:"eliminated"`
	CaptainDead bool                    `json:"captainDead"`
	JoinedDay   int                     `json:"joinedDay"`
}

// Summary 是一个世代的全部产出：分析器的输入单元，产出后不可再改。
// D20Histogram 是本世代全部掷骰的面分布（含世界生成外的战斗骰），
// 分析器用它核对暴击频率是否在健康区间。
type Summary struct {
	Seed         int64                        `json:"seed"`
	FinalDay     int                          `json:"finalDay"`
	Players      []PlayerEndState             `json:"players"`
	Combats      []*combatdomain.CombatRecord `json:"combats"`
	WinnerId     playerdomain.PlayerID        `json:"winnerId"` // 0 表示无胜者
	D20Rolls     int                          `json:"d20Rolls"`
	D20Histogram [20]int                      `json:"d20Histogram"`
}
