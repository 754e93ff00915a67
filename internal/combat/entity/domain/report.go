package domain

import gamedomain "Ashfall/internal/game/domain"

// Result 是一场战斗的终局标签。
type Result string

const (
	ResultAttackerVictory Result = "attacker"
	ResultDefenderVictory Result = "defender"
	ResultDraw            Result = "draw"
)

// CaptainOutcome 是主将在亡团判定后的状态。
type CaptainOutcome string

const (
	CaptainUnharmed CaptainOutcome = "unharmed" // 军团未被打光，无需判定
	CaptainWounded  CaptainOutcome = "wounded"
	CaptainDead     CaptainOutcome = "dead"
)

// DeathSave 记录一次亡团免死判定的完整过程。
// FinalRoll = Roll + Bonus（Bonus 已按上限封顶），FinalRoll ≥ 阈值则重伤存活。
type DeathSave struct {
	Roll      int            `json:"roll"`
	Bonus     int            `json:"bonus"`
	FinalRoll int            `json:"finalRoll"`
	Outcome   CaptainOutcome `json:"outcome"`
}

// RoundRecord 是一个回合的结算快照。
type RoundRecord struct {
	Round int `json:"round"`

	AttackerRoll int `json:"attackerRoll"`
	DefenderRoll int `json:"defenderRoll"`

	AttackerDamage int `json:"attackerDamage"` // 攻方打出的伤害
	DefenderDamage int `json:"defenderDamage"`

	AttackerCasualties int `json:"attackerCasualties"` // 攻方本回合损失
	DefenderCasualties int `json:"defenderCasualties"`

	AttackerReformed int `json:"attackerReformed,omitempty"` // Graveborn 重组回的数量
	DefenderReformed int `json:"defenderReformed,omitempty"`
}

// CombatRecord 是一场战斗的不可变记录：resolver 返回后不得再修改。
// DefenderId 为 0 表示打的是废弃者据点。
type CombatRecord struct {
	AttackerId   int    `json:"attackerId"`
	DefenderId   int    `json:"defenderId,omitempty"`
	AttackerRace string `json:"attackerRace"`
	DefenderRace string `json:"defenderRace"`

	InitialAttacker []UnitStack `json:"initialAttacker"`
	InitialDefender []UnitStack `json:"initialDefender"`
	FinalAttacker   []UnitStack `json:"finalAttacker"`
	FinalDefender   []UnitStack `json:"finalDefender"`

	Rounds []RoundRecord `json:"rounds"`

	AttackerCasualties int `json:"attackerCasualties"`
	DefenderCasualties int `json:"defenderCasualties"`

	AttackerCaptain *DeathSave `json:"attackerCaptain,omitempty"`
	DefenderCaptain *DeathSave `json:"defenderCaptain,omitempty"`

	Result    Result               `json:"result"`
	Loot      gamedomain.Resources `json:"loot"`
	Prisoners []UnitStack          `json:"prisoners,omitempty"`
}
