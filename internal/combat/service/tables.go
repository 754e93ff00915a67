package service

// 骰点 → 乘数映射表。
// 两张表都以 1.0 为中心分五档，两端各留极端尾巴；
// 攻防两表刻意不对称：攻方尾巴更凶（0.5/1.5），守方收敛（0.5/1.4）。
// 改这两张表等于改全局平衡，动之前先跑 cmd/balance。

// attackMult 攻击乘数：1→0.50，2–5→0.80，6–9→0.90，10–12→1.00，13–16→1.10，17–19→1.25，20→1.50。
func attackMult(roll int) float64 {
	switch {
	case roll <= 1:
		return 0.50
	case roll <= 5:
		return 0.80
	case roll <= 9:
		return 0.90
	case roll <= 12:
		return 1.00
	case roll <= 16:
		return 1.10
	case roll <= 19:
		return 1.25
	default:
		return 1.50
	}
}

// defenseMult 防御乘数：1→0.50，2–5→0.85，6–9→0.95，10–12→1.00，13–16→1.10，17–19→1.20，20→1.40。
func defenseMult(roll int) float64 {
	switch {
	case roll <= 1:
		return 0.50
	case roll <= 5:
		return 0.85
	case roll <= 9:
		return 0.95
	case roll <= 12:
		return 1.00
	case roll <= 16:
		return 1.10
	case roll <= 19:
		return 1.20
	default:
		return 1.40
	}
}

const (
	// MaxRounds 单场战斗回合上限。
	MaxRounds = 3

	// prisonerEffectiveness 俘虏摞的攻防出力折扣。
	prisonerEffectiveness = 0.60

	// wallDefenseMult 守方有城墙时的防御乘数。
	wallDefenseMult = 1.30

	// lootShare/captureShare 只有攻方干净取胜才结算：
	// 抽走守方资源的 20%，从守方伤亡里俘获 15%，再乘种族系数。
	lootShare    = 0.20
	captureShare = 0.15

	// 亡团免死判定：d20 + 修正（封顶 +6）≥ 10 则重伤存活，否则永久阵亡。
	deathSaveThreshold = 10
	maxDeathSaveBonus  = 6

	// WoundedRecoveryDays 重伤主将的恢复窗口（模拟日）。
	WoundedRecoveryDays = 5

	// hpRefloorShare 吃伤后残血摞的血量下限占名义血量的比例。
	// 平滑启发式，行为已被测试钉死，不要“修正”。
	hpRefloorShare = 0.10
)
