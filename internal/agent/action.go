package agent

// ActionType 是 agent 每日可产出的动作类别。
type ActionType string

const (
	ActionBuild   ActionType = "build"
	ActionTrain   ActionType = "train"
	ActionAttack  ActionType = "attack"
	ActionMove    ActionType = "move"
	ActionDefend  ActionType = "defend"
	ActionExpand  ActionType = "expand"
	ActionUpgrade ActionType = "upgrade"
	ActionWait    ActionType = "wait"
)

// Action 是 agent 的单日产出：一个带优先级的动作与未类型化载荷。
// agent 绝不直接改状态——编排器用 mapstructure 把 Payload 解码成
// 对应的命令结构再执行。
type Action struct {
	Type     ActionType
	Priority float64
	Payload  map[string]any
}

// 各动作的载荷结构（编排器侧解码目标）。

type BuildPayload struct {
	Kind string `mapstructure:"kind"`
	X    int    `mapstructure:"x"`
	Y    int    `mapstructure:"y"`
}

type TrainPayload struct {
	CfgId    int `mapstructure:"cfgId"`
	Quantity int `mapstructure:"quantity"`
}

type AttackPayload struct {
	ArmyId int `mapstructure:"armyId"`
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
}

type MovePayload struct {
	ArmyId int `mapstructure:"armyId"`
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
}

type ExpandPayload struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
}
