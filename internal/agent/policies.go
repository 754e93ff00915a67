package agent

import playerdomain "Ashfall/internal/player/entity/domain"

// policyWeights 是五种策略唯一的差异点：动作类别的打分权重。
// random 不走权重（均匀抽），表里留 1.0 只为枚举完整。
var policyWeights = map[playerdomain.PolicyType]map[ActionType]float64{
	playerdomain.PolicyRandom: uniform(),

	playerdomain.PolicyAggressive: {
		ActionAttack: 2.0, ActionTrain: 1.3, ActionMove: 1.2,
		ActionExpand: 0.9, ActionBuild: 0.6, ActionUpgrade: 0.5,
		ActionDefend: 0.4, ActionWait: 0.1,
	},

	playerdomain.PolicyDefensive: {
		ActionDefend: 1.8, ActionBuild: 1.6, ActionTrain: 1.2,
		ActionUpgrade: 1.0, ActionExpand: 0.7, ActionMove: 0.6,
		ActionAttack: 0.5, ActionWait: 0.3,
	},

	playerdomain.PolicyEconomic: {
		ActionBuild: 1.7, ActionUpgrade: 1.5, ActionExpand: 1.4,
		ActionTrain: 0.8, ActionDefend: 0.7, ActionMove: 0.5,
		ActionAttack: 0.4, ActionWait: 0.4,
	},

	playerdomain.PolicyBalanced: uniform(),
}

func uniform() map[ActionType]float64 {
	return map[ActionType]float64{
		ActionBuild: 1, ActionTrain: 1, ActionAttack: 1, ActionMove: 1,
		ActionDefend: 1, ActionExpand: 1, ActionUpgrade: 1, ActionWait: 1,
	}
}
