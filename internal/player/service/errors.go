package service

import "Ashfall/modules/kit/errx"

const (
	// CodeSkillClassMismatch 技能不属于所选职业（建号期校验，绝不静默纠偏）。
	CodeSkillClassMismatch errx.Code = "SKILL_CLASS_MISMATCH"
	// CodePlayerInvalid 建号参数非法（未知种族/职业/策略）。
	CodePlayerInvalid errx.Code = "PLAYER_INVALID"
)

var (
	ErrSkillClassMismatch = errx.New(CodeSkillClassMismatch, "技能与职业不匹配")
	ErrPlayerInvalid      = errx.New(CodePlayerInvalid, "建号参数非法")
)
