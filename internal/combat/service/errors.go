package service

import "Ashfall/modules/kit/errx"

const (
	// CodeRosterInvalid 兵团数据畸形（负数量、未知兵种、血量越界）。
	// 属于配置错误，fail fast，绝不静默按 0 结算。
	CodeRosterInvalid errx.Code = "ROSTER_INVALID"
	// CodeCombatInvalid 战斗输入非法（未知种族等）。
	CodeCombatInvalid errx.Code = "COMBAT_INVALID"
)

var (
	ErrRosterInvalid = errx.New(CodeRosterInvalid, "兵团数据非法")
	ErrCombatInvalid = errx.New(CodeCombatInvalid, "战斗输入非法")
)
