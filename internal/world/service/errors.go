package service

import "Ashfall/modules/kit/errx"

const (
	// CodePlacementFailed 出生点集群凑不齐，调用方必须整体放弃该玩家的落位。
	CodePlacementFailed errx.Code = "PLACEMENT_FAILED"
	// CodeWorldInvalid 地图尺寸/覆盖率等生成参数非法。
	CodeWorldInvalid errx.Code = "WORLD_INVALID"
)

var (
	ErrPlacementFailed = errx.New(CodePlacementFailed, "出生点集群不足")
	ErrWorldInvalid    = errx.New(CodeWorldInvalid, "世界生成参数非法")
)
