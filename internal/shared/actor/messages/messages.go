// Package messages 定义扫描 actor 之间的消息协定。
// 消息是纯数据：发送侧构造后不再改动，应答里的摘要也视为不可变。
package messages

import "Ashfall/internal/generation"

// SweepMessage 是扫描消息的标记接口。
type SweepMessage interface {
	RunIndex() int
}

type SweepBaseMessage struct {
	Index int // 本次扫描内的世代序号，从 0 起
}

func (m SweepBaseMessage) RunIndex() int {
	return m.Index
}

// RunGeneration 请求跑一个完整世代。Cfg.Seed 已由根派生好，
// worker 不再做任何种子运算。
type RunGeneration struct {
	SweepBaseMessage
	Cfg generation.Config
}

// RunResult 是单个世代的应答：成功带摘要，失败带错误串
// （错误不跨 actor 传原值，折叠侧只需要可记录的描述）。
type RunResult struct {
	SweepBaseMessage
	Summary *generation.Summary
	Err     string
}
