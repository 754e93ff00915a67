// Package actors 放扫描运行时的 actor 实现。
package actors

import (
	"fmt"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"Ashfall/internal/generation"
	"Ashfall/internal/shared/actor/messages"
	"Ashfall/modules/kit/logx"
)

// RunActor 串行跑分给自己的世代。每个 RunGeneration 自带派生种子，
// actor 本身无状态，可随意横向扩。
type RunActor struct {
	log logx.Logger
}

func NewRunActor(log logx.Logger) *RunActor {
	if log == nil {
		log = logx.Nop()
	}
	return &RunActor{log: log}
}

func (a *RunActor) Receive(ctx actor.Context) {
	req, ok := ctx.Message().(*messages.RunGeneration)
	if !ok {
		return
	}

	resp := &messages.RunResult{SweepBaseMessage: req.SweepBaseMessage}
	defer func() {
		// 单个世代 panic 只报废该世代，不拖垮整个扫描批次
		if r := recover(); r != nil {
			resp.Summary = nil
			resp.Err = fmt.Sprintf("generation panicked: %v", r)
			a.log.Error("generation run panicked",
				zap.Int("index", req.Index), zap.Any("panic", r))
			ctx.Respond(resp)
		}
	}()

	o, err := generation.New(req.Cfg, a.log)
	if err != nil {
		resp.Err = err.Error()
		ctx.Respond(resp)
		return
	}
	summary, err := o.Run()
	if err != nil {
		resp.Err = err.Error()
		ctx.Respond(resp)
		return
	}
	resp.Summary = summary
	ctx.Respond(resp)
}
