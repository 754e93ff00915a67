// Package sweep 用 actor 池并行跑世代扫描，结果由根协程串行折叠，
// Accumulator 始终单写。
package sweep

import (
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"Ashfall/internal/balance"
	"Ashfall/internal/generation"
	"Ashfall/internal/shared/actor/messages"
	"Ashfall/internal/sweep/actors"
	"Ashfall/modules/kit/errx"
	"Ashfall/modules/kit/logx"
)

const (
	// CodeSweepInvalid 扫描参数非法。
	CodeSweepInvalid errx.Code = "SWEEP_INVALID"

	defaultRunTimeout = 5 * time.Minute
)

var ErrSweepInvalid = errx.New(CodeSweepInvalid, "扫描参数非法")

// Runtime 持有 actor 系统与 worker 池。用完必须 Shutdown。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	workers []*protoactor.PID
	timeout time.Duration
	log     logx.Logger
}

// NewRuntime 起一个 parallel 大小的 worker 池。
func NewRuntime(parallel int, runTimeout time.Duration, log logx.Logger) (*Runtime, error) {
	if parallel <= 0 {
		return nil, ErrSweepInvalid.With("parallel", parallel)
	}
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}
	if log == nil {
		log = logx.Nop()
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	workers := make([]*protoactor.PID, 0, parallel)
	for i := 0; i < parallel; i++ {
		props := protoactor.PropsFromProducer(func() protoactor.Actor {
			return actors.NewRunActor(log)
		})
		workers = append(workers, root.Spawn(props))
	}

	return &Runtime{
		system:  system,
		root:    root,
		workers: workers,
		timeout: runTimeout,
		log:     log,
	}, nil
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	for _, pid := range r.workers {
		r.root.Stop(pid)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Sweep 跑 generations 个世代并折叠进一个 Accumulator。
// 每个世代用 base.Seed+index 的派生种子；失败的世代记一笔失败后继续，
// 绝不让单个坏种子废掉整个批次。
func (r *Runtime) Sweep(base generation.Config, generations int) (*balance.Accumulator, error) {
	if generations <= 0 {
		return nil, ErrSweepInvalid.With("generations", generations)
	}

	// 先全部派发，再按序收割：worker 池内自然并行
	futures := make([]*protoactor.Future, 0, generations)
	for i := 0; i < generations; i++ {
		cfg := base
		cfg.Seed = base.Seed + int64(i)
		msg := &messages.RunGeneration{
			SweepBaseMessage: messages.SweepBaseMessage{Index: i},
			Cfg:              cfg,
		}
		worker := r.workers[i%len(r.workers)]
		futures = append(futures, r.root.RequestFuture(worker, msg, r.timeout))
	}

	acc := balance.NewAccumulator()
	for i, f := range futures {
		res, err := f.Result()
		if err != nil {
			acc.AddFailure()
			r.log.Warn("generation run timed out", zap.Int("index", i), zap.Error(err))
			continue
		}
		rr, ok := res.(*messages.RunResult)
		if !ok || rr.Err != "" || rr.Summary == nil {
			acc.AddFailure()
			if ok {
				r.log.Warn("generation run failed",
					zap.Int("index", rr.Index), zap.String("err", rr.Err))
			}
			continue
		}
		acc.AddGenerationResult(rr.Summary)
	}
	return acc, nil
}
