// balance 跑一次完整的平衡性扫描并输出报告。
//
// 退出码：0 通过门禁，1 门禁不通过，2 配置/运行错误。
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"Ashfall/internal/balance"
	"Ashfall/internal/generation"
	"Ashfall/internal/shared/gameconfig"
	"Ashfall/internal/shared/logs"
	"Ashfall/internal/shared/simconfig"
	"Ashfall/internal/sweep"
	"Ashfall/modules/kit/logx"
)

const (
	exitPass = 0
	exitGate = 1
	exitErr  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		generations = flag.Int("generations", 0, "世代数（0 用配置文件值）")
		players     = flag.Int("players", 0, "每世代玩家数")
		days        = flag.Int("days", 0, "每世代天数")
		size        = flag.Int("size", 0, "地图边长")
		seed        = flag.Int64("seed", 0, "基准种子（0 用当前时间）")
		parallel    = flag.Int("parallel", 0, "并行 worker 数")
		threshold   = flag.Float64("threshold", 0, "平衡分门禁（0 用配置文件值）")
		strict      = flag.Bool("strict", false, "严格模式：更高门禁且零 critical")
		verbose     = flag.Bool("verbose", false, "输出 JSON 结果")
		configPath  = flag.String("config", "", "配置文件路径（默认向上查找 configs/conf.yml）")
	)
	flag.Parse()

	if *configPath != "" {
		simconfig.LoadFrom(*configPath)
	} else {
		simconfig.Load()
	}
	if err := logs.Init("balance", simconfig.Conf.Log); err != nil {
		fmt.Fprintln(os.Stderr, "初始化日志失败:", err)
		return exitErr
	}
	gameconfig.Load()

	simCfg := simconfig.Conf.Sim
	if *generations > 0 {
		simCfg.Generations = *generations
	}
	if *players > 0 {
		simCfg.Players = *players
	}
	if *days > 0 {
		simCfg.Days = *days
	}
	if *size > 0 {
		simCfg.WorldSize = *size
	}
	if *parallel > 0 {
		simCfg.Parallel = *parallel
	}

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano() & 0xFFFFFFFF
	}

	gate := simconfig.Conf.Balance.Threshold
	if *strict {
		gate = simconfig.Conf.Balance.StrictThreshold
	}
	if *threshold > 0 {
		gate = *threshold
	}

	base := generation.Config{
		Seed:             baseSeed,
		Days:             simCfg.Days,
		Players:          simCfg.Players,
		WorldSize:        simCfg.WorldSize,
		PlotsPerPlayer:   simCfg.PlotsPerPlayer,
		ForsakenCoverage: simCfg.ForsakenCoverage,
	}

	logs.Info("balance sweep start",
		zap.Int64("seed", baseSeed),
		zap.Int("generations", simCfg.Generations),
		zap.Int("parallel", simCfg.Parallel),
		zap.Float64("gate", gate),
		zap.Bool("strict", *strict))

	runtime, err := sweep.NewRuntime(simCfg.Parallel, 0, logx.NewZapLogger(logs.Logger()))
	if err != nil {
		logs.Error("构造扫描运行时失败", zap.Error(err))
		return exitErr
	}
	defer runtime.Shutdown()

	acc, err := runtime.Sweep(base, simCfg.Generations)
	if err != nil {
		logs.Error("扫描失败", zap.Error(err))
		return exitErr
	}

	results := acc.GenerateResults()
	if err := balance.WriteReport(os.Stdout, results); err != nil {
		logs.Error("渲染报告失败", zap.Error(err))
		return exitErr
	}
	if *verbose {
		b, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			logs.Error("序列化结果失败", zap.Error(err))
			return exitErr
		}
		fmt.Println(string(b))
	}

	if results.Generations == 0 {
		logs.Error("没有任何成功的世代", zap.Int("failures", results.Failures))
		return exitErr
	}

	if results.OverallScore < gate {
		fmt.Printf("\n门禁不通过：总平衡分 %.1f < %.1f\n", results.OverallScore, gate)
		return exitGate
	}
	if *strict {
		for _, is := range results.Issues {
			if is.Severity == balance.SeverityCritical {
				fmt.Printf("\n门禁不通过：严格模式下存在 critical 问题（%s）\n", is.Message)
				return exitGate
			}
		}
	}
	fmt.Printf("\n门禁通过：总平衡分 %.1f ≥ %.1f\n", results.OverallScore, gate)
	return exitPass
}
