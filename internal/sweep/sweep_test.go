package sweep

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"Ashfall/internal/generation"
	"Ashfall/internal/shared/gameconfig"
	"Ashfall/modules/kit/logx"
)

func TestMain(m *testing.M) {
	gameconfig.Load()
	os.Exit(m.Run())
}

func baseConfig() generation.Config {
	return generation.Config{
		Seed:             100,
		Days:             15,
		Players:          4,
		WorldSize:        100,
		PlotsPerPlayer:   5,
		ForsakenCoverage: 0.10,
	}
}

func TestNewRuntime_非法并行度报SWEEP_INVALID(t *testing.T) {
	if _, err := NewRuntime(0, time.Minute, nil); !errors.Is(err, ErrSweepInvalid) {
		t.Fatalf("期望 SWEEP_INVALID，got=%v", err)
	}
}

func TestSweep_世代数全部折叠(t *testing.T) {
	r, err := NewRuntime(2, time.Minute, logx.Nop())
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	defer r.Shutdown()

	acc, err := r.Sweep(baseConfig(), 4)
	if err != nil {
		t.Fatalf("扫描失败：%v", err)
	}
	if acc.Generations() != 4 {
		t.Fatalf("期望折叠 4 个世代，got=%d", acc.Generations())
	}
}

func TestSweep_同基准种子两次扫描结果一致(t *testing.T) {
	run := func() []byte {
		r, err := NewRuntime(3, time.Minute, logx.Nop())
		if err != nil {
			t.Fatalf("构造失败：%v", err)
		}
		defer r.Shutdown()
		acc, err := r.Sweep(baseConfig(), 6)
		if err != nil {
			t.Fatalf("扫描失败：%v", err)
		}
		b, _ := json.Marshal(acc.GenerateResults())
		return b
	}
	b1, b2 := run(), run()
	if string(b1) != string(b2) {
		t.Fatalf("并行扫描结果不可复现：\n%s\n---\n%s", b1, b2)
	}
}

func TestSweep_坏配置的世代只记失败不拖垮批次(t *testing.T) {
	r, err := NewRuntime(2, time.Minute, logx.Nop())
	if err != nil {
		t.Fatalf("构造失败：%v", err)
	}
	defer r.Shutdown()

	bad := baseConfig()
	bad.Days = 5 // 三阶段都放不下
	acc, err := r.Sweep(bad, 3)
	if err != nil {
		t.Fatalf("扫描本身不应失败：%v", err)
	}
	if acc.Generations() != 0 {
		t.Fatalf("坏配置不应产出世代，got=%d", acc.Generations())
	}
	results := acc.GenerateResults()
	if results.Failures != 3 {
		t.Fatalf("期望 3 次失败，got=%d", results.Failures)
	}
}
