package service

import (
	"errors"
	"math"
	"os"
	"testing"

	"Ashfall/internal/shared/gameconfig/terrain"
	"Ashfall/internal/shared/rng"
	"Ashfall/internal/world/entity/domain"
	"Ashfall/modules/kit/logx"
)

func TestMain(m *testing.M) {
	terrain.Load()
	os.Exit(m.Run())
}

func TestGenerate_size100_心脏区恰好是中心切比雪夫5以内(t *testing.T) {
	s := NewWorldService(rng.New(42), logx.Nop())
	w, err := s.Generate(100)
	if err != nil {
		t.Fatalf("生成失败：%v", err)
	}
	center := 50
	for _, c := range w.Cells() {
		dist := chebyshev(c.X, c.Y, center, center)
		if dist <= 5 && c.Zone != domain.ZoneHeart {
			t.Fatalf("期望 (%d,%d) dist=%d 是 heart，got=%s", c.X, c.Y, dist, c.Zone)
		}
		if dist > 5 && c.Zone == domain.ZoneHeart {
			t.Fatalf("期望 (%d,%d) dist=%d 不是 heart", c.X, c.Y, dist)
		}
	}
}

func TestGenerate_同种子地图逐格一致(t *testing.T) {
	w1, err := NewWorldService(rng.New(7), logx.Nop()).Generate(60)
	if err != nil {
		t.Fatalf("生成失败：%v", err)
	}
	w2, err := NewWorldService(rng.New(7), logx.Nop()).Generate(60)
	if err != nil {
		t.Fatalf("生成失败：%v", err)
	}
	c1, c2 := w1.Cells(), w2.Cells()
	for i := range c1 {
		if c1[i].Terrain != c2[i].Terrain || c1[i].Zone != c2[i].Zone {
			t.Fatalf("期望同种子生成一致，第 %d 格 %+v != %+v", i, c1[i], c2[i])
		}
	}
}

func TestGenerate_非法尺寸报配置错误(t *testing.T) {
	_, err := NewWorldService(rng.New(1), logx.Nop()).Generate(0)
	if !errors.Is(err, ErrWorldInvalid) {
		t.Fatalf("期望 WORLD_INVALID，got=%v", err)
	}
}

func TestSpawnForsaken_覆盖率与分区强度区间(t *testing.T) {
	s := NewWorldService(rng.New(99), logx.Nop())
	w, _ := s.Generate(50)
	n, err := s.SpawnForsaken(w, 0.2)
	if err != nil {
		t.Fatalf("spawn 失败：%v", err)
	}
	want := int(float64(50*50) * 0.2)
	if n != want {
		t.Fatalf("期望生成 %d 个据点，got=%d", want, n)
	}
	count := 0
	for _, c := range w.Cells() {
		if !c.Forsaken {
			continue
		}
		count++
		zone, ok := terrain.Zone(string(c.Zone))
		if !ok {
			t.Fatalf("未知分区 %s", c.Zone)
		}
		if c.ForsakenStrength < zone.ForsakenMin || c.ForsakenStrength > zone.ForsakenMax {
			t.Fatalf("期望强度落在 [%d,%d]，got=%d（zone=%s）",
				zone.ForsakenMin, zone.ForsakenMax, c.ForsakenStrength, c.Zone)
		}
	}
	if count != n {
		t.Fatalf("期望标记数与返回值一致，%d != %d", count, n)
	}
}

func TestHeartbeat_到达封顶的据点不再变强_但仍会孵化新据点(t *testing.T) {
	s := NewWorldService(rng.New(3), logx.Nop())
	w, _ := s.Generate(40)
	if _, err := s.SpawnForsaken(w, 0.1); err != nil {
		t.Fatalf("spawn 失败：%v", err)
	}
	// 把所有据点顶到 1.5×分区上限的封顶值
	cells := w.Cells()
	capOf := func(zone string) int {
		z, _ := terrain.Zone(zone)
		return int(math.Floor(1.5 * float64(z.ForsakenMax)))
	}
	before := make(map[int]int)
	for i := range cells {
		if cells[i].Forsaken {
			cells[i].ForsakenStrength = capOf(string(cells[i].Zone))
			before[i] = cells[i].ForsakenStrength
		}
	}

	strengthened, spawned := s.Heartbeat(w)
	if strengthened != 0 {
		t.Fatalf("期望封顶据点不再变强，strengthened=%d", strengthened)
	}
	if spawned == 0 {
		t.Fatalf("期望心跳仍能从无主格孵化新据点")
	}
	for i, v := range before {
		if cells[i].ForsakenStrength != v {
			t.Fatalf("期望第 %d 格强度不变，%d != %d", i, cells[i].ForsakenStrength, v)
		}
	}
}

func TestHeartbeat_未封顶据点按1点2倍增长(t *testing.T) {
	s := NewWorldService(rng.New(5), logx.Nop())
	w, _ := s.Generate(30)
	cell := w.At(0, 0) // outer 区
	cell.Forsaken = true
	cell.ForsakenStrength = 100

	s.Heartbeat(w)
	if cell.ForsakenStrength != 120 {
		t.Fatalf("期望 100×1.2=120，got=%d", cell.ForsakenStrength)
	}
}

func TestFindStartingPositions_每人凑齐且互不重叠(t *testing.T) {
	s := NewWorldService(rng.New(11), logx.Nop())
	w, _ := s.Generate(100)
	clusters, err := s.FindStartingPositions(w, 8, 9)
	if err != nil {
		t.Fatalf("落位失败：%v", err)
	}
	if len(clusters) != 8 {
		t.Fatalf("期望 8 个簇，got=%d", len(clusters))
	}
	seen := make(map[int]bool)
	for pi, cluster := range clusters {
		if len(cluster) != 9 {
			t.Fatalf("期望玩家 %d 有 9 格，got=%d", pi, len(cluster))
		}
		for _, p := range cluster {
			idx := w.ToPosition(p.X, p.Y)
			if seen[idx] {
				t.Fatalf("期望簇之间不重叠，格子 (%d,%d) 被占两次", p.X, p.Y)
			}
			seen[idx] = true
			c := w.At(p.X, p.Y)
			if c.Zone == domain.ZoneHeart || c.Zone == domain.ZoneInner {
				t.Fatalf("期望出生簇避开 heart/inner，got=%s", c.Zone)
			}
		}
	}
}

func TestFindStartingPositions_凑不齐必须整体失败(t *testing.T) {
	s := NewWorldService(rng.New(13), logx.Nop())
	// 12×12 的小图：整图都在 heart/inner 半径内，根本没有可用格
	w, _ := s.Generate(12)
	_, err := s.FindStartingPositions(w, 2, 4)
	if !errors.Is(err, ErrPlacementFailed) {
		t.Fatalf("期望 PLACEMENT_FAILED，got=%v", err)
	}
}

func TestMinPlacementSize_由heart与inner半径推出(t *testing.T) {
	// heart≤5、inner≤20：中心到边缘至少要 21 格才有可落位的格子
	if got := MinPlacementSize(); got != 42 {
		t.Fatalf("期望最小边长 42，got=%d", got)
	}
}
