package service

import (
	"math"

	"go.uber.org/zap"

	"Ashfall/internal/shared/gameconfig/terrain"
	"Ashfall/internal/shared/rng"
	"Ashfall/internal/world/entity"
	"Ashfall/internal/world/entity/domain"
	"Ashfall/modules/kit/logx"
)

// heartbeatGrowth/heartbeatCap：据点心跳每次 ×1.2，封顶 1.5 倍分区强度上限。
const (
	heartbeatGrowth     = 1.2
	heartbeatCap        = 1.5
	heartbeatSpawnShare = 0.10 // 每次心跳在剩余无主格的 10% 上生成新据点
)

// WorldService 负责一个世代的地图生成与据点演化。
// 所有随机性走注入的 rng.Source，保证同种子可复现。
type WorldService struct {
	rand *rng.Source
	log  logx.Logger
}

func NewWorldService(r *rng.Source, log logx.Logger) *WorldService {
	if log == nil {
		log = logx.Nop()
	}
	return &WorldService{rand: r, log: log}
}

// zoneFor 按切比雪夫距离从内到外匹配分区；maxRadius=-1 的分区兜底。
func zoneFor(dist int) terrain.ZoneDetail {
	zones := terrain.Zones()
	for _, z := range zones {
		if z.MaxRadius >= 0 && dist <= z.MaxRadius {
			return z
		}
	}
	return zones[len(zones)-1]
}

func chebyshev(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Generate 生成 size×size 的地图：分区按到中心的切比雪夫距离，
// 地形按分区权重表抽取。
func (s *WorldService) Generate(size int) (*entity.WorldEntity, error) {
	if size <= 0 {
		return nil, ErrWorldInvalid.With("size", size)
	}
	center := size / 2
	terrains := terrain.Terrains()
	cells := make([]domain.CellState, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			zone := zoneFor(chebyshev(x, y, center, center))
			t, err := rng.WeightedPick(s.rand, terrains, zone.Weights)
			if err != nil {
				return nil, err
			}
			cells[y*size+x] = domain.CellState{
				X:       x,
				Y:       y,
				Zone:    domain.Zone(zone.Name),
				Terrain: domain.Terrain(t),
			}
		}
	}
	s.log.Debug("world generated", zap.Int("size", size))
	return entity.NewWorldEntity(size, cells), nil
}

// SpawnForsaken 把 coverage 比例的无主格标记为废弃者据点，
// 强度在所属分区的 [min,max] 区间均匀采样。返回生成数量。
func (s *WorldService) SpawnForsaken(w *entity.WorldEntity, coverage float64) (int, error) {
	if coverage < 0 || coverage > 1 {
		return 0, ErrWorldInvalid.With("coverage", coverage)
	}
	unclaimed := w.UnclaimedPositions()
	want := int(float64(len(unclaimed)) * coverage)
	if want == 0 {
		return 0, nil
	}
	picked := rng.Shuffle(s.rand, unclaimed)[:want]
	for _, p := range picked {
		cell := w.At(p.X, p.Y)
		zone, _ := terrain.Zone(string(cell.Zone))
		cell.Forsaken = true
		cell.ForsakenStrength = s.rand.IntRange(zone.ForsakenMin, zone.ForsakenMax)
	}
	s.log.Debug("forsaken spawned", zap.Int("count", want))
	return want, nil
}

// Heartbeat 是世界的周期脉动：已有据点强度 ×1.2（封顶 1.5×分区上限），
// 再在剩余无主格的 10% 上长出新据点。只允许每个调度刻调用一次，
// 调度去重由编排器负责。
func (s *WorldService) Heartbeat(w *entity.WorldEntity) (strengthened, spawned int) {
	cells := w.Cells()
	for i := range cells {
		if !cells[i].Forsaken {
			continue
		}
		zone, _ := terrain.Zone(string(cells[i].Zone))
		cap_ := int(math.Floor(heartbeatCap * float64(zone.ForsakenMax)))
		next := int(math.Floor(float64(cells[i].ForsakenStrength) * heartbeatGrowth))
		if next > cap_ {
			next = cap_
		}
		if next != cells[i].ForsakenStrength {
			cells[i].ForsakenStrength = next
			strengthened++
		}
	}

	unclaimed := w.UnclaimedPositions()
	want := int(float64(len(unclaimed)) * heartbeatSpawnShare)
	if want > 0 {
		picked := rng.Shuffle(s.rand, unclaimed)[:want]
		for _, p := range picked {
			cell := w.At(p.X, p.Y)
			zone, _ := terrain.Zone(string(cell.Zone))
			cell.Forsaken = true
			cell.ForsakenStrength = s.rand.IntRange(zone.ForsakenMin, zone.ForsakenMax)
			spawned++
		}
	}
	s.log.Debug("heartbeat", zap.Int("strengthened", strengthened), zap.Int("spawned", spawned))
	return strengthened, spawned
}

// MinPlacementSize 返回出生簇可落位的最小地图边长。
// 出生簇只收 heart/inner 之外的格子，中心到边缘的切比雪夫距离必须
// 超过 inner 区半径，否则整图没有一个可用格，落位必然失败。
func MinPlacementSize() int {
	reserved := 0
	for _, z := range terrain.Zones() {
		if z.MaxRadius < 0 {
			continue
		}
		name := domain.Zone(z.Name)
		if (name == domain.ZoneHeart || name == domain.ZoneInner) && z.MaxRadius > reserved {
			reserved = z.MaxRadius
		}
	}
	return 2 * (reserved + 1)
}

// FindStartingPositions 给 playerCount 个玩家各找一个 plotsPerPlayer 格的出生簇。
// 锚点按角度均匀撒在外圈，簇从锚点 BFS 贪心收集非 heart/非 inner 的无主格，
// 且跳过同一次调用里先到玩家已占的格子。任何一个玩家凑不齐就整体报
// PLACEMENT_FAILED，绝不静默返回部分结果。
func (s *WorldService) FindStartingPositions(w *entity.WorldEntity, playerCount, plotsPerPlayer int) ([][]domain.Position, error) {
	if playerCount <= 0 || plotsPerPlayer <= 0 {
		return nil, ErrWorldInvalid.
			With("playerCount", playerCount).
			With("plotsPerPlayer", plotsPerPlayer)
	}

	size := w.Size()
	center := float64(size / 2)
	radius := float64(size)/2 - 2
	if radius < 1 {
		radius = 1
	}

	claimed := make(map[int]bool)
	out := make([][]domain.Position, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(playerCount)
		ax := clamp(int(math.Round(center+radius*math.Cos(angle))), 0, size-1)
		ay := clamp(int(math.Round(center+radius*math.Sin(angle))), 0, size-1)

		cluster := w.ClusterFrom(domain.Position{X: ax, Y: ay}, plotsPerPlayer, func(c *domain.CellState) bool {
			if c == nil || !c.Unclaimed() {
				return false
			}
			if c.Zone == domain.ZoneHeart || c.Zone == domain.ZoneInner {
				return false
			}
			return !claimed[w.ToPosition(c.X, c.Y)]
		})
		if len(cluster) < plotsPerPlayer {
			return nil, ErrPlacementFailed.
				With("player", i).
				With("want", plotsPerPlayer).
				With("got", len(cluster))
		}
		for _, p := range cluster {
			claimed[w.ToPosition(p.X, p.Y)] = true
		}
		out = append(out, cluster)
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
