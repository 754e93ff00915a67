package terrain

import (
	"path/filepath"
	"runtime"

	"Ashfall/internal/shared/config"
	"Ashfall/modules/kit/errx"
)

// ZoneDetail 是一个同心分区的生成参数。
// maxRadius 是该区到地图中心的切比雪夫距离上限，-1 表示“其余全部”（最外圈）。
// weights 与顶层 terrains 一一对应，各区总和要求一致（都为 100），
// 越靠中心 ruins/wasteland 权重越高。
type ZoneDetail struct {
	Name        string    `json:"name"`
	MaxRadius   int       `json:"maxRadius"`
	Weights     []float64 `json:"weights"`
	ForsakenMin int       `json:"forsakenMin"` // 废弃者据点强度下限
	ForsakenMax int       `json:"forsakenMax"` // 强度上限（heartbeat 封顶用 1.5 倍此值）
}

type terrainConf struct {
	Title    string       `json:"title"`
	Terrains []string     `json:"terrains"`
	Zones    []ZoneDetail `json:"zones"`
	zMap     map[string]ZoneDetail
}

var Terrain = &terrainConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load terrain config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, &Terrain)

	if len(Terrain.Terrains) == 0 || len(Terrain.Zones) == 0 {
		panic(errx.ErrConfigInvalid.With("reason", "empty terrain table"))
	}
	Terrain.zMap = make(map[string]ZoneDetail, len(Terrain.Zones))
	var wantSum float64 = -1
	for _, z := range Terrain.Zones {
		if len(z.Weights) != len(Terrain.Terrains) {
			panic(errx.ErrConfigInvalid.With("zone", z.Name).With("reason", "weights length"))
		}
		sum := 0.0
		for _, w := range z.Weights {
			if w < 0 {
				panic(errx.ErrConfigInvalid.With("zone", z.Name).With("reason", "negative weight"))
			}
			sum += w
		}
		// 各区权重总和必须一致，避免某区被悄悄加厚
		if wantSum < 0 {
			wantSum = sum
		} else if sum != wantSum {
			panic(errx.ErrConfigInvalid.With("zone", z.Name).With("reason", "weight sum mismatch"))
		}
		if z.ForsakenMin <= 0 || z.ForsakenMax < z.ForsakenMin {
			panic(errx.ErrConfigInvalid.With("zone", z.Name).With("reason", "forsaken band"))
		}
		if _, dup := Terrain.zMap[z.Name]; dup {
			panic(errx.ErrConfigInvalid.With("zone", z.Name).With("reason", "duplicate"))
		}
		Terrain.zMap[z.Name] = z
	}
}

func Zone(name string) (ZoneDetail, bool) {
	v, ok := Terrain.zMap[name]
	return v, ok
}

// Zones 返回全部分区（由内到外的配置顺序）。
func Zones() []ZoneDetail {
	return Terrain.Zones
}

// Terrains 返回地形名表，与各区 weights 下标对齐。
func Terrains() []string {
	return Terrain.Terrains
}
