package races

import (
	"path/filepath"
	"runtime"

	"Ashfall/internal/shared/config"
	"Ashfall/modules/kit/errx"
)

// RaceDetail 是一个种族的全部战斗期修正。
// 乘数字段以 1.0 为“无修正”；resolver 按固定顺序套用：
// aggressorAtk →（守方）wallDef →（攻方）magicPen 作用到已调整的防御值。
type RaceDetail struct {
	Name           string  `json:"name"`
	AggressorAtk   float64 `json:"aggressorAtk"` // 进攻时己方 ATK 乘数
	WallDef        float64 `json:"wallDef"`      // 守墙时己方 DEF 乘数
	MagicPen       float64 `json:"magicPen"`     // 进攻时敌方 DEF 乘数（<1 即穿透）
	ReformChance   float64 `json:"reformChance"` // 回合末重组概率
	ReformMax      float64 `json:"reformMax"`    // 最多重组的己方当回合伤亡比例
	LootMult       float64 `json:"lootMult"`     // 战利品乘数
	CaptureMult    float64 `json:"captureMult"`  // 俘虏率乘数
	DeathSaveBonus int     `json:"deathSaveBonus"`
	Playable       bool    `json:"playable"` // false 的种族（Forsaken）只做中立守军
}

type race struct {
	Title string       `json:"title"`
	List  []RaceDetail `json:"list"`
	rMap  map[string]RaceDetail
}

var Race = &race{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load races config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, &Race)

	Race.rMap = make(map[string]RaceDetail, len(Race.List))
	for _, v := range Race.List {
		if v.Name == "" || v.AggressorAtk <= 0 || v.WallDef <= 0 || v.MagicPen <= 0 {
			panic(errx.ErrConfigInvalid.With("race", v.Name))
		}
		if v.ReformChance < 0 || v.ReformChance > 1 || v.ReformMax < 0 || v.ReformMax > 1 {
			panic(errx.ErrConfigInvalid.With("race", v.Name).With("reason", "reform out of range"))
		}
		if _, dup := Race.rMap[v.Name]; dup {
			panic(errx.ErrConfigInvalid.With("race", v.Name).With("reason", "duplicate"))
		}
		Race.rMap[v.Name] = v
	}
	if len(Race.rMap) == 0 {
		panic(errx.ErrConfigInvalid.With("reason", "empty race list"))
	}
}

func Get(name string) (RaceDetail, bool) {
	v, ok := Race.rMap[name]
	return v, ok
}

// PlayableNames 返回可选种族名（配置文件顺序），中立种族不在内。
func PlayableNames() []string {
	out := make([]string, 0, len(Race.List))
	for _, v := range Race.List {
		if v.Playable {
			out = append(out, v.Name)
		}
	}
	return out
}
