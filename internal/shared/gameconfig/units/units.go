package units

import (
	"path/filepath"
	"runtime"

	"Ashfall/internal/shared/config"
	"Ashfall/modules/kit/errx"
)

// Role 决定伤害吃损顺序：defender 先顶伤害，siege 最后。
type Role string

const (
	RoleDefender Role = "defender"
	RoleAttacker Role = "attacker"
	RoleElite    Role = "elite"
	RoleSiege    Role = "siege"
)

// rolePriority 越小越先吃伤害。
var rolePriority = map[Role]int{
	RoleDefender: 0,
	RoleAttacker: 1,
	RoleElite:    2,
	RoleSiege:    3,
}

// Priority 返回吃损优先级；未知 role 返回 false。
func (r Role) Priority() (int, bool) {
	p, ok := rolePriority[r]
	return p, ok
}

type UnitDetail struct {
	CfgId int    `json:"cfgId"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Atk   int    `json:"atk"`
	Def   int    `json:"def"`
	Hp    int    `json:"hp"`
	Food  int    `json:"food"` // 每单位每日粮耗
}

type unit struct {
	Title string       `json:"title"`
	List  []UnitDetail `json:"list"`
	uMap  map[int]UnitDetail
}

var Unit = &unit{}

// Load 加载并校验兵种表；非法数值属于配置错误，直接 panic（fail fast）。
func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load units config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, &Unit)

	Unit.uMap = make(map[int]UnitDetail, len(Unit.List))
	for _, v := range Unit.List {
		if _, ok := v.Role.Priority(); !ok {
			panic(errx.ErrConfigInvalid.With("cfgId", v.CfgId).With("role", string(v.Role)))
		}
		if v.Atk <= 0 || v.Def <= 0 || v.Hp <= 0 || v.Food < 0 {
			panic(errx.ErrConfigInvalid.With("cfgId", v.CfgId).With("unit", v.Name))
		}
		if _, dup := Unit.uMap[v.CfgId]; dup {
			panic(errx.ErrConfigInvalid.With("cfgId", v.CfgId).With("reason", "duplicate"))
		}
		Unit.uMap[v.CfgId] = v
	}
	if len(Unit.uMap) == 0 {
		panic(errx.ErrConfigInvalid.With("reason", "empty unit list"))
	}
}

// Get 按配置 id 取兵种；未知 id 返回 false，调用方必须当作 roster 配置错误处理。
func Get(cfgId int) (UnitDetail, bool) {
	v, ok := Unit.uMap[cfgId]
	return v, ok
}

// All 返回全部兵种（只读视图，调用方不得修改）。
func All() []UnitDetail {
	return Unit.List
}
