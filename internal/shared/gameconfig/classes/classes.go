package classes

import (
	"path/filepath"
	"runtime"

	"Ashfall/internal/shared/config"
	"Ashfall/modules/kit/errx"
)

type SkillDetail struct {
	Name           string `json:"name"`
	DeathSaveBonus int    `json:"deathSaveBonus"`
}

type ClassDetail struct {
	Name           string        `json:"name"`
	DeathSaveBonus int           `json:"deathSaveBonus"`
	Skills         []SkillDetail `json:"skills"`
}

type class struct {
	Title string        `json:"title"`
	List  []ClassDetail `json:"list"`
	cMap  map[string]ClassDetail
}

var Class = &class{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load classes config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, &Class)

	Class.cMap = make(map[string]ClassDetail, len(Class.List))
	for _, v := range Class.List {
		if v.Name == "" || len(v.Skills) == 0 {
			panic(errx.ErrConfigInvalid.With("class", v.Name))
		}
		if _, dup := Class.cMap[v.Name]; dup {
			panic(errx.ErrConfigInvalid.With("class", v.Name).With("reason", "duplicate"))
		}
		Class.cMap[v.Name] = v
	}
	if len(Class.cMap) == 0 {
		panic(errx.ErrConfigInvalid.With("reason", "empty class list"))
	}
}

func Get(name string) (ClassDetail, bool) {
	v, ok := Class.cMap[name]
	return v, ok
}

// Skill 取指定职业下的技能；技能不属于该职业时返回 false。
// 建号期的 skill-for-class 校验走这里，非法搭配 fail fast。
func Skill(className, skillName string) (SkillDetail, bool) {
	c, ok := Class.cMap[className]
	if !ok {
		return SkillDetail{}, false
	}
	for _, s := range c.Skills {
		if s.Name == skillName {
			return s, true
		}
	}
	return SkillDetail{}, false
}

// Names 返回全部职业名（配置文件顺序）。
func Names() []string {
	out := make([]string, 0, len(Class.List))
	for _, v := range Class.List {
		out = append(out, v.Name)
	}
	return out
}

// SkillNames 返回全部技能名（职业顺序展开）。
func SkillNames() []string {
	var out []string
	for _, c := range Class.List {
		for _, s := range c.Skills {
			out = append(out, s.Name)
		}
	}
	return out
}
