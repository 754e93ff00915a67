package service

import "Ashfall/internal/shared/gameconfig/classes"

// classAndSkillBonus 汇总职业与技能的免死修正。
// 搭配合法性在建号期已校验，未知职业/技能按 0 计，不再重复报错。
func classAndSkillBonus(className, skillName string) int {
	total := 0
	if c, ok := classes.Get(className); ok {
		total += c.DeathSaveBonus
	}
	if s, ok := classes.Skill(className, skillName); ok {
		total += s.DeathSaveBonus
	}
	return total
}
