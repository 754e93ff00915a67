package service

import (
	gamedomain "Ashfall/internal/game/domain"
	"Ashfall/internal/player/entity/domain"
	"Ashfall/internal/shared/gameconfig/classes"
	"Ashfall/internal/shared/gameconfig/races"
)

// startingResources 是注册层给的起始资源档位（模拟里所有玩家同档）。
var startingResources = gamedomain.Resources{
	Gold:  500,
	Wood:  800,
	Stone: 600,
	Iron:  400,
	Grain: 1200,
}

// NewSimPlayer 创建一个模拟玩家并做建号期校验：
// 种族必须可选、职业必须存在、技能必须属于该职业、策略必须已知。
// 任何一项不满足都返回错误，调用方不得创建半初始化的玩家。
func NewSimPlayer(id domain.PlayerID, race, class, skill string, policy domain.PolicyType, joinedDay int) (*domain.SimPlayer, error) {
	r, ok := races.Get(race)
	if !ok || !r.Playable {
		return nil, ErrPlayerInvalid.With("race", race)
	}
	if _, ok := classes.Get(class); !ok {
		return nil, ErrPlayerInvalid.With("class", class)
	}
	if _, ok := classes.Skill(class, skill); !ok {
		return nil, ErrSkillClassMismatch.With("class", class).With("skill", skill)
	}
	known := false
	for _, p := range domain.AllPolicies {
		if p == policy {
			known = true
			break
		}
	}
	if !known {
		return nil, ErrPlayerInvalid.With("policy", string(policy))
	}

	return &domain.SimPlayer{
		Id:         id,
		Race:       race,
		Captain:    domain.Captain{Class: class, Skill: skill},
		Policy:     policy,
		Resources:  startingResources,
		OwnedCells: make(map[int]bool),
		JoinedDay:  joinedDay,
	}, nil
}
