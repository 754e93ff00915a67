package generation

import (
	"sort"

	"Ashfall/internal/agent"
	playerdomain "Ashfall/internal/player/entity/domain"
	worlddomain "Ashfall/internal/world/entity/domain"
)

const (
	targetScanRadius = 15 // 目标搜索半径（切比雪夫）
	maxExpandOptions = 8
)

// buildView 给单个玩家组装只读视图。
// OwnedCells 是 map，这里全部经过排序再投影，保证同种子下视图逐字节一致。
func (o *Orchestrator) buildView(p *playerdomain.SimPlayer, phase Phase) agent.View {
	home := o.homeOf(p)
	homeCell := o.world.At(home.X, home.Y)

	v := agent.View{
		Day:           o.day,
		CombatAllowed: phase != PhasePlanning,
		Resources:     p.Resources,
		Score:         p.Score,
		OwnedCells:    len(p.OwnedCells),
		Buildings:     p.Buildings,
		HasWall:       homeCell != nil && homeCell.HasWall(),
		Home:          agent.Coord{X: home.X, Y: home.Y},
	}

	for _, a := range p.Armies {
		v.Armies = append(v.Armies, agent.ArmyView{
			Id:            a.Id,
			X:             a.X,
			Y:             a.Y,
			Strength:      a.Strength(),
			Quantity:      a.Quantity(),
			CaptainAboard: a.CaptainAboard,
		})
	}

	if a := strongestArmy(p); a != nil {
		v.Targets = o.scanTargets(p, a)
	}
	v.Expand = o.expandOptions(p)
	return v
}

// homeOf 取玩家主城格：下标最小的己方格，整个世代内稳定。
func (o *Orchestrator) homeOf(p *playerdomain.SimPlayer) worlddomain.Position {
	best := -1
	for idx := range p.OwnedCells {
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		// 无领地时退回主将军队所在格
		if a := p.CaptainArmy(); a != nil {
			return worlddomain.Position{X: a.X, Y: a.Y}
		}
		return worlddomain.Position{}
	}
	size := o.world.Size()
	return worlddomain.Position{X: best % size, Y: best / size}
}

func strongestArmy(p *playerdomain.SimPlayer) *playerdomain.Army {
	var best *playerdomain.Army
	for _, a := range p.Armies {
		if a.Quantity() == 0 {
			continue
		}
		if best == nil || a.Strength() > best.Strength() {
			best = a
		}
	}
	return best
}

// scanTargets 收集最强军队半径内的可打击目标：废弃者据点与有驻军的敌格。
func (o *Orchestrator) scanTargets(p *playerdomain.SimPlayer, a *playerdomain.Army) []agent.TargetView {
	var out []agent.TargetView
	size := o.world.Size()
	x0, y0 := max(0, a.X-targetScanRadius), max(0, a.Y-targetScanRadius)
	x1, y1 := min(size-1, a.X+targetScanRadius), min(size-1, a.Y+targetScanRadius)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := o.world.At(x, y)
			switch {
			case cell.Forsaken:
				out = append(out, agent.TargetView{
					X: x, Y: y,
					Strength: cell.ForsakenStrength,
					Forsaken: true,
					Distance: chebyshev(a.X, a.Y, x, y),
				})
			case cell.Owner != 0 && cell.Owner != worlddomain.PlayerID(p.Id) && cell.GarrisonArmyId != 0:
				strength := 0
				if enemy := o.playerById(playerdomain.PlayerID(cell.Owner)); enemy != nil {
					for _, ea := range enemy.Armies {
						if ea.Id == cell.GarrisonArmyId {
							strength = ea.Strength()
						}
					}
				}
				out = append(out, agent.TargetView{
					X: x, Y: y,
					Strength: strength,
					OwnerId:  int(cell.Owner),
					Distance: chebyshev(a.X, a.Y, x, y),
				})
			}
		}
	}
	return out
}

// expandOptions 列出己方领地邻接的无主格（排序截断，保证确定性）。
func (o *Orchestrator) expandOptions(p *playerdomain.SimPlayer) []agent.Coord {
	owned := make([]int, 0, len(p.OwnedCells))
	for idx := range p.OwnedCells {
		owned = append(owned, idx)
	}
	sort.Ints(owned)

	size := o.world.Size()
	seen := make(map[int]bool)
	var out []agent.Coord
	for _, idx := range owned {
		for _, n := range o.world.Neighbors(idx%size, idx/size) {
			nIdx := o.world.ToPosition(n.X, n.Y)
			if seen[nIdx] {
				continue
			}
			seen[nIdx] = true
			if o.world.At(n.X, n.Y).Unclaimed() {
				out = append(out, agent.Coord{X: n.X, Y: n.Y})
				if len(out) >= maxExpandOptions {
					return out
				}
			}
		}
	}
	return out
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
	return max(dx, dy)
}
