package entity

import (
	"Ashfall/internal/world/entity/domain"
)

type PlayerID = domain.PlayerID

// WorldEntity 持有一个世代的整张地图。
// 网格是 y*size+x 的扁平切片：一个世代上万格、一次扫描上千个世代，
// 用坐标字符串做 key 的 map 扛不住。
type WorldEntity struct {
	size  int
	cells []domain.CellState
}

func NewWorldEntity(size int, cells []domain.CellState) *WorldEntity {
	return &WorldEntity{size: size, cells: cells}
}

func (w *WorldEntity) Size() int {
	return w.size
}

// ToPosition 把 (x,y) 折算成扁平下标。
func (w *WorldEntity) ToPosition(x, y int) int {
	return y*w.size + x
}

func (w *WorldEntity) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.size && y < w.size
}

// At 返回指定格子的可变引用；越界返回 nil。
func (w *WorldEntity) At(x, y int) *domain.CellState {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.cells[w.ToPosition(x, y)]
}

// Cells 返回底层切片（调用方只做遍历，不得重排）。
func (w *WorldEntity) Cells() []domain.CellState {
	return w.cells
}

// Neighbors 返回 8 邻接格坐标（切比雪夫邻域，与分区度量一致）。
func (w *WorldEntity) Neighbors(x, y int) []domain.Position {
	out := make([]domain.Position, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if w.InBounds(nx, ny) {
				out = append(out, domain.Position{X: nx, Y: ny})
			}
		}
	}
	return out
}

// UnclaimedPositions 返回当前所有无主格（无玩家、无据点）。
func (w *WorldEntity) UnclaimedPositions() []domain.Position {
	var out []domain.Position
	for i := range w.cells {
		if w.cells[i].Unclaimed() {
			out = append(out, domain.Position{X: w.cells[i].X, Y: w.cells[i].Y})
		}
	}
	return out
}

// OwnedBy 返回某玩家拥有的全部格子坐标。
func (w *WorldEntity) OwnedBy(id PlayerID) []domain.Position {
	var out []domain.Position
	for i := range w.cells {
		if w.cells[i].Owner == id {
			out = append(out, domain.Position{X: w.cells[i].X, Y: w.cells[i].Y})
		}
	}
	return out
}

// ClusterFrom 从 start 做 BFS，收集最多 want 个满足 accept 的连通格子。
// 出生点簇选址用：accept 负责排除 heart/inner 与已被占用的格子。
func (w *WorldEntity) ClusterFrom(start domain.Position, want int, accept func(*domain.CellState) bool) []domain.Position {
	if want <= 0 || !w.InBounds(start.X, start.Y) {
		return nil
	}
	visited := make(map[int]bool)
	queue := []domain.Position{start}
	visited[w.ToPosition(start.X, start.Y)] = true
	var out []domain.Position
	for len(queue) > 0 && len(out) < want {
		cur := queue[0]
		queue = queue[1:]
		cell := w.At(cur.X, cur.Y)
		if accept(cell) {
			out = append(out, cur)
		}
		for _, nb := range w.Neighbors(cur.X, cur.Y) {
			idx := w.ToPosition(nb.X, nb.Y)
			if !visited[idx] {
				visited[idx] = true
				queue = append(queue, nb)
			}
		}
	}
	return out
}
