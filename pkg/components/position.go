package components

// PositionComponent 存储实体的世界坐标
type PositionComponent struct {
	X, Y float64
}
