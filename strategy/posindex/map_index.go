package posindex

// MapIndex 是基于 Go 内置 map 的索引实现
type MapIndex struct {
	data map[uint64]*Position
}

// NewMapIndex 创建一个新的 Map 索引实例
// 返回：
//   - *MapIndex: Map 索引指针
func NewMapIndex() *MapIndex {
	return &MapIndex{
		data: make(map[uint64]*Position),
	}
}

// Put 写入 ID 到定位信息的映射
// 参数：
//   - id: 数据 ID
//   - pos: 定位信息指针
func (idx *MapIndex) Put(id uint64, pos *Position) {
	idx.data[id] = pos
}

// Get 根据 ID 从 Map 索引获取定位信息
// 参数：
//   - id: 数据 ID
// 返回：
//   - *Position: 定位信息指针，不存在返回 nil
func (idx *MapIndex) Get(id uint64) *Position {
	return idx.data[id]
}

// Size 返回 Map 索引中的条目数量
// 返回：
//   - int: 条目数量
func (idx *MapIndex) Size() int {
	return len(idx.data)
}

// Close 关闭 Map 索引
func (idx *MapIndex) Close() {
	// 清空 map，释放内存
	idx.data = nil
}

// 确保 MapIndex 实现了 Index 接口
var _ Index = (*MapIndex)(nil)
