package posindex

// Position 记录一个数据 ID 在磁带上的定位信息
// Offset 供固定间隔索引使用；L1Bucket/L2Bucket 供分层索引使用
type Position struct {
	Offset   int // 磁带位置
	L1Bucket int // 一级索引桶
	L2Bucket int // 二级索引桶（全局编号）
}

// Index 是策略内部 ID → 定位信息 映射的抽象接口
// 每次 BuildIndex 都会整体重建，绝不部分更新
type Index interface {
	// Put 写入 ID 到定位信息的映射
	// 参数：
	//   - id: 数据 ID
	//   - pos: 定位信息指针
	Put(id uint64, pos *Position)

	// Get 根据 ID 获取定位信息
	// 参数：
	//   - id: 数据 ID
	// 返回：
	//   - *Position: 定位信息指针，不存在返回 nil
	Get(id uint64) *Position

	// Size 返回索引中的条目数量
	Size() int

	// Close 关闭索引，释放资源
	Close()
}

// Type 定义索引后端类型
type Type int

const (
	// TypeMap 使用内置 Map 作为后端（默认）
	TypeMap Type = iota
	// TypeART 使用自适应基数树作为后端
	TypeART
)

// New 根据后端类型创建索引实例
// 参数：
//   - t: 后端类型
//
// 返回：
//   - Index: 索引实例
func New(t Type) Index {
	switch t {
	case TypeART:
		return NewARTIndex()
	default:
		return NewMapIndex()
	}
}
