package device

const (
	// IDSpace 数据块 ID 的取值空间上限，数据 ID 均匀分布在 [1, IDSpace]
	IDSpace uint64 = 1_000_000

	// MarkerIDOffset 索引标记块的 ID 偏移量
	// 标记块 ID = 原始 ID + MarkerIDOffset，保证不与数据 ID 空间冲突
	MarkerIDOffset uint64 = 1_000_000
)

// Block 表示磁带上的一个逻辑块
// 创建后不可变：写入磁带后由磁带独占持有，直到 Reset 时一并销毁
type Block struct {
	ID            uint64 // 块 ID
	Payload       []byte // 块负载
	IsIndexMarker bool   // 是否为索引标记块
}

// NewBlock 创建一个数据块
// 参数：
//   - id: 块 ID
//   - payload: 块负载
//
// 返回：
//   - *Block: 数据块指针
func NewBlock(id uint64, payload []byte) *Block {
	return &Block{
		ID:      id,
		Payload: payload,
	}
}

// NewMarkerBlock 创建一个索引标记块
// 标记块在数据查找中始终被跳过，负载内容只影响写入耗时
// 参数：
//   - id: 标记块 ID（应带 MarkerIDOffset 偏移）
//   - payload: 标记块负载
//
// 返回：
//   - *Block: 标记块指针
func NewMarkerBlock(id uint64, payload []byte) *Block {
	return &Block{
		ID:            id,
		Payload:       payload,
		IsIndexMarker: true,
	}
}

// PayloadSize 返回块负载的字节数
func (b *Block) PayloadSize() int {
	return len(b.Payload)
}
