package strategy

import (
	"math"

	"github.com/blueflylabor/fakeTape/device"
)

// PositionNotFound 查找失败时返回的哨兵位置
// 取 int 最大值，保证与任何合法磁带位置都不冲突；
// 调用方必须与该哨兵比较来区分命中/未命中，不能与 0 或负值比较
const PositionNotFound = math.MaxInt

// Strategy 是索引策略的抽象接口
// 三种实现消费同一个磁带设备契约，按各自算法累加设备操作返回的虚拟耗时
type Strategy interface {
	// BuildIndex 在磁带上从零重建索引
	// 参数：
	//   - tape: 磁带设备
	// 返回：
	//   - float64: 构建耗时（虚拟秒）
	//   - error: 设备级错误
	BuildIndex(tape *device.Tape) (float64, error)

	// FindBlock 将数据 ID 解析为磁带位置
	// 参数：
	//   - tape: 磁带设备
	//   - id: 数据 ID
	// 返回：
	//   - int: 磁带位置，未找到时为 PositionNotFound
	//   - float64: 本次查找累计的虚拟耗时
	//   - error: 设备级错误
	FindBlock(tape *device.Tape, id uint64) (int, float64, error)

	// Name 返回策略名称
	Name() string

	// Stats 返回索引统计信息
	Stats() string
}
