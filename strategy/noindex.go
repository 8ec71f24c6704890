package strategy

import (
	"github.com/blueflylabor/fakeTape/device"
)

// NoIndexStrategy 无索引策略
// 不构建任何索引，查找时从当前游标开始对整盘磁带做一次环绕线性扫描
type NoIndexStrategy struct{}

// NewNoIndexStrategy 创建无索引策略实例
func NewNoIndexStrategy() *NoIndexStrategy {
	return &NoIndexStrategy{}
}

// BuildIndex 无索引可建，构建耗时恒为 0
func (s *NoIndexStrategy) BuildIndex(tape *device.Tape) (float64, error) {
	return 0, nil
}

// FindBlock 从当前游标开始扫描每个块恰好一次，按块数取模环绕
// 每次位置变化累加寻道耗时，每个被检查的块累加读取耗时
// 返回：
//   - int: 命中的磁带位置，整盘扫描无命中时为 PositionNotFound
//   - float64: 累计耗时
//   - error: 设备级错误
func (s *NoIndexStrategy) FindBlock(tape *device.Tape, id uint64) (int, float64, error) {
	count := tape.BlockCount()
	if count == 0 {
		return PositionNotFound, 0, nil
	}

	var elapsed float64
	origin := tape.Position()
	for i := 0; i < count; i++ {
		pos := (origin + i) % count

		seekTime, err := tape.SeekTo(pos)
		if err != nil {
			return PositionNotFound, elapsed, err
		}
		elapsed += seekTime

		blk, readTime, err := tape.ReadCurrent()
		if err != nil {
			return PositionNotFound, elapsed, err
		}
		elapsed += readTime

		if !blk.IsIndexMarker && blk.ID == id {
			return pos, elapsed, nil
		}
	}

	return PositionNotFound, elapsed, nil
}

// Name 返回策略名称
func (s *NoIndexStrategy) Name() string {
	return "No Index"
}

// Stats 返回索引统计信息
func (s *NoIndexStrategy) Stats() string {
	return "No index used"
}

// 确保 NoIndexStrategy 实现了 Strategy 接口
var _ Strategy = (*NoIndexStrategy)(nil)
