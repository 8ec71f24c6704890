package strategy

import (
	"fmt"

	"github.com/blueflylabor/fakeTape/device"
	"github.com/blueflylabor/fakeTape/strategy/posindex"
)

// DefaultFixedInterval 固定间隔索引的默认间隔
const DefaultFixedInterval = 10

// bloomCapacity 布隆过滤器的预估容量，对应数据 ID 取值空间
const bloomCapacity = uint(device.IDSpace)

// bloomFalsePositiveRate 布隆过滤器的期望误判率
const bloomFalsePositiveRate = 0.01

// FixedIntervalStrategy 固定间隔索引策略
// 构建时顺序走带，记录每个数据块的 ID → 实际磁带位置，
// 每记录 interval 个条目就在磁带末尾追加一个物理索引标记块；
// 查找是一次映射命中加一次定点寻道与读取
type FixedIntervalStrategy struct {
	interval int                   // 索引间隔
	index    posindex.Index        // ID 到磁带位置的映射
	bloom    *posindex.BloomFilter // 前置成员判定，未记录的 ID 零成本短路
	markers  int                   // 最近一次构建追加的标记块数
}

// NewFixedIntervalStrategy 创建固定间隔索引策略
// 参数：
//   - interval: 索引间隔，非正值时取 DefaultFixedInterval
//
// 返回：
//   - *FixedIntervalStrategy: 策略指针
func NewFixedIntervalStrategy(interval int) *FixedIntervalStrategy {
	if interval <= 0 {
		interval = DefaultFixedInterval
	}
	return &FixedIntervalStrategy{
		interval: interval,
		index:    posindex.New(posindex.TypeART),
		bloom:    posindex.NewBloomFilter(bloomCapacity, bloomFalsePositiveRate),
	}
}

// BuildIndex 从零重建索引
// 寻道到块 0 后逐个位置走带（块数每轮重新求值，构建中追加的标记块
// 也会被走到并跳过），为每个数据块记录实际位置；每记录 interval 个
// 条目就在末尾写入一个标记块并把游标向前推进一格。结束后游标恢复
// 到调用前的位置。重复 ID 只保留第一次出现的位置
// 返回：
//   - float64: 构建耗时（读取 + 寻道 + 标记块写入）
//   - error: 设备级错误
func (s *FixedIntervalStrategy) BuildIndex(tape *device.Tape) (float64, error) {
	s.index.Close()
	s.index = posindex.New(posindex.TypeART)
	s.bloom.Reset()
	s.markers = 0

	if tape.BlockCount() == 0 {
		return 0, nil
	}

	var elapsed float64
	origin := tape.Position()
	entries := 0

	for pos := 0; pos < tape.BlockCount(); pos++ {
		seekTime, err := tape.SeekTo(pos)
		if err != nil {
			return elapsed, err
		}
		elapsed += seekTime

		blk, readTime, err := tape.ReadCurrent()
		if err != nil {
			return elapsed, err
		}
		elapsed += readTime

		if blk.IsIndexMarker {
			continue
		}
		if s.index.Get(blk.ID) != nil {
			continue
		}

		s.index.Put(blk.ID, &posindex.Position{Offset: tape.Position()})
		s.bloom.Add(blk.ID)
		entries++

		if entries%s.interval == 0 {
			marker := newMarkerBlock(blk.ID+device.MarkerIDOffset, 1, entries, s.interval)
			elapsed += tape.Write(marker)

			moveTime, err := tape.MoveForward(1)
			if err != nil {
				return elapsed, err
			}
			elapsed += moveTime
			s.markers++
		}
	}

	seekTime, err := tape.SeekTo(origin)
	if err != nil {
		return elapsed, err
	}
	elapsed += seekTime

	return elapsed, nil
}

// FindBlock 解析数据 ID 到磁带位置
// 映射未命中时不发生任何物理访问，耗时为 0；命中时一次寻道加一次
// 读取，并校验读到的块 ID 与查询一致，防止过期或错误的索引条目
// 返回：
//   - int: 磁带位置，未找到时为 PositionNotFound
//   - float64: 累计耗时
//   - error: 设备级错误
func (s *FixedIntervalStrategy) FindBlock(tape *device.Tape, id uint64) (int, float64, error) {
	if tape.BlockCount() == 0 {
		return PositionNotFound, 0, nil
	}
	if !s.bloom.Test(id) {
		return PositionNotFound, 0, nil
	}
	pos := s.index.Get(id)
	if pos == nil {
		return PositionNotFound, 0, nil
	}

	var elapsed float64

	seekTime, err := tape.SeekTo(pos.Offset)
	if err != nil {
		return PositionNotFound, elapsed, err
	}
	elapsed += seekTime

	blk, readTime, err := tape.ReadCurrent()
	if err != nil {
		return PositionNotFound, elapsed, err
	}
	elapsed += readTime

	if blk.IsIndexMarker || blk.ID != id {
		return PositionNotFound, elapsed, nil
	}
	return pos.Offset, elapsed, nil
}

// Name 返回策略名称
func (s *FixedIntervalStrategy) Name() string {
	return "Fixed Interval Index"
}

// Stats 返回索引统计信息
func (s *FixedIntervalStrategy) Stats() string {
	return fmt.Sprintf("Interval: %d, Index entries: %d, Markers: %d",
		s.interval, s.index.Size(), s.markers)
}

// 确保 FixedIntervalStrategy 实现了 Strategy 接口
var _ Strategy = (*FixedIntervalStrategy)(nil)
