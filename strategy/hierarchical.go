package strategy

import (
	"fmt"

	"github.com/blueflylabor/fakeTape/device"
	"github.com/blueflylabor/fakeTape/strategy/posindex"
)

const (
	// DefaultLevel1Interval 分层索引的默认一级间隔
	DefaultLevel1Interval = 100
	// DefaultLevel2Interval 分层索引的默认二级间隔
	DefaultLevel2Interval = 10
)

// HierarchicalStrategy 分层索引策略
// 构建时整盘走带收集数据块位置，末尾追加一级、二级两个索引标记块；
// 每次查找无论命中与否都要先付出走两层索引标记块的寻道与读取成本，
// 再反推二级桶起点并在桶内顺序扫描定位，这模拟了磁带上分层索引的
// 真实成本不对称性
type HierarchicalStrategy struct {
	l1Interval int                   // 一级索引间隔
	l2Interval int                   // 二级索引间隔
	index      posindex.Index        // ID 到 (一级桶, 二级桶) 的映射
	bloom      *posindex.BloomFilter // 前置成员判定
}

// NewHierarchicalStrategy 创建分层索引策略
// 参数：
//   - level1Interval: 一级间隔，非正值时取 DefaultLevel1Interval
//   - level2Interval: 二级间隔，非正值时取 DefaultLevel2Interval
//
// 返回：
//   - *HierarchicalStrategy: 策略指针
func NewHierarchicalStrategy(level1Interval, level2Interval int) *HierarchicalStrategy {
	if level1Interval <= 0 {
		level1Interval = DefaultLevel1Interval
	}
	if level2Interval <= 0 {
		level2Interval = DefaultLevel2Interval
	}
	return &HierarchicalStrategy{
		l1Interval: level1Interval,
		l2Interval: level2Interval,
		index:      posindex.New(posindex.TypeMap),
		bloom:      posindex.NewBloomFilter(bloomCapacity, bloomFalsePositiveRate),
	}
}

// BuildIndex 从零重建索引
// 对构建前的块范围整盘走带一次（读取 + 寻道计入耗时），按遍历顺序
// 收集数据块；之后在磁带末尾依次追加一级、二级索引标记块，并为第 i
// 个数据块记录 二级桶 = i / l2Interval、一级桶 = 二级桶 / l1Interval。
// 游标最后恢复到调用前的位置。重复 ID 只保留第一次出现
// 返回：
//   - float64: 构建耗时
//   - error: 设备级错误
func (s *HierarchicalStrategy) BuildIndex(tape *device.Tape) (float64, error) {
	s.index.Close()
	s.index = posindex.New(posindex.TypeMap)
	s.bloom.Reset()

	// 构建前的块数快照：本次追加的标记块不在走带范围内
	count := tape.BlockCount()
	if count == 0 {
		return 0, nil
	}

	var elapsed float64
	origin := tape.Position()

	type dataBlock struct {
		id  uint64
		pos int
	}
	var collected []dataBlock

	for pos := 0; pos < count; pos++ {
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

		if !blk.IsIndexMarker {
			collected = append(collected, dataBlock{id: blk.ID, pos: pos})
		}
	}

	// 依次追加一级、二级索引标记块：
	// 一级固定落在倒数第二个位置，二级落在最后一个位置
	elapsed += tape.Write(newMarkerBlock(device.MarkerIDOffset, 1, len(collected), s.l1Interval))
	elapsed += tape.Write(newMarkerBlock(2*device.MarkerIDOffset, 2, len(collected), s.l2Interval))

	for i, blk := range collected {
		if s.index.Get(blk.id) != nil {
			continue
		}
		l2 := i / s.l2Interval
		l1 := l2 / s.l1Interval
		s.index.Put(blk.id, &posindex.Position{L1Bucket: l1, L2Bucket: l2})
		s.bloom.Add(blk.id)
	}

	seekTime, err := tape.SeekTo(origin)
	if err != nil {
		return elapsed, err
	}
	elapsed += seekTime

	return elapsed, nil
}

// FindBlock 解析数据 ID 到磁带位置
// 映射未命中零成本返回；命中后先寻道并读取一级标记块（倒数第二）、
// 再寻道并读取二级标记块（最后），然后把全局二级桶号还原为一级桶内
// 偏移反推出桶起点位置，在桶内顺序扫描（至多 l2Interval 个位置，
// 不越过标记块区域），读到 ID 一致的数据块才算命中
// 返回：
//   - int: 磁带位置，未找到时为 PositionNotFound
//   - float64: 累计耗时
//   - error: 设备级错误
func (s *HierarchicalStrategy) FindBlock(tape *device.Tape, id uint64) (int, float64, error) {
	count := tape.BlockCount()
	if count == 0 {
		return PositionNotFound, 0, nil
	}
	if !s.bloom.Test(id) {
		return PositionNotFound, 0, nil
	}
	pos := s.index.Get(id)
	if pos == nil {
		return PositionNotFound, 0, nil
	}
	if count < 3 {
		// 标记块尚未就位，索引与磁带内容已不一致
		return PositionNotFound, 0, nil
	}

	var elapsed float64

	// 两层索引标记块的访问成本无条件支付
	for _, markerPos := range []int{count - 2, count - 1} {
		seekTime, err := tape.SeekTo(markerPos)
		if err != nil {
			return PositionNotFound, elapsed, err
		}
		elapsed += seekTime

		_, readTime, err := tape.ReadCurrent()
		if err != nil {
			return PositionNotFound, elapsed, err
		}
		elapsed += readTime
	}

	// 全局二级桶号还原为一级桶内偏移后反推桶起点
	l2Offset := pos.L2Bucket - pos.L1Bucket*s.l1Interval
	target := (pos.L1Bucket*s.l1Interval + l2Offset) * s.l2Interval
	if target >= count-2 {
		target = count - 3
	}
	if target < 0 {
		target = 0
	}

	for i := 0; i < s.l2Interval; i++ {
		scanPos := target + i
		if scanPos >= count-2 {
			break
		}

		seekTime, err := tape.SeekTo(scanPos)
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
			return scanPos, elapsed, nil
		}
	}

	return PositionNotFound, elapsed, nil
}

// Name 返回策略名称
func (s *HierarchicalStrategy) Name() string {
	return "Hierarchical Index"
}

// Stats 返回索引统计信息
func (s *HierarchicalStrategy) Stats() string {
	return fmt.Sprintf("Level1 interval: %d, Level2 interval: %d, Index entries: %d",
		s.l1Interval, s.l2Interval, s.index.Size())
}

// 确保 HierarchicalStrategy 实现了 Strategy 接口
var _ Strategy = (*HierarchicalStrategy)(nil)
