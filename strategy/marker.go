package strategy

import (
	"bytes"

	"github.com/hashicorp/go-msgpack/v2/codec"

	"github.com/blueflylabor/fakeTape/device"
)

// markerSummary 是索引标记块负载中携带的索引摘要
// 让标记块的写入耗时贴近真实的物理索引记录；查找路径从不读取其内容
type markerSummary struct {
	Level    int `msgpack:"level"`    // 索引层级：固定间隔为 1
	Entries  int `msgpack:"entries"`  // 摘要生成时已记录的条目数
	Interval int `msgpack:"interval"` // 对应层级的索引间隔
}

// newMarkerBlock 构造一个携带 msgpack 摘要负载的索引标记块
// 参数：
//   - id: 标记块 ID（应带 device.MarkerIDOffset 偏移）
//   - level: 索引层级
//   - entries: 已记录条目数
//   - interval: 索引间隔
//
// 返回：
//   - *device.Block: 标记块指针
func newMarkerBlock(id uint64, level, entries, interval int) *device.Block {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, &codec.MsgpackHandle{})
	if err := enc.Encode(&markerSummary{
		Level:    level,
		Entries:  entries,
		Interval: interval,
	}); err != nil {
		// 编码失败时退化为空负载，标记块的存在性不受影响
		return device.NewMarkerBlock(id, nil)
	}
	return device.NewMarkerBlock(id, buf.Bytes())
}
