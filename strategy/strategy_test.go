package strategy

import (
	"testing"

	"github.com/blueflylabor/fakeTape/device"
)

const (
	testPayloadLen = 16
	testReadRate   = 1024 * 1024
	testWriteRate  = 512 * 1024
	testSeekRate   = 0.01
)

// newDataTape 构造一条写有 count 个数据块的测试磁带，ID 依次为 1..count
func newDataTape(t *testing.T, count int) *device.Tape {
	t.Helper()
	tape := device.NewTape(4096,
		device.WithReadRate(testReadRate),
		device.WithWriteRate(testWriteRate),
		device.WithSeekRate(testSeekRate),
	)
	for i := 1; i <= count; i++ {
		tape.Write(device.NewBlock(uint64(i), make([]byte, testPayloadLen)))
	}
	return tape
}

// countMarkers 统计磁带上的索引标记块数
func countMarkers(t *testing.T, tape *device.Tape) int {
	t.Helper()
	markers := 0
	for i := 0; i < tape.BlockCount(); i++ {
		blk, err := tape.BlockAt(i)
		if err != nil {
			t.Fatalf("BlockAt(%d) 失败: %v", i, err)
		}
		if blk.IsIndexMarker {
			markers++
		}
	}
	return markers
}
