package strategy

import (
	"testing"

	"github.com/blueflylabor/fakeTape/device"
)

func TestFixed_MarkerCount(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 100)

	elapsed, err := s.BuildIndex(tape)
	if err != nil {
		t.Fatalf("BuildIndex 失败: %v", err)
	}
	if elapsed <= 0 {
		t.Errorf("构建耗时应为正: got %v", elapsed)
	}

	// 100 个数据块、间隔 10 → floor(100/10) = 10 个标记块
	if markers := countMarkers(t, tape); markers != 10 {
		t.Errorf("标记块数不匹配: got %d, want 10", markers)
	}
	if tape.BlockCount() != 110 {
		t.Errorf("总块数不匹配: got %d, want 110", tape.BlockCount())
	}
}

func TestFixed_ResolveAllToOriginalPositions(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 100)

	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("BuildIndex 失败: %v", err)
	}

	// 标记块只追加在末尾，数据块位置保持 0..99 不变
	for id := uint64(1); id <= 100; id++ {
		pos, elapsed, err := s.FindBlock(tape, id)
		if err != nil {
			t.Fatalf("FindBlock(%d) 失败: %v", id, err)
		}
		if want := int(id - 1); pos != want {
			t.Errorf("ID %d 位置不匹配: got %d, want %d", id, pos, want)
		}
		if elapsed <= 0 {
			t.Errorf("ID %d 命中查找耗时应为正: got %v", id, elapsed)
		}
	}
}

func TestFixed_MissCostsNothing(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 100)

	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("BuildIndex 失败: %v", err)
	}

	pos, elapsed, err := s.FindBlock(tape, 999_999)
	if err != nil {
		t.Fatalf("FindBlock 失败: %v", err)
	}
	if pos != PositionNotFound {
		t.Errorf("期望哨兵 PositionNotFound, 得到: %d", pos)
	}
	if elapsed != 0 {
		t.Errorf("映射未命中不应产生物理访问耗时: got %v", elapsed)
	}
}

func TestFixed_CursorRestored(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 50)
	if _, err := tape.SeekTo(17); err != nil {
		t.Fatalf("SeekTo 失败: %v", err)
	}

	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("BuildIndex 失败: %v", err)
	}
	if tape.Position() != 17 {
		t.Errorf("构建后游标应恢复: got %d, want 17", tape.Position())
	}
}

func TestFixed_RebuildIdempotent(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 60)

	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("第一次 BuildIndex 失败: %v", err)
	}
	first := make(map[uint64]int)
	for id := uint64(1); id <= 60; id++ {
		pos, _, err := s.FindBlock(tape, id)
		if err != nil {
			t.Fatalf("FindBlock(%d) 失败: %v", id, err)
		}
		first[id] = pos
	}

	// 无数据变更的重复构建：索引内容与查找结果必须一致
	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("第二次 BuildIndex 失败: %v", err)
	}
	for id := uint64(1); id <= 60; id++ {
		pos, _, err := s.FindBlock(tape, id)
		if err != nil {
			t.Fatalf("FindBlock(%d) 失败: %v", id, err)
		}
		if pos != first[id] {
			t.Errorf("ID %d 重建后位置不一致: got %d, want %d", id, pos, first[id])
		}
	}
}

func TestFixed_DuplicateIDKeepsFirst(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 5)
	// 追加一个重复 ID 3 的数据块
	tape.Write(device.NewBlock(3, make([]byte, testPayloadLen)))

	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("BuildIndex 失败: %v", err)
	}
	pos, _, err := s.FindBlock(tape, 3)
	if err != nil {
		t.Fatalf("FindBlock 失败: %v", err)
	}
	if pos != 2 {
		t.Errorf("重复 ID 应解析到第一次出现的位置 2: got %d", pos)
	}
}

func TestFixed_EmptyTape(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 0)

	elapsed, err := s.BuildIndex(tape)
	if err != nil {
		t.Fatalf("空磁带构建不应报错: %v", err)
	}
	if elapsed != 0 {
		t.Errorf("空磁带构建耗时应为 0: got %v", elapsed)
	}

	pos, elapsed, err := s.FindBlock(tape, 1)
	if err != nil {
		t.Fatalf("空磁带查找不应报错: %v", err)
	}
	if pos != PositionNotFound || elapsed != 0 {
		t.Errorf("空磁带查找应返回 (哨兵, 0): got (%d, %v)", pos, elapsed)
	}
}

// 端到端场景：100 个块、ID 1..100、间隔 10
func TestFixed_EndToEnd(t *testing.T) {
	s := NewFixedIntervalStrategy(10)
	tape := newDataTape(t, 100)

	if _, err := s.BuildIndex(tape); err != nil {
		t.Fatalf("BuildIndex 失败: %v", err)
	}

	pos, elapsed, err := s.FindBlock(tape, 55)
	if err != nil {
		t.Fatalf("FindBlock(55) 失败: %v", err)
	}
	if pos != 54 {
		t.Errorf("ID 55 位置不匹配: got %d, want 54", pos)
	}
	if elapsed <= 0 {
		t.Errorf("ID 55 访问耗时应为正且有限: got %v", elapsed)
	}

	pos, _, err = s.FindBlock(tape, 999)
	if err != nil {
		t.Fatalf("FindBlock(999) 失败: %v", err)
	}
	if pos != PositionNotFound {
		t.Errorf("从未写入的 ID 999 应返回哨兵: got %d", pos)
	}
}
