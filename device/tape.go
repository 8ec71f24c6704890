package device

import (
	"fmt"

	"github.com/golang/snappy"
)

// Tape 模拟顺序访问的磁带设备
// 只维护块序列和游标，不做任何真实 I/O：每个可能产生耗时的操作
// 都把虚拟耗时（秒）作为返回值交给调用方，设备自身不累加时间
type Tape struct {
	blockSize   int      // 块大小（字节）
	readRate    float64  // 读取速率（字节/秒）
	writeRate   float64  // 写入速率（字节/秒）
	seekRate    float64  // 块间寻道时间（秒/块）
	compression bool     // 是否以 snappy 压缩形式存储负载
	blocks      []*Block // 磁带块序列
	cursor      int      // 当前位置，blocks 非空时恒为合法下标
}

// Options 定义磁带设备的配置选项
type Options struct {
	// ReadRate 读取速率（字节/秒），默认 1MiB/s
	ReadRate float64

	// WriteRate 写入速率（字节/秒），默认 512KiB/s
	WriteRate float64

	// SeekRate 块间寻道时间（秒/块），默认 10ms
	SeekRate float64

	// Compression 启用后负载以 snappy 压缩形式存储，
	// 读写耗时按实际存储长度计算，ReadCurrent 返回解压后的负载
	Compression bool
}

// Option 定义 Options 的配置函数
type Option func(*Options)

// WithReadRate 设置读取速率（字节/秒）
func WithReadRate(rate float64) Option {
	return func(o *Options) {
		o.ReadRate = rate
	}
}

// WithWriteRate 设置写入速率（字节/秒）
func WithWriteRate(rate float64) Option {
	return func(o *Options) {
		o.WriteRate = rate
	}
}

// WithSeekRate 设置块间寻道时间（秒/块）
func WithSeekRate(rate float64) Option {
	return func(o *Options) {
		o.SeekRate = rate
	}
}

// WithCompression 设置是否启用 snappy 压缩存储
func WithCompression(enabled bool) Option {
	return func(o *Options) {
		o.Compression = enabled
	}
}

// NewTape 创建一个磁带设备
// 参数：
//   - blockSize: 块大小（字节），非正值时取默认 4096
//   - opts: 配置选项
//
// 返回：
//   - *Tape: 磁带设备指针
func NewTape(blockSize int, opts ...Option) *Tape {
	options := &Options{
		ReadRate:  1024 * 1024, // 1MiB/s
		WriteRate: 512 * 1024,  // 512KiB/s
		SeekRate:  0.01,        // 10ms/块
	}
	for _, opt := range opts {
		opt(options)
	}

	if blockSize <= 0 {
		blockSize = 4096
	}

	return &Tape{
		blockSize:   blockSize,
		readRate:    options.ReadRate,
		writeRate:   options.WriteRate,
		seekRate:    options.SeekRate,
		compression: options.Compression,
	}
}

// Write 将块追加到磁带逻辑末尾，不改变游标
// 参数：
//   - block: 待写入的块
//
// 返回：
//   - float64: 写入耗时 = 存储负载长度 / 写入速率
func (t *Tape) Write(block *Block) float64 {
	stored := block
	if t.compression && len(block.Payload) > 0 {
		stored = &Block{
			ID:            block.ID,
			Payload:       snappy.Encode(nil, block.Payload),
			IsIndexMarker: block.IsIndexMarker,
		}
	}
	t.blocks = append(t.blocks, stored)
	return float64(len(stored.Payload)) / t.writeRate
}

// ReadCurrent 读取游标处的块
// 返回：
//   - *Block: 游标处的块，启用压缩时返回解压后负载的副本
//   - float64: 读取耗时 = 存储负载长度 / 读取速率
//   - error: 空磁带或游标越界时返回错误
func (t *Tape) ReadCurrent() (*Block, float64, error) {
	if len(t.blocks) == 0 {
		return nil, 0, fmt.Errorf("读取空磁带: %w", ErrEmptyTape)
	}
	if t.cursor >= len(t.blocks) {
		return nil, 0, fmt.Errorf("读取位置 %d 越界（块数 %d）: %w", t.cursor, len(t.blocks), ErrOutOfRange)
	}

	stored := t.blocks[t.cursor]
	elapsed := float64(len(stored.Payload)) / t.readRate

	if t.compression && len(stored.Payload) > 0 {
		payload, err := snappy.Decode(nil, stored.Payload)
		if err != nil {
			return nil, 0, fmt.Errorf("解压块 %d 失败: %w", stored.ID, err)
		}
		return &Block{
			ID:            stored.ID,
			Payload:       payload,
			IsIndexMarker: stored.IsIndexMarker,
		}, elapsed, nil
	}

	return stored, elapsed, nil
}

// SeekTo 将游标移动到指定位置
// 这是唯一改变游标的原语，MoveForward/MoveBackward 都经由它实现，
// 保证寻道耗时的计算口径一致
// 参数：
//   - index: 目标位置
//
// 返回：
//   - float64: 寻道耗时 = |目标 - 游标| * 寻道速率
//   - error: 目标越界时返回错误，游标不变
func (t *Tape) SeekTo(index int) (float64, error) {
	if index < 0 || index >= len(t.blocks) {
		return 0, fmt.Errorf("寻道目标 %d 越界（块数 %d）: %w", index, len(t.blocks), ErrOutOfRange)
	}

	distance := index - t.cursor
	if distance < 0 {
		distance = -distance
	}
	t.cursor = index
	return float64(distance) * t.seekRate, nil
}

// MoveForward 向前移动 n 个块，越过末尾时停在最后一个块
// 参数：
//   - n: 移动块数
//
// 返回：
//   - float64: 寻道耗时
//   - error: 空磁带时返回错误
func (t *Tape) MoveForward(n int) (float64, error) {
	if len(t.blocks) == 0 {
		return 0, fmt.Errorf("空磁带无法移动: %w", ErrEmptyTape)
	}
	return t.SeekTo(clamp(t.cursor+n, 0, len(t.blocks)-1))
}

// MoveBackward 向后移动 n 个块，越过起点时停在第一个块
// 参数：
//   - n: 移动块数
//
// 返回：
//   - float64: 寻道耗时
//   - error: 空磁带时返回错误
func (t *Tape) MoveBackward(n int) (float64, error) {
	if len(t.blocks) == 0 {
		return 0, fmt.Errorf("空磁带无法移动: %w", ErrEmptyTape)
	}
	return t.SeekTo(clamp(t.cursor-n, 0, len(t.blocks)-1))
}

// BlockAt 返回指定位置的块，不产生虚拟耗时、不移动游标
// 仅供调用方做零成本的结构检查（如统计标记块），不参与时间模型
// 参数：
//   - index: 块位置
//
// 返回：
//   - *Block: 指定位置的块
//   - error: 越界时返回错误
func (t *Tape) BlockAt(index int) (*Block, error) {
	if index < 0 || index >= len(t.blocks) {
		return nil, fmt.Errorf("块位置 %d 越界（块数 %d）: %w", index, len(t.blocks), ErrOutOfRange)
	}
	return t.blocks[index], nil
}

// Reset 清空磁带并把游标归零
// 用于独立模拟运行之间的状态隔离
func (t *Tape) Reset() {
	t.blocks = nil
	t.cursor = 0
}

// BlockCount 返回磁带上的块数
func (t *Tape) BlockCount() int {
	return len(t.blocks)
}

// Position 返回当前游标位置
func (t *Tape) Position() int {
	return t.cursor
}

// BlockSize 返回块大小（字节）
func (t *Tape) BlockSize() int {
	return t.blockSize
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
