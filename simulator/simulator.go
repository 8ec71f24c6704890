package simulator

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/blueflylabor/fakeTape/device"
	"github.com/blueflylabor/fakeTape/strategy"
)

// Simulator 是模拟的编排者
// 独占持有一条磁带设备和当前策略，负责生成测试数据、驱动策略的
// 构建与查询、汇总虚拟耗时并把结果追加到自有的只增结果日志
type Simulator struct {
	tape         *device.Tape
	strategy     strategy.Strategy
	results      []Result
	rng          *rand.Rand
	payloadRatio float64
	fingerprint  uint32
}

// Options 定义模拟器的配置选项
type Options struct {
	// Seed 随机数种子，0 表示按当前时间取种
	// 注入固定种子可获得完全确定的数据与查询序列
	Seed int64

	// PayloadRatio 负载大小上限与块大小的比值，默认 0.5
	PayloadRatio float64

	// TapeOptions 透传给磁带设备的配置
	TapeOptions []device.Option
}

// Option 定义 Options 的配置函数
type Option func(*Options)

// WithSeed 设置随机数种子
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithPayloadRatio 设置负载大小上限比值
func WithPayloadRatio(ratio float64) Option {
	return func(o *Options) {
		o.PayloadRatio = ratio
	}
}

// WithTapeOptions 透传磁带设备配置
func WithTapeOptions(opts ...device.Option) Option {
	return func(o *Options) {
		o.TapeOptions = append(o.TapeOptions, opts...)
	}
}

// New 创建一个模拟器
// 参数：
//   - blockSize: 磁带块大小（字节）
//   - opts: 配置选项
//
// 返回：
//   - *Simulator: 模拟器指针
func New(blockSize int, opts ...Option) *Simulator {
	options := &Options{
		PayloadRatio: 0.5,
	}
	for _, opt := range opts {
		opt(options)
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Simulator{
		tape:         device.NewTape(blockSize, options.TapeOptions...),
		rng:          rand.New(rand.NewSource(seed)),
		payloadRatio: options.PayloadRatio,
	}
}

// SetStrategy 设置当前索引策略
func (s *Simulator) SetStrategy(st strategy.Strategy) {
	s.strategy = st
}

// Tape 返回模拟器持有的磁带设备
func (s *Simulator) Tape() *device.Tape {
	return s.tape
}

// WorkloadFingerprint 返回当前数据集的指纹
func (s *Simulator) WorkloadFingerprint() uint32 {
	return s.fingerprint
}

// GenerateWorkload 重置磁带并生成测试数据
// ID 均匀分布在 [1, device.IDSpace]，取值空间足够大使自然冲突罕见但
// 可能发生；负载大小均匀分布在 [1, blockSize*payloadRatio]，内容为
// 随机字节，仅用于让传输耗时贴近真实。同时计算数据集的 CRC32 指纹
// 参数：
//   - blockCount: 数据块数
//   - payloadRatio: 负载比值，非正值时沿用模拟器配置
func (s *Simulator) GenerateWorkload(blockCount int, payloadRatio float64) {
	if payloadRatio <= 0 {
		payloadRatio = s.payloadRatio
	}
	s.tape.Reset()

	maxPayload := int(float64(s.tape.BlockSize()) * payloadRatio)
	if maxPayload < 1 {
		maxPayload = 1
	}

	h := crc32.NewIEEE()
	var meta [12]byte
	for i := 0; i < blockCount; i++ {
		id := uint64(s.rng.Int63n(int64(device.IDSpace))) + 1
		payload := make([]byte, s.rng.Intn(maxPayload)+1)
		s.rng.Read(payload)

		s.tape.Write(device.NewBlock(id, payload))

		binary.LittleEndian.PutUint64(meta[0:8], id)
		binary.LittleEndian.PutUint32(meta[8:12], uint32(len(payload)))
		h.Write(meta[:])
	}
	s.fingerprint = h.Sum32()
}

// GenerateQueries 从模拟器的随机数流生成查询 ID 序列
// 与数据 ID 同空间取值，既会命中已有数据也会包含未写入的 ID
// 参数：
//   - count: 查询数
//
// 返回：
//   - []uint64: 查询 ID 序列
func (s *Simulator) GenerateQueries(count int) []uint64 {
	queries := make([]uint64, count)
	for i := range queries {
		queries[i] = uint64(s.rng.Int63n(int64(device.IDSpace))) + 1
	}
	return queries
}

// RunSimulation 对当前策略执行一次完整的模拟运行
// 可选重新生成数据；先构建索引，再顺序解析每个查询，累加访问耗时，
// 任何耗时非零的查询计为一次寻道。结果追加到结果日志并返回
// 参数：
//   - blockCount: 数据块数（仅在重新生成时使用）
//   - queries: 查询 ID 序列
//   - regenerate: 是否重新生成数据
//
// 返回：
//   - Result: 本次运行的结果
//   - error: 未设置策略返回 ErrNoStrategy，设备级错误向上传播
func (s *Simulator) RunSimulation(blockCount int, queries []uint64, regenerate bool) (Result, error) {
	if s.strategy == nil {
		return Result{}, ErrNoStrategy
	}

	if regenerate {
		s.GenerateWorkload(blockCount, 0)
	}

	buildTime, err := s.strategy.BuildIndex(s.tape)
	if err != nil {
		return Result{}, fmt.Errorf("构建索引失败: %w", err)
	}

	res := Result{
		RunID:               uuid.NewString(),
		StrategyName:        s.strategy.Name(),
		IndexBuildTime:      buildTime,
		WorkloadFingerprint: s.fingerprint,
	}

	for _, id := range queries {
		_, elapsed, err := s.strategy.FindBlock(s.tape, id)
		if err != nil {
			return Result{}, fmt.Errorf("查找块 %d 失败: %w", id, err)
		}
		res.TotalAccessTime += elapsed
		res.TotalBlocksAccessed++
		if elapsed > 0 {
			res.TotalSeeks++
		}
	}

	if res.TotalBlocksAccessed > 0 {
		res.AverageAccessTime = res.TotalAccessTime / float64(res.TotalBlocksAccessed)
	}

	s.results = append(s.results, res)
	observeResult(res)
	return res, nil
}

// RunComparison 在同一份数据上依次评估多个策略
// 数据只在入口生成一次，之后绝不重新生成：所有策略面对完全相同的
// 磁带内容和查询序列，结果才具有可比性
// 参数：
//   - blockCount: 数据块数
//   - queries: 查询 ID 序列
//   - names: 策略名称列表
//
// 返回：
//   - []Result: 每个策略一条结果，顺序与 names 一致
//   - error: 策略名无法识别或运行失败
func (s *Simulator) RunComparison(blockCount int, queries []uint64, names []string) ([]Result, error) {
	s.GenerateWorkload(blockCount, 0)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		st, err := strategy.Create(name)
		if err != nil {
			return nil, err
		}
		s.strategy = st

		res, err := s.RunSimulation(blockCount, queries, false)
		if err != nil {
			return nil, fmt.Errorf("策略 %s 运行失败: %w", name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Results 返回结果日志的副本
// 日志只增不减：模拟器从不丢弃或重排历史结果
func (s *Simulator) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// BenchmarkIndexBuild 测量索引构建的真实墙钟耗时（毫秒）
// 与虚拟时间模型无关，用于 benchmark 模式的 CSV 输出
// 参数：
//   - blockCount: 数据块数
//
// 返回：
//   - float64: 构建耗时（毫秒）
//   - error: 未设置策略或构建失败
func (s *Simulator) BenchmarkIndexBuild(blockCount int) (float64, error) {
	if s.strategy == nil {
		return 0, ErrNoStrategy
	}
	s.GenerateWorkload(blockCount, 0)

	start := time.Now()
	if _, err := s.strategy.BuildIndex(s.tape); err != nil {
		return 0, fmt.Errorf("构建索引失败: %w", err)
	}
	return float64(time.Since(start)) / float64(time.Millisecond), nil
}

// BenchmarkQueries 测量查询序列的真实墙钟耗时（毫秒）
// 参数：
//   - queries: 查询 ID 序列
//
// 返回：
//   - float64: 查询总耗时（毫秒）
//   - error: 未设置策略或查找失败
func (s *Simulator) BenchmarkQueries(queries []uint64) (float64, error) {
	if s.strategy == nil {
		return 0, ErrNoStrategy
	}

	start := time.Now()
	for _, id := range queries {
		if _, _, err := s.strategy.FindBlock(s.tape, id); err != nil {
			return 0, fmt.Errorf("查找块 %d 失败: %w", id, err)
		}
	}
	return float64(time.Since(start)) / float64(time.Millisecond), nil
}
