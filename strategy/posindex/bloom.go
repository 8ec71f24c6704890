package posindex

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// BloomFilter 是布隆过滤器的并发安全包装类
// 用于在访问索引前快速判断一个 ID 是否可能被记录过：
// 返回 false 的 ID 一定不存在，查找可以零成本短路
type BloomFilter struct {
	filter *bloom.BloomFilter
	mu     sync.RWMutex
}

// NewBloomFilter 创建一个新的布隆过滤器
// 参数：
//   - n: 预期存储的元素数量
//   - fp: 期望的误判率
//
// 返回：
//   - *BloomFilter: 布隆过滤器指针
func NewBloomFilter(n uint, fp float64) *BloomFilter {
	// 使用 NewWithEstimates 自动计算最优的 m 和 k
	return &BloomFilter{
		filter: bloom.NewWithEstimates(n, fp),
	}
}

// idBytes 将 ID 编码为过滤器的键
func idBytes(id uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, id)
	return buf
}

// Add 添加一个 ID 到布隆过滤器
// 参数：
//   - id: 要添加的数据 ID
func (bf *BloomFilter) Add(id uint64) {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	bf.filter.Add(idBytes(id))
}

// Test 测试一个 ID 是否可能存在于布隆过滤器中
// 参数：
//   - id: 要测试的数据 ID
//
// 返回：
//   - bool: true 表示可能存在，false 表示一定不存在
func (bf *BloomFilter) Test(id uint64) bool {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	return bf.filter.Test(idBytes(id))
}

// Reset 重置布隆过滤器
func (bf *BloomFilter) Reset() {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	m := bf.filter.Cap()
	k := bf.filter.K()
	bf.filter = bloom.New(m, k)
}

// K 返回布隆过滤器使用的哈希函数数量
func (bf *BloomFilter) K() uint {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	return bf.filter.K()
}

// Cap 返回布隆过滤器的容量
func (bf *BloomFilter) Cap() uint {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	return bf.filter.Cap()
}
