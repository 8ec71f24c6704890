package posindex

import (
	"encoding/binary"

	"github.com/plar/go-adaptive-radix-tree"
)

// ARTIndex 是基于自适应基数树（Adaptive Radix Tree）的索引实现
// ID 以大端字节序编码为树的键
type ARTIndex struct {
	tree art.Tree
}

// NewARTIndex 创建一个新的 ART 索引实例
// 返回：
//   - *ARTIndex: ART 索引指针
func NewARTIndex() *ARTIndex {
	return &ARTIndex{
		tree: art.New(),
	}
}

// idKey 将 ID 编码为 ART 的键
func idKey(id uint64) art.Key {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return art.Key(buf)
}

// Put 写入 ID 到定位信息的映射
// 参数：
//   - id: 数据 ID
//   - pos: 定位信息指针
func (idx *ARTIndex) Put(id uint64, pos *Position) {
	idx.tree.Insert(idKey(id), pos)
}

// Get 根据 ID 从 ART 索引获取定位信息
// 参数：
//   - id: 数据 ID
// 返回：
//   - *Position: 定位信息指针，不存在返回 nil
func (idx *ARTIndex) Get(id uint64) *Position {
	value, found := idx.tree.Search(idKey(id))
	if !found {
		return nil
	}
	return value.(*Position)
}

// Size 返回 ART 索引中的条目数量
// 返回：
//   - int: 条目数量
func (idx *ARTIndex) Size() int {
	return idx.tree.Size()
}

// Close 关闭 ART 索引
func (idx *ARTIndex) Close() {
	// ART 树没有需要关闭的资源，GC 会自动回收
}

// 确保 ARTIndex 实现了 Index 接口
var _ Index = (*ARTIndex)(nil)
