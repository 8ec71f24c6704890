package simulator

// Result 是一次模拟运行产出的只读结果快照
// 追加到模拟器持有的结果日志后不再修改
type Result struct {
	// RunID 本次运行的唯一标识
	RunID string `json:"run_id"`

	// StrategyName 策略名称
	StrategyName string `json:"strategy_name"`

	// IndexBuildTime 索引构建耗时（虚拟秒）
	IndexBuildTime float64 `json:"index_build_time"`

	// AverageAccessTime 平均访问耗时（虚拟秒）
	AverageAccessTime float64 `json:"average_access_time"`

	// TotalSeeks 产生了物理访问（耗时非零）的查询次数
	TotalSeeks int `json:"total_seeks"`

	// TotalBlocksAccessed 已执行的查询总数
	TotalBlocksAccessed int `json:"total_blocks_accessed"`

	// TotalAccessTime 访问总耗时（虚拟秒）
	TotalAccessTime float64 `json:"total_access_time"`

	// WorkloadFingerprint 本次运行所用数据集的指纹
	// 对比运行中各策略的指纹必须一致，保证公平性可被校验
	WorkloadFingerprint uint32 `json:"workload_fingerprint"`
}
