package simulator

import "errors"

// ErrNoStrategy 表示在未选择索引策略时尝试运行模拟
var ErrNoStrategy = errors.New("no index strategy set")
