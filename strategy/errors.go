package strategy

import "errors"

// ErrUnknownStrategy 表示工厂无法识别的策略名称
var ErrUnknownStrategy = errors.New("unknown index strategy")
