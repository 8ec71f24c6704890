package strategy

import "fmt"

// 内置策略名称
const (
	NameNone         = "none"
	NameFixed        = "fixed"
	NameHierarchical = "hierarchical"
)

// BuiltinNames 返回全部内置策略名称，顺序即默认对比顺序
func BuiltinNames() []string {
	return []string{NameNone, NameFixed, NameHierarchical}
}

// Create 根据策略名称构造策略实例
// 配置校验只在构造时发生一次：无法识别的名称立即返回错误，绝不静默回退
// 参数：
//   - name: 策略名称（none / fixed / hierarchical）
//   - params: 可选参数；零值或缺省时使用文档化默认值
//     fixed: params[0] = 索引间隔（默认 10）
//     hierarchical: params[0] = 一级间隔（默认 100），params[1] = 二级间隔（默认 10）
//
// 返回：
//   - Strategy: 策略实例
//   - error: 名称无法识别时返回 ErrUnknownStrategy
func Create(name string, params ...int) (Strategy, error) {
	p1, p2 := 0, 0
	if len(params) > 0 {
		p1 = params[0]
	}
	if len(params) > 1 {
		p2 = params[1]
	}

	switch name {
	case NameNone:
		return NewNoIndexStrategy(), nil
	case NameFixed:
		return NewFixedIntervalStrategy(p1), nil
	case NameHierarchical:
		return NewHierarchicalStrategy(p1, p2), nil
	default:
		return nil, fmt.Errorf("无法识别的索引策略 %q: %w", name, ErrUnknownStrategy)
	}
}
