package config

// BusConfig 总线配置
type BusConfig struct {
	// PruneStale 发布时遇到已回收的观察者后，是否顺带移除这些记录
	//
	// 关闭时保留"直到显式注销才移除"的语义：失效记录会一直留在序列中，
	// 每次发布都被跳过并触发诊断。
	PruneStale bool `json:"prune_stale"`
}

// DefaultBusConfig 返回默认总线配置
func DefaultBusConfig() BusConfig {
	return BusConfig{
		PruneStale: true,
	}
}

// Validate 验证总线配置
func (c BusConfig) Validate() error {
	return nil
}
