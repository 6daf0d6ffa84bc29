package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector 将 Stats 导出为 Prometheus 指标
//
// 每个计数器对应一个带 event_type 标签的 counter：
//
//	<namespace>_observers_registered_total{event_type="..."}
//	<namespace>_observers_unregistered_total
//	<namespace>_events_posted_total
//	<namespace>_deliveries_total
//	<namespace>_stale_deliveries_total
//	<namespace>_observers_pruned_total
type Collector struct {
	stats *Stats

	registered   *prometheus.Desc
	unregistered *prometheus.Desc
	posted       *prometheus.Desc
	delivered    *prometheus.Desc
	stale        *prometheus.Desc
	pruned       *prometheus.Desc
}

// 确保 Collector 实现 prometheus.Collector 接口
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector 创建 Collector
func NewCollector(namespace string, stats *Stats) *Collector {
	labels := []string{"event_type"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}

	return &Collector{
		stats:        stats,
		registered:   desc("observers_registered_total", "Observers registered per event type."),
		unregistered: desc("observers_unregistered_total", "Observer records removed by explicit unregistration."),
		posted:       desc("events_posted_total", "Events posted per event type."),
		delivered:    desc("deliveries_total", "Callbacks handed to an executor."),
		stale:        desc("stale_deliveries_total", "Deliveries skipped because the subscriber was reclaimed."),
		pruned:       desc("observers_pruned_total", "Stale observer records pruned."),
	}
}

// Describe 实现 prometheus.Collector 接口
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.registered
	ch <- c.unregistered
	ch <- c.posted
	ch <- c.delivered
	ch <- c.stale
	ch <- c.pruned
}

// Collect 实现 prometheus.Collector 接口
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for typ, snap := range c.stats.ByType() {
		ch <- prometheus.MustNewConstMetric(c.registered, prometheus.CounterValue, float64(snap.Registered), typ)
		ch <- prometheus.MustNewConstMetric(c.unregistered, prometheus.CounterValue, float64(snap.Unregistered), typ)
		ch <- prometheus.MustNewConstMetric(c.posted, prometheus.CounterValue, float64(snap.Posted), typ)
		ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(snap.Delivered), typ)
		ch <- prometheus.MustNewConstMetric(c.stale, prometheus.CounterValue, float64(snap.Stale), typ)
		ch <- prometheus.MustNewConstMetric(c.pruned, prometheus.CounterValue, float64(snap.Pruned), typ)
	}
}
