package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ImportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "carpet_import_duration_seconds",
		Help:    "单次 CSV 导入耗时",
		Buckets: prometheus.DefBuckets,
	})

	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carpet_import_rows_total",
		Help: "导入行计数，按结果区分",
	}, []string{"result"})

	ImportCommitErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carpet_import_commit_errors_total",
		Help: "批次提交失败次数",
	})

	ScanDecodes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carpet_scan_decodes_total",
		Help: "扫码解码结果，按结果区分",
	}, []string{"result"})

	IndexEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "carpet_index_entries",
		Help: "搜索索引当前条目数",
	})
)

// MustRegister 注册指标，可在 main 中调用。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(ImportDuration, ImportRows, ImportCommitErrors, ScanDecodes, IndexEntries)
}
