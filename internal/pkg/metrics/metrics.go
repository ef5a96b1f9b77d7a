package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 分数刷新来源
const (
	TriggerView      = "view"
	TriggerLike      = "like"
	TriggerReview    = "review"
	TriggerManual    = "manual"
	TriggerReconcile = "reconcile"
)

var (
	// ScoreRefreshesTotal 按触发来源统计分数重算次数
	ScoreRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_score_refreshes_total",
			Help: "Total number of place score recomputations",
		},
		[]string{"trigger"},
	)

	// PlaceQueryDuration 按筛选形态统计列表查询耗时
	PlaceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripmate_place_query_duration_seconds",
			Help:    "Duration of place list queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"shape", "sort"},
	)

	// LikeTogglesTotal 点赞切换结果
	LikeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_like_toggles_total",
			Help: "Total number of like toggles by resulting state",
		},
		[]string{"result"},
	)

	// SearchFallbacksTotal 搜索索引不可用时返回空结果的次数
	SearchFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripmate_search_fallbacks_total",
			Help: "Total number of searches answered empty because the index failed",
		},
	)

	// JobRunsTotal 定时任务执行结果
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_job_runs_total",
			Help: "Total number of scheduled job runs by outcome",
		},
		[]string{"job", "outcome"},
	)
)

func RecordScoreRefresh(trigger string) {
	ScoreRefreshesTotal.WithLabelValues(trigger).Inc()
}

func RecordPlaceQuery(shape, sort string, d time.Duration) {
	PlaceQueryDuration.WithLabelValues(shape, sort).Observe(d.Seconds())
}

func RecordLikeToggle(added bool) {
	if added {
		LikeTogglesTotal.WithLabelValues("added").Inc()
		return
	}
	LikeTogglesTotal.WithLabelValues("removed").Inc()
}

func RecordSearchFallback() {
	SearchFallbacksTotal.Inc()
}

func RecordJobRun(job string, err error) {
	if err != nil {
		JobRunsTotal.WithLabelValues(job, "error").Inc()
		return
	}
	JobRunsTotal.WithLabelValues(job, "ok").Inc()
}
