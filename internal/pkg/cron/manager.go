package cron

import (
	"Tripmate/internal/api/config"
	"context"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// ScheduledJob 一个带表达式的定时任务，Spec 为空时不注册
type ScheduledJob struct {
	Name string
	Spec string
	Job  cron.Job
}

type Manager struct {
	engine *cron.Cron
	jobs   []ScheduledJob
}

func NewCronManager(jobs ...ScheduledJob) *Manager {
	cronLogger := cron.PrintfLogger(log.NewLogLogger(log.Default().Handler(), log.LevelInfo))
	return &Manager{
		engine: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		jobs: jobs,
	}
}

// DefaultJobs 按配置组装任务表达式，import 为 nil 时不启用导入任务
func DefaultJobs(cfg config.CronConfig, index, reconcile, snapshot, imp cron.Job) []ScheduledJob {
	jobs := []ScheduledJob{
		{Name: "place_index", Spec: cfg.IndexSync, Job: index},
		{Name: "score_reconcile", Spec: cfg.ScoreReconcile, Job: reconcile},
		{Name: "place_metric", Spec: cfg.MetricSnapshot, Job: snapshot},
	}
	if imp != nil {
		jobs = append(jobs, ScheduledJob{Name: "place_import", Spec: cfg.PlaceImport, Job: imp})
	}
	return jobs
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	for _, j := range s.jobs {
		if j.Spec == "" || j.Job == nil {
			log.Warn("cron job disabled", "job", j.Name)
			continue
		}
		if _, err := s.engine.AddJob(j.Spec, j.Job); err != nil {
			return err
		}
		log.Info("cron job registered", "job", j.Name, "spec", j.Spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束或 ctx 超时
func (s *Manager) Stop(ctx context.Context) {
	log.Info("Cron 定时任务引擎停止")
	done := s.engine.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Warn("cron jobs still running at shutdown")
	}
}

// Entries 已注册的任务数量
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}
