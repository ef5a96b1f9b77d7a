package cron

import log "log/slog"

// InitCron 注册全部任务后启动调度，没有可执行任务时不启动引擎
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	if mgr.Entries() == 0 {
		log.Warn("no cron jobs registered, scheduler idle")
		return nil
	}
	log.Info("Cron Jobs starting...", "entries", mgr.Entries())
	mgr.Start()
	return nil
}
