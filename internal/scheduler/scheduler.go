// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pennaFedele/gambarie-summer-events/internal/service"
)

// AuditRetention is how long audit log rows are kept.
const AuditRetention = 365 * 24 * time.Hour

// Scheduler handles recurring maintenance tasks, currently audit log
// pruning.
type Scheduler struct {
	audit  *service.AuditService
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(audit *service.AuditService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		audit:  audit,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduler with a nightly audit log pruning job.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.PruneAuditLog(context.Background()); err != nil {
			s.logger.Error("failed to prune audit log", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneAuditLog deletes audit rows past the retention window.
func (s *Scheduler) PruneAuditLog(ctx context.Context) error {
	if err := s.audit.DeleteOlderThan(ctx, AuditRetention); err != nil {
		return err
	}
	s.logger.Info("audit log pruned", "retention", AuditRetention.String())
	return nil
}
