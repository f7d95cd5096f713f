package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/config"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

// ReconcileWorker re-derives user standings from the ledger on a schedule.
// The insert trigger keeps standings current in the normal path; this heals
// drift after manual fixes or restores.
type ReconcileWorker struct {
	repo *repository.Repository
	cron *cron.Cron
	log  *logrus.Logger
}

func NewReconcileWorker(repo *repository.Repository, log *logrus.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		repo: repo,
		cron: cron.New(),
		log:  log,
	}
}

func (w *ReconcileWorker) Start() error {
	if _, err := w.cron.AddFunc(config.ReconcileSchedule, w.run); err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

func (w *ReconcileWorker) Stop() {
	w.cron.Stop()
}

func (w *ReconcileWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := w.repo.ReconcileStandings(ctx)
	if err != nil {
		w.log.WithError(err).Error("standing reconciliation failed")
		return
	}

	w.log.WithField("updated", updated).Info("standing reconciliation completed")
}
