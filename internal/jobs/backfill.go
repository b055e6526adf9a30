package jobs

import (
	"context"
	"time"

	"github.com/emrgen/doctrack/internal/repository"
	"github.com/sirupsen/logrus"
)

// BackfillTask reloads the store on a schedule so that records written by
// other tools get their tags and status without waiting for a request.
type BackfillTask struct {
	repo     *repository.Repository
	cron     string
	timeout  time.Duration
	lastSize int
}

func NewBackfillTask(schedule string, repo *repository.Repository) *BackfillTask {
	return &BackfillTask{
		repo:    repo,
		cron:    schedule,
		timeout: 30 * time.Second,
	}
}

func (b *BackfillTask) Name() string {
	return "backfill"
}

func (b *BackfillTask) Schedule() string {
	return b.cron
}

func (b *BackfillTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if _, err := b.repo.Refresh(ctx); err != nil {
		logrus.Warnf("backfill: %v", err)
	}

	docs, err := b.repo.Reload(ctx)
	if err != nil {
		logrus.Errorf("backfill failed: %v", err)
		return
	}

	if len(docs) != b.lastSize {
		logrus.Debugf("backfill: %d documents", len(docs))
	}
	b.lastSize = len(docs)
}
