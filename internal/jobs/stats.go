package jobs

import (
	"context"

	"github.com/emrgen/doctrack/internal/repository"
	"github.com/emrgen/doctrack/internal/stats"
	"github.com/sirupsen/logrus"
)

// StatsTask logs the category and status distributions.
type StatsTask struct {
	repo *repository.Repository
	cron string
}

func NewStatsTask(schedule string, repo *repository.Repository) *StatsTask {
	return &StatsTask{
		repo: repo,
		cron: schedule,
	}
}

func (s *StatsTask) Name() string {
	return "stats"
}

func (s *StatsTask) Schedule() string {
	return s.cron
}

func (s *StatsTask) Run() {
	docs, err := s.repo.Load(context.Background())
	if err != nil {
		logrus.Errorf("stats: %v", err)
		return
	}

	fields := logrus.Fields{"documents": len(docs)}
	for _, b := range stats.CategoryDistribution(docs).Buckets {
		fields["category."+b.Label] = b.Count
	}
	for _, b := range stats.StatusDistribution(docs).Buckets {
		fields["status."+b.Label] = b.Count
	}

	logrus.WithFields(fields).Info("document stats")
}
