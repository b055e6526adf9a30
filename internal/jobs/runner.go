package jobs

import (
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

type CronJob interface {
	Name() string
	Schedule() string
	Job
}

// TaskExecutor runs cron jobs. A job still running when its next tick fires
// is skipped for that tick.
type TaskExecutor struct {
	cron     *cron.Cron
	cronJobs []CronJob
	running  mapset.Set[string]
	mu       sync.Mutex
}

func NewTaskExecutor(cronJobs ...CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:     cron.New(),
		cronJobs: cronJobs,
		running:  mapset.NewThreadUnsafeSet[string](),
	}
}

// Run schedules the jobs and starts the cron in its own goroutine.
func (t *TaskExecutor) Run() error {
	for _, job := range t.cronJobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.execute(job)
		})
		if err != nil {
			return fmt.Errorf("failed to add task %s to cron: %w", job.Name(), err)
		}
		logrus.Infof("scheduled task %s: %s", job.Name(), job.Schedule())
	}

	t.cron.Start()
	return nil
}

// execute runs job unless a previous run is still going. It reports whether
// the job ran.
func (t *TaskExecutor) execute(job CronJob) bool {
	t.mu.Lock()
	if t.running.Contains(job.Name()) {
		t.mu.Unlock()
		logrus.Warnf("task %s is already running", job.Name())
		return false
	}
	t.running.Add(job.Name())
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.running.Remove(job.Name())
	}()

	job.Run()
	return true
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
