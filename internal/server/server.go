package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/emrgen/doctrack/internal/config"
	"github.com/emrgen/doctrack/internal/jobs"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/sirupsen/logrus"
)

// Server represents the server
type Server struct {
	cfg *config.Config
}

// NewServer creates a new server
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Start starts the server and blocks until it is interrupted
func (s *Server) Start() {
	if err := Start(s.cfg); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start opens the repository, schedules the background jobs and serves the
// HTTP API until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	httpPort := ":" + cfg.Server.HTTPPort

	repo, err := repository.Open(cfg)
	if err != nil {
		return err
	}

	if err := repo.Migrate(context.TODO()); err != nil {
		return err
	}

	// repair the store once before accepting requests
	docs, err := repo.Load(context.TODO())
	if err != nil {
		return err
	}
	logrus.Infof("loaded %d documents from %s store (%s identities)", len(docs), cfg.Store.Driver, repo.Identity())

	executor := jobs.NewTaskExecutor(cronJobs(cfg.Jobs, repo)...)
	if err := executor.Run(); err != nil {
		return err
	}
	defer executor.Stop()

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	restServer := &http.Server{
		Handler:           NewHandler(repo),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting rest server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest server: %v", err)
			}
		}
		logrus.Infof("rest server stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := restServer.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping rest server: %v", err)
	}

	wg.Wait()

	return nil
}

func cronJobs(cfg config.JobsConfig, repo *repository.Repository) []jobs.CronJob {
	var cronJobs []jobs.CronJob
	if cfg.Backfill != "" {
		cronJobs = append(cronJobs, jobs.NewBackfillTask(cfg.Backfill, repo))
	}
	if cfg.Stats != "" {
		cronJobs = append(cronJobs, jobs.NewStatsTask(cfg.Stats, repo))
	}

	return cronJobs
}
