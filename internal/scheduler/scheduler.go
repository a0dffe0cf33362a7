package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/gestimo/rent-service/internal/config"
	"github.com/gestimo/rent-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler drives the recurring payment jobs: the monthly generation run
// and the daily overdue sweep.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// New initializes the scheduler with the cron expressions from config
func New(cfg *config.Config, svc *service.Service, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}

	if _, err := s.cron.AddFunc(cfg.GenerateCron, s.runGeneration); err != nil {
		return nil, fmt.Errorf("invalid GENERATE_CRON %q: %w", cfg.GenerateCron, err)
	}
	if _, err := s.cron.AddFunc(cfg.OverdueCron, s.runOverdueSweep); err != nil {
		return nil, fmt.Errorf("invalid OVERDUE_CRON %q: %w", cfg.OverdueCron, err)
	}

	return s, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) runGeneration() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, err := s.svc.GenerateAll(ctx, "")
	if err != nil {
		s.log.Errorf("Scheduled payment generation failed: %v", err)
		return
	}
	s.log.Infof("Scheduled generation created %d payments", len(created))
}

func (s *Scheduler) runOverdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.svc.SweepOverdue(ctx); err != nil {
		s.log.Errorf("Overdue sweep failed: %v", err)
	}
}
