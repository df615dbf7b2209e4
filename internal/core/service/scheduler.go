package service

import (
	"errors"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var ErrSchedulerStarted = errors.New("scheduler already started")

// DailyScheduler fires a job at a fixed local wall-clock time once per day.
// A tick missed while the process was down is skipped, not replayed.
type DailyScheduler struct {
	spec string
	job  func()

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

func NewDailyScheduler(spec string, job func()) *DailyScheduler {
	return &DailyScheduler{spec: spec, job: job}
}

// Start registers the cron entry and begins ticking. Starting a running
// scheduler is a configuration error.
func (s *DailyScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrSchedulerStarted
	}

	c := cron.New()
	if _, err := c.AddFunc(s.spec, s.job); err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.started = true

	log.Info().Str("spec", s.spec).Msg("daily scheduler started")
	return nil
}

// Stop halts the timer and waits for a running job to finish. No job starts
// after Stop returns.
func (s *DailyScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	<-s.cron.Stop().Done()
	s.cron = nil
	s.started = false

	log.Info().Msg("daily scheduler stopped")
}

// RunNow triggers the job immediately, outside the daily schedule. Intended
// for manual testing and operational pokes.
func (s *DailyScheduler) RunNow() {
	log.Info().Msg("manual push run triggered")
	s.job()
}
