package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Reloader interface {
	Reload(ctx context.Context) error
}

type Sweeper interface {
	Sweep(maxIdle time.Duration) int
}

type Purger interface {
	Purge() int
}

type Config struct {
	RateRefreshSchedule  string
	SessionSweepSchedule string
	SessionIdleTimeout   time.Duration
}

// Scheduler runs the periodic maintenance jobs. A nil dependency skips its job.
type Scheduler struct {
	cron   *cron.Cron
	cfg    Config
	logger zerolog.Logger

	rates    Reloader
	sessions Sweeper
	handoff  Purger
}

func New(cfg Config, rates Reloader, sessions Sweeper, handoff Purger) *Scheduler {
	logger := log.With().Str("component", "scheduler").Logger()
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(&logger))))

	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		logger:   logger,
		rates:    rates,
		sessions: sessions,
		handoff:  handoff,
	}
}

func (s *Scheduler) Start() error {
	if s.rates != nil && s.cfg.RateRefreshSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.RateRefreshSchedule, s.RefreshRates); err != nil {
			return err
		}
		s.logger.Info().Str("schedule", s.cfg.RateRefreshSchedule).Msg("scheduled rate refresh job")
	}

	if s.cfg.SessionSweepSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.SessionSweepSchedule, s.Sweep); err != nil {
			return err
		}
		s.logger.Info().Str("schedule", s.cfg.SessionSweepSchedule).Msg("scheduled session sweep job")
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) RefreshRates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.rates.Reload(ctx); err != nil {
		s.logger.Error().Err(err).Msg("rate refresh failed")
		return
	}
	s.logger.Info().Dur("took", time.Since(start)).Msg("rates refreshed")
}

func (s *Scheduler) Sweep() {
	if s.sessions != nil {
		if n := s.sessions.Sweep(s.cfg.SessionIdleTimeout); n > 0 {
			s.logger.Info().Int("closed", n).Msg("idle calculator sessions closed")
		}
	}
	if s.handoff != nil {
		if n := s.handoff.Purge(); n > 0 {
			s.logger.Debug().Int("purged", n).Msg("expired handoff entries purged")
		}
	}
}
