package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"fitlink/api/internal/service"
)

// Scheduler runs the periodic token sweep. Each sweep that removes rows
// publishes an event to the tokens:swept stream so other consumers can
// react without polling the ledger.
type Scheduler struct {
	cron     *cron.Cron
	auth     *service.AuthService
	events   *redis.Client
	schedule string
	log      zerolog.Logger
}

func NewScheduler(auth *service.AuthService, events *redis.Client, schedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		auth:     auth,
		events:   events,
		schedule: schedule,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweepTokens); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) sweepTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.auth.SweepExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled token sweep failed")
		return
	}
	if deleted == 0 {
		return
	}
	if err := s.publishSwept(ctx, deleted); err != nil {
		s.log.Warn().Err(err).Msg("publish sweep event failed")
	}
}

func (s *Scheduler) publishSwept(ctx context.Context, deleted int64) error {
	if s.events == nil {
		return nil
	}
	_, err := s.events.XAdd(ctx, &redis.XAddArgs{
		Stream: "tokens:swept",
		Values: map[string]any{
			"deleted":  deleted,
			"swept_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Result()
	return err
}
