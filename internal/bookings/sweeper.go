package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/logger"
)

// Sweeper periodically cancels pending bookings whose payment window lapsed,
// releasing their seat claims.
type Sweeper struct {
	service   Service
	scheduler gocron.Scheduler
	interval  time.Duration
}

func NewSweeper(service Service, interval time.Duration) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create sweeper scheduler: %w", err)
	}
	return &Sweeper{
		service:   service,
		scheduler: scheduler,
		interval:  interval,
	}, nil
}

func (s *Sweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.sweep),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule pending booking sweep: %w", err)
	}
	s.scheduler.Start()
	return nil
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	swept, err := s.service.SweepExpiredPending(ctx)
	if err != nil {
		logger.GetDefault().WithError(err).Error("pending booking sweep failed")
		return
	}
	if swept > 0 {
		logger.GetDefault().WithFields(map[string]interface{}{
			"released_bookings": swept,
		}).Info("pending booking sweep released expired claims")
	}
}

func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}
