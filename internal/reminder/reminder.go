package reminder

import (
	"context"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"gestion-astreinte-backend/config"
	"gestion-astreinte-backend/internal/notification"
	"gestion-astreinte-backend/internal/store"
)

// Service drives the period lifecycle in the background: scheduled periods
// whose start instant has been reached become active (and their service's
// subscribers get notified), active periods past their end become inactive.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
	now        func() time.Time
}

// NewService creates and initializes a new reminder service.
func NewService(cfg *config.Config, s store.Store) *Service {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, s.DB(), &webpushOptions),
		now:        time.Now,
	}
}

// Run starts the activation loop. It is a scheduled task with explicit
// cancellation: the timer stops and the workers drain when ctx is done.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		log.Println("Reminder service is disabled. Not starting.")
		return
	}
	log.Println("Starting reminder service...")

	s.workerPool.Start(ctx)

	s.TickOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service shutting down.")
			return
		case <-timer.C:
			s.TickOnce(ctx)
			timer.Reset(s.cfg.Reminder.Interval)
		}
	}
}

// TickOnce performs a single activation/expiry cycle.
func (s *Service) TickOnce(ctx context.Context) {
	now := s.now()

	activated, err := s.store.ActivateDuePeriodes(ctx, now)
	if err != nil {
		log.Printf("Error activating due periodes: %v", err)
	}
	if len(activated) > 0 {
		log.Printf("Dispatching notifications for %d activated periodes", len(activated))
		for _, periodeID := range activated {
			s.workerPool.Dispatch(periodeID)
		}
	}

	expired, err := s.store.ExpirePeriodes(ctx, now)
	if err != nil {
		log.Printf("Error expiring periodes: %v", err)
	}
	if expired > 0 {
		log.Printf("Marked %d periodes inactive", expired)
	}
}
