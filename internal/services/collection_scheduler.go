package services

import (
	"context"
	"errors"
	"log"

	"github.com/robfig/cron/v3"
)

// CollectionScheduler runs CollectionService.RunOnce on a cron schedule
type CollectionScheduler struct {
	cron      *cron.Cron
	service   *CollectionService
	spec      string
	isRunning bool
}

// NewCollectionScheduler creates a new scheduler for the given cron spec
func NewCollectionScheduler(service *CollectionService, spec string) *CollectionScheduler {
	return &CollectionScheduler{
		cron:    cron.New(),
		service: service,
		spec:    spec,
	}
}

// Start registers the job and starts the cron runner. The job stops picking
// up new runs once ctx is cancelled.
func (s *CollectionScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		log.Println("Collection scheduler: starting run...")
		logs, err := s.service.RunOnce(ctx)
		switch {
		case errors.Is(err, ErrCollectionInProgress):
			log.Println("Collection scheduler: previous run still in progress, skipping")
		case err != nil:
			log.Printf("Collection scheduler: run failed: %v", err)
		default:
			log.Printf("Collection scheduler: run completed for %d platforms", len(logs))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Collection scheduler: started (cron: %s)", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CollectionScheduler) Stop() {
	if s.isRunning {
		<-s.cron.Stop().Done()
		s.isRunning = false
		log.Println("Collection scheduler: stopped")
	}
}
