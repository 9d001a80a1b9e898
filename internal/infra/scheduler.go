package infra

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs one job on a fixed interval
type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	job      func()
	stopOnce sync.Once
}

// NewScheduler creates a scheduler that fires job every interval once started
func NewScheduler(interval time.Duration, job func()) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		interval: interval,
		job:      job,
	}
}

// Start arms the repeating timer. The first run happens one full interval
// after Start, not immediately.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.job); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	s.cron.Start()
	log.Printf("[OK] Scheduler started (%s)", spec)

	return nil
}

// Stop disarms the timer. Runs already in flight finish on their own;
// repeated calls are no-ops.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cron.Stop()
		log.Println("[OK] Scheduler stopped")
	})
}
