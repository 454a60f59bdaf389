package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/tasks"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer adds a task to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// StructureAuditScheduler periodically enqueues a structure audit followed by
// a cleanup of old audit reports.
type StructureAuditScheduler struct {
	queue         Enqueuer
	schedule      string
	retentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStructureAuditScheduler creates a new scheduler instance
func NewStructureAuditScheduler(queue Enqueuer, schedule string, retentionDays int) *StructureAuditScheduler {
	return &StructureAuditScheduler{
		queue:         queue,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the audit job and starts the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *StructureAuditScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue(context.Background(), entities.AuditTriggerSchedule)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule structure audit: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule)
	log.Printf("Structure audit scheduler: started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron loop and waits for a running job to return.
func (s *StructureAuditScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil
	s.cron.Remove(s.entryID)

	log.Printf("Structure audit scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *StructureAuditScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next audit will be enqueued
func (s *StructureAuditScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *StructureAuditScheduler) enqueue(ctx context.Context, trigger entities.AuditTrigger) {
	id, err := s.queue.Enqueue(ctx, tasks.StructureAuditTask{Trigger: trigger})
	if err != nil {
		log.Printf("Structure audit scheduler: failed to enqueue audit: %v", err)
		return
	}
	log.Printf("Structure audit scheduler: enqueued audit task %s", id)

	if _, err := s.queue.Enqueue(ctx, tasks.CleanupStructureAuditsTask{RetentionDays: s.retentionDays}); err != nil {
		log.Printf("Structure audit scheduler: failed to enqueue report cleanup: %v", err)
	}
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// NextRunTime calculates when the schedule fires next.
func NextRunTime(schedule string) (*time.Time, error) {
	sched, err := scheduleParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
