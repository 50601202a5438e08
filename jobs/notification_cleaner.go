package jobs

import (
	"context"
	"log"
	"time"

	"ecocollect/repository"
)

// NotificationCleaner removes read notifications past the retention window.
// The per-recipient cap already bounds the log size; this sweep keeps the
// collection from accumulating read entries for dormant accounts.
type NotificationCleaner struct {
	notifications repository.NotificationRepository
	retention     time.Duration
	interval      time.Duration
	logger        *log.Logger
}

func NewNotificationCleaner(notifications repository.NotificationRepository, retention, interval time.Duration) *NotificationCleaner {
	return &NotificationCleaner{
		notifications: notifications,
		retention:     retention,
		interval:      interval,
		logger:        log.New(log.Writer(), "[NOTIFICATION_CLEANER] ", log.LstdFlags),
	}
}

// Start runs the cleanup loop until ctx is cancelled. Call in a goroutine.
func (nc *NotificationCleaner) Start(ctx context.Context) {
	nc.logger.Println("Starting notification cleanup job...")

	nc.runCleanup(ctx)

	ticker := time.NewTicker(nc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			nc.runCleanup(ctx)
		case <-ctx.Done():
			nc.logger.Println("Notification cleanup job stopped")
			return
		}
	}
}

func (nc *NotificationCleaner) runCleanup(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-nc.retention)
	deleted, err := nc.notifications.DeleteReadOlderThan(sweepCtx, cutoff)
	if err != nil {
		nc.logger.Printf("Error cleaning up notifications: %v", err)
		return
	}
	if deleted > 0 {
		nc.logger.Printf("Cleaned up %d read notifications older than %v", deleted, nc.retention)
	}
}
