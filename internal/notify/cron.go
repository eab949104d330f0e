package notify

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the
// duration until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	d := time.Until(sched.Next(time.Now()))
	if d < 0 {
		return 0
	}
	return d
}

// RunDigestSchedule sends the daily digest on the given cron schedule
// until ctx is cancelled. An unparseable expression disables the
// schedule with a log line rather than failing the server.
func RunDigestSchedule(ctx context.Context, db *gorm.DB, n *Notifier, expr string) {
	if _, err := cronParser.Parse(expr); err != nil {
		log.Printf("notify: invalid digest cron %q: %v, digest disabled", expr, err)
		return
	}

	for {
		wait := nextCronDuration(expr)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		evt, err := BuildDailyDigest(db)
		if err != nil {
			log.Printf("notify: build digest: %v", err)
			continue
		}
		if evt == nil {
			continue
		}
		n.Notify(ctx, *evt)
	}
}
