package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ikeike55momo/schedule/internal/config"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/service"
)

// runTimeout bounds one scheduled run. A bridge call alone may take up to
// the bridge timeout.
const runTimeout = time.Minute

// Syncer is implemented by *service.SyncService.
type Syncer interface {
	SyncCalendar(ctx context.Context, userID string, mode dom.ViewMode) (service.Notification, error)
	SyncSheets(ctx context.Context, spreadsheetID, sheetRange string) (service.Notification, error)
}

// SyncScheduler runs the team calendar sync and the sheets sync on their
// cron specs. Failures are logged and the next run is attempted as usual.
type SyncScheduler struct {
	cronScheduler *cron.Cron
	syncer        Syncer
	cfg           config.SyncConfig
	calendarJob   cron.EntryID
	sheetsJob     cron.EntryID
}

// NewSyncScheduler registers a job for every non-empty spec in cfg.
func NewSyncScheduler(s Syncer, cfg config.SyncConfig, loc *time.Location) (*SyncScheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	j := &SyncScheduler{
		cronScheduler: cron.New(cron.WithLocation(loc)),
		syncer:        s,
		cfg:           cfg,
	}
	var err error
	if cfg.CalendarCron != "" {
		j.calendarJob, err = j.cronScheduler.AddFunc(cfg.CalendarCron, j.RunCalendar)
		if err != nil {
			return nil, fmt.Errorf("SYNC_CALENDAR_CRON: %w", err)
		}
	}
	if cfg.SheetsCron != "" {
		j.sheetsJob, err = j.cronScheduler.AddFunc(cfg.SheetsCron, j.RunSheets)
		if err != nil {
			return nil, fmt.Errorf("SYNC_SHEETS_CRON: %w", err)
		}
	}
	return j, nil
}

// Jobs is the number of registered jobs.
func (j *SyncScheduler) Jobs() int { return len(j.cronScheduler.Entries()) }

func (j *SyncScheduler) Start() {
	if j.Jobs() == 0 {
		return
	}
	j.cronScheduler.Start()
	log.Printf("sync scheduler started with %d job(s)", j.Jobs())
}

// Stop stops scheduling and waits for running jobs or ctx, whichever ends first.
func (j *SyncScheduler) Stop(ctx context.Context) {
	done := j.cronScheduler.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Printf("sync scheduler: stop: %v", ctx.Err())
	}
}

// RunCalendar syncs the whole team's schedules to Google Calendar.
func (j *SyncScheduler) RunCalendar() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	n, err := j.syncer.SyncCalendar(ctx, "", dom.ViewTeam)
	report("calendar", n, err)
}

// RunSheets syncs every schedule to the configured spreadsheet.
func (j *SyncScheduler) RunSheets() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	n, err := j.syncer.SyncSheets(ctx, j.cfg.SpreadsheetID, j.cfg.SheetRange)
	report("sheets", n, err)
}

func report(job string, n service.Notification, err error) {
	if err != nil {
		log.Printf("scheduled %s sync: %s: %v", job, n.Message, err)
		return
	}
	log.Printf("scheduled %s sync: %s", job, n.Message)
}
