package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ikeike55momo/schedule/internal/cache"
	"github.com/ikeike55momo/schedule/internal/repo"
	"github.com/ikeike55momo/schedule/internal/service"
)

// Services is the service layer shared by the API and teamctl.
type Services struct {
	Schedules   *service.ScheduleService
	Tasks       *service.TaskService
	TimeRecords *service.TimeRecordService
	Calendar    *service.CalendarService
	Sync        *service.SyncService
	Documents   *service.DocumentService
	Articles    *service.ArticleService
	Profiles    *service.ProfileService
	Admin       *service.AdminService
}

// Repos is the record store behind Services.
type Repos struct {
	Schedules   repo.ScheduleRepo
	Tasks       repo.TaskRepo
	TimeRecords repo.TimeRecordRepo
	Documents   repo.DocumentRepo
	Articles    repo.ArticleRepo
	Profiles    repo.ProfileRepo
	Admins      repo.AdminRepo
	Allowed     repo.AllowedUserRepo
}

// PGRepos returns the Postgres repositories over db.
func PGRepos(db *pgxpool.Pool) Repos {
	users := repo.NewPGUserRepo(db)
	return Repos{
		Schedules:   repo.NewPGScheduleRepo(db),
		Tasks:       repo.NewPGTaskRepo(db),
		TimeRecords: repo.NewPGTimeRecordRepo(db),
		Documents:   repo.NewPGDocumentRepo(db),
		Articles:    repo.NewPGArticleRepo(db),
		Profiles:    repo.NewPGProfileRepo(db),
		Admins:      users,
		Allowed:     users,
	}
}

// NewServices wires the Postgres repositories over db. With a nil rdb month
// grids are not cached.
func NewServices(db *pgxpool.Pool, rdb *redis.Client, b service.Invoker, ttl time.Duration, loc *time.Location) Services {
	var months service.MonthCache
	if rdb != nil {
		months = cache.NewCalendarCache(rdb, ttl)
	}
	return BuildServices(PGRepos(db), months, b, loc)
}

// BuildServices wires services over r. months may be nil.
func BuildServices(r Repos, months service.MonthCache, b service.Invoker, loc *time.Location) Services {
	return Services{
		Schedules:   service.NewScheduleService(r.Schedules, months, loc),
		Tasks:       service.NewTaskService(r.Tasks, months),
		TimeRecords: service.NewTimeRecordService(r.TimeRecords, months),
		Calendar:    service.NewCalendarService(r.Schedules, r.Tasks, r.TimeRecords, months, loc),
		Sync:        service.NewSyncService(r.Schedules, b, loc),
		Documents:   service.NewDocumentService(r.Documents),
		Articles:    service.NewArticleService(r.Articles),
		Profiles:    service.NewProfileService(r.Profiles),
		Admin:       service.NewAdminService(r.Admins, r.Allowed),
	}
}
