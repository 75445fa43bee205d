package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/ikeike55momo/schedule/internal/auth"
	"github.com/ikeike55momo/schedule/internal/bridge"
	"github.com/ikeike55momo/schedule/internal/config"
	"github.com/ikeike55momo/schedule/internal/jobs"
	"github.com/ikeike55momo/schedule/migrations"
)

type App struct {
	cfg    config.Config
	db     *pgxpool.Pool
	redis  *redis.Client
	bridge *bridge.Manager
	jobs   *jobs.SyncScheduler
	router *gin.Engine
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}

	db, err := OpenPostgres(cfg.PG.DSN)
	if err != nil {
		return nil, err
	}
	a.db = db

	rdb, err := OpenRedis(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.redis = rdb

	if err := Migrate(cfg.PG.DSN); err != nil {
		a.redis.Close()
		a.db.Close()
		return nil, err
	}

	a.bridge = bridge.New(bridge.Options{URL: cfg.Bridge.URL, Timeout: cfg.Bridge.Timeout.Duration()})
	svc := NewServices(db, rdb, a.bridge, cfg.Redis.DefaultTTL.Duration(), loc)

	a.jobs, err = jobs.NewSyncScheduler(svc.Sync, cfg.Sync, loc)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.jobs.Start()

	a.router = newRouter(cfg, svc, auth.NewStore(rdb, 24*time.Hour))
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	if a.jobs != nil {
		a.jobs.Stop(ctx)
	}
	if a.bridge != nil {
		if err := a.bridge.Close(); err != nil {
			log.Printf("bridge close: %v", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	return nil
}

// OpenPostgres connects a pool and pings it.
func OpenPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func OpenRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, svc Services, store *auth.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{HoverPath}}), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, svc, store)
	return r
}
