package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Joshcode41/todo-app/internal/config"
	"github.com/Joshcode41/todo-app/internal/repo"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	logger *log.Logger
	pg     *pgxpool.Pool
	sqlite *sqlx.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}
	goose.SetLogger(logger)

	todoRepo, err := a.openStore()
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			a.closeStores()
			return nil, err
		}
		a.redis = rdb
		logger.Info("redis list cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.DefaultTTL.Duration())
	}

	a.router = newRouter(cfg, todoRepo, a.redis, logger)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.closeStores()
	return nil
}

func (a *App) closeStores() {
	if a.pg != nil {
		a.pg.Close()
	}
	if a.sqlite != nil {
		_ = a.sqlite.Close()
	}
}

// openStore connects the configured driver and applies migrations.
func (a *App) openStore() (repo.TodoRepo, error) {
	switch a.cfg.Store.Driver {
	case config.DriverPostgres:
		if err := runPostgresMigrations(a.cfg.PG.DSN); err != nil {
			return nil, err
		}
		pool, err := newPostgres(a.cfg.PG.DSN)
		if err != nil {
			return nil, err
		}
		a.pg = pool
		a.logger.Info("store ready", "driver", config.DriverPostgres)
		return repo.NewPGTodoRepo(pool), nil
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(a.cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(db.DB, "sqlite3"); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.sqlite = db
		a.logger.Info("store ready", "driver", config.DriverSQLite, "path", a.cfg.Store.SQLitePath)
		return repo.NewSQLiteTodoRepo(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
	}
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
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

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
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

func runPostgresMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	return repo.Migrate(db, "postgres")
}

func newRouter(cfg config.Config, todoRepo repo.TodoRepo, rdb *redis.Client, logger *log.Logger) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, todoRepo, rdb, logger)
	return r
}
