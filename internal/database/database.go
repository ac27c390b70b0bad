package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

// Handles groups the shared backends. Connections are opened once at startup
// and injected into the repositories; no package-level singletons.
type Handles struct {
	DB    *sql.DB
	Redis *redis.Client
}

func Connect(ctx context.Context) (*Handles, error) {
	db, err := openPostgres(ctx)
	if err != nil {
		return nil, err
	}

	rdb, err := openRedis(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ All datastores connected")
	return &Handles{DB: db, Redis: rdb}, nil
}

func (h *Handles) Close() {
	if h.DB != nil {
		h.DB.Close()
	}
	if h.Redis != nil {
		h.Redis.Close()
	}
	log.Println("🔌 Datastore connections closed")
}

func openPostgres(ctx context.Context) (*sql.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not configured")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %v", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %v", err)
	}

	log.Println("✅ Connected to PostgreSQL")
	return db, nil
}

func openRedis(ctx context.Context) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %v", err)
	}

	log.Println("✅ Connected to Redis")
	return rdb, nil
}
