package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	clickmigrations "github.com/golang-migrate/migrate/v4/database/clickhouse"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"linktracker/internal/types"
)

//go:embed migrations/clickhouse/*.sql
var migrationsClickHouseFS embed.FS

const (
	clicksBufferSize = 1000
	clicksBatchSize  = 100
	clicksFlushEvery = 5 * time.Second
)

// ClickHouse exports recorded analytics entries in batches. Push never
// blocks the request path; entries are dropped when the buffer is full.
type ClickHouse struct {
	db           *sql.DB
	clicksBuffer chan types.AnalyticsEntry
	batchSize    int
	flushEvery   time.Duration
	flush        func(context.Context, []types.AnalyticsEntry) error
	done         chan struct{}
	started      bool
}

type ClickHouseOptions struct {
	Addr     string
	User     string
	Password string
	Database string
}

func ConnectClickHouse(ctx context.Context, opts ClickHouseOptions) (*ClickHouse, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{opts.Addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.User,
			Password: opts.Password,
		},
		DialTimeout: time.Second * 30,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	c := newClickSink(clicksBatchSize, clicksFlushEvery, nil)
	c.db = conn
	c.flush = c.recordClicks

	if err := c.runMigrations(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return c, nil
}

func newClickSink(batchSize int, flushEvery time.Duration, flush func(context.Context, []types.AnalyticsEntry) error) *ClickHouse {
	return &ClickHouse{
		clicksBuffer: make(chan types.AnalyticsEntry, clicksBufferSize),
		batchSize:    batchSize,
		flushEvery:   flushEvery,
		flush:        flush,
		done:         make(chan struct{}),
	}
}

func (c *ClickHouse) runMigrations() error {
	d, err := iofs.New(migrationsClickHouseFS, "migrations/clickhouse")
	if err != nil {
		return err
	}

	driver, err := clickmigrations.WithInstance(c.db, &clickmigrations.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance(
		"iofs", d,
		"clickhouse", driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply clickhouse migrations: %w", err)
	}

	slog.Info("ClickHouse migrations applied successfully")
	return nil
}

// Start runs the batching worker until ctx is done. Whatever is still
// buffered at that point is flushed once more before the worker exits.
func (c *ClickHouse) Start(ctx context.Context) {
	c.started = true
	go c.worker(ctx)
}

func (c *ClickHouse) worker(ctx context.Context) {
	defer close(c.done)

	var buffer []types.AnalyticsEntry
	ticker := time.NewTicker(c.flushEvery)
	defer ticker.Stop()

	for {
		select {
		case entry := <-c.clicksBuffer:
			buffer = append(buffer, entry)
			if len(buffer) >= c.batchSize {
				c.flushBatch(ctx, buffer)
				buffer = nil
			}
		case <-ticker.C:
			if len(buffer) > 0 {
				c.flushBatch(ctx, buffer)
				buffer = nil
			}
		case <-ctx.Done():
		drain:
			for {
				select {
				case entry := <-c.clicksBuffer:
					buffer = append(buffer, entry)
				default:
					break drain
				}
			}
			if len(buffer) > 0 {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				c.flushBatch(flushCtx, buffer)
				cancel()
			}
			return
		}
	}
}

func (c *ClickHouse) flushBatch(ctx context.Context, batch []types.AnalyticsEntry) {
	if err := c.flush(ctx, batch); err != nil {
		slog.Warn("RecordClicks error", "error", err, "batch", len(batch))
	}
}

func (c *ClickHouse) recordClicks(ctx context.Context, clicks []types.AnalyticsEntry) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO clicks (id, link_id, latitude, longitude, ip_address, user_agent,
		country, city, referrer, device_type, browser, os, clicked_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range clicks {
		_, err = stmt.ExecContext(ctx, e.ID, e.LinkID, e.Latitude, e.Longitude, e.IPAddress, e.UserAgent,
			e.Country, e.City, e.Referrer, e.DeviceType, e.Browser, e.OS, e.Timestamp)
		if err != nil {
			slog.Error("failed to exec insert for click", "error", err, "entry_id", e.ID)
			continue
		}
	}
	return tx.Commit()
}

func (c *ClickHouse) Push(entry types.AnalyticsEntry) {
	select {
	case c.clicksBuffer <- entry:
	default:
		slog.Warn("Analytics buffer full, dropping click data", "link_id", entry.LinkID)
	}
}

// Close waits for a started worker to finish, so cancel its context first.
func (c *ClickHouse) Close() error {
	if c.started {
		<-c.done
	}
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
