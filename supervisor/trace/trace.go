// Package trace provides an opt-in SQLite-backed audit trail for the raw
// frames a Supervisor writes to and reads from its child process (§9
// "Design Notes" — trace sinks are explicitly out of the core protocol but
// useful for debugging pipe-mode sessions after the fact).
//
// Usage:
//
//	store, err := trace.Open("session.db")
//	...
//	defer store.Close()
//	sup.SetTraceSink(store)
package trace

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/chrobotgo/chrobot/supervisor"
)

// Schema for the frame_trace table. session_id distinguishes the rows of one
// Store (one Open call) from another when a single database file outlives
// several supervisor runs (e.g. a developer appending to the same trace.db).
const Schema = `
CREATE TABLE IF NOT EXISTS frame_trace (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	direction TEXT NOT NULL,
	data TEXT NOT NULL,
	at_unix_us INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_frame_trace_at ON frame_trace(at_unix_us);
CREATE INDEX IF NOT EXISTS idx_frame_trace_session ON frame_trace(session_id);
`

// Default flush policy, used when Options leaves a field at its zero value.
const (
	DefaultBatchSize     = 64
	DefaultFlushInterval = time.Second
)

// Options tunes a Store's flush policy. A zero Options falls back to
// DefaultBatchSize and DefaultFlushInterval.
type Options struct {
	// BatchSize caps how many entries accumulate before a size-triggered
	// flush. Smaller values trade write throughput for a shorter window
	// in which an unflushed entry could be lost on a hard crash.
	BatchSize int
	// FlushInterval bounds how long an entry can sit unflushed when the
	// batch never reaches BatchSize (e.g. a quiet session).
	FlushInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = DefaultFlushInterval
	}
	return o
}

// Store persists supervisor.TraceEntry values to a SQLite table
// asynchronously. It implements supervisor.TraceSink.
//
// Grounded on trace/store.go's async buffered writer: a channel feeding a
// flush goroutine, so that Record never blocks the supervisor's single
// event loop. The batch size and flush cadence are caller-tunable via
// Options rather than fixed constants.
type Store struct {
	db        *sql.DB
	sessionID string
	ch        chan supervisor.TraceEntry
	done      chan struct{}
	once      sync.Once
	opts      Options
}

// Open creates (or appends to) a SQLite database at path and returns a
// ready-to-use Store using the default flush policy. The directory is
// created if missing.
func Open(path string) (*Store, error) {
	return OpenWithOptions(path, Options{})
}

// OpenWithOptions is Open with an explicit flush policy.
func OpenWithOptions(path string, opts Options) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("trace: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("trace: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: ping: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: schema: %w", err)
	}

	s := &Store{
		db:        db,
		sessionID: uuid.NewString(),
		ch:        make(chan supervisor.TraceEntry, 1024),
		done:      make(chan struct{}),
		opts:      opts.withDefaults(),
	}
	go s.flushLoop()
	return s, nil
}

// Record queues an entry for async persistence. Non-blocking; drops the
// entry and logs at debug level if the buffer is full, mirroring the
// supervisor's own drop-newest-on-full listener semantics (§4.1).
func (s *Store) Record(e supervisor.TraceEntry) {
	select {
	case s.ch <- e:
	default:
		slog.Debug("trace: buffer full, dropping entry", "direction", e.Direction)
	}
}

// Close drains the buffer, flushes it, and closes the underlying database.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.ch)
		<-s.done
	})
	return s.db.Close()
}

// flushLoop owns the pending-entry slice and is the only goroutine that
// writes to SQLite. It drains on whichever of two triggers fires first: the
// pending slice reaching opts.BatchSize, or opts.FlushInterval elapsing
// with at least one entry outstanding. Record's channel send is the only
// cross-goroutine handoff; everything past that point is single-threaded.
func (s *Store) flushLoop() {
	defer close(s.done)

	pending := make([]supervisor.TraceEntry, 0, s.opts.BatchSize)
	flushTick := time.NewTicker(s.opts.FlushInterval)
	defer flushTick.Stop()

	drain := func() {
		if len(pending) == 0 {
			return
		}
		s.flushBatch(pending)
		pending = pending[:0]
	}

	for {
		select {
		case entry, open := <-s.ch:
			if !open {
				drain()
				return
			}
			pending = append(pending, entry)
			if len(pending) >= s.opts.BatchSize {
				drain()
			}
		case <-flushTick.C:
			drain()
		}
	}
}

// flushBatch writes one batch inside a single transaction, so a crash
// mid-batch never leaves a partial set of rows visible to a reader.
func (s *Store) flushBatch(pending []supervisor.TraceEntry) {
	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("trace: begin tx", "error", err)
		return
	}

	insert, err := tx.Prepare(`INSERT INTO frame_trace (session_id, direction, data, at_unix_us) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		slog.Error("trace: prepare", "error", err)
		return
	}
	defer insert.Close()

	for _, entry := range pending {
		if _, err := insert.Exec(s.sessionID, entry.Direction, string(entry.Data), entry.At.UnixMicro()); err != nil {
			slog.Error("trace: insert", "error", err)
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("trace: commit", "error", err)
	}
}
