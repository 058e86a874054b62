package trace

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chrobotgo/chrobot/supervisor"
)

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/trace.db"

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Record(supervisor.TraceEntry{Direction: "out", Data: []byte(`{"id":2}`), At: time.Now()})
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM frame_trace`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestStore_OpenWithOptionsFlushesOnSmallBatch(t *testing.T) {
	store, err := OpenWithOptions(":memory:", Options{BatchSize: 2, FlushInterval: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	store.Record(supervisor.TraceEntry{Direction: "out", Data: []byte("a"), At: time.Now()})
	store.Record(supervisor.TraceEntry{Direction: "out", Data: []byte("b"), At: time.Now()})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var count int
		if err := store.db.QueryRow(`SELECT COUNT(*) FROM frame_trace`).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count == 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("size-triggered flush did not happen before the (disabled) ticker would have")
}

func TestStore_DropsOnFullBuffer(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	// Fill past capacity; Record must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 2000; i++ {
			store.Record(supervisor.TraceEntry{Direction: "out", Data: []byte("x"), At: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Record blocked under buffer pressure")
	}
}
