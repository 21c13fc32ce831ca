package index

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_NewFileIndexed(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, contentDir, quietLogger(), func(kind, path string) {
		mu.Lock()
		events = append(events, kind+":"+path)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(contentDir, "new.md"), []byte(validPost), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("new.md")
		return cs != ""
	}, "new file was not indexed")

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "created:new.md" || e == "updated:new.md" {
				return true
			}
		}
		return false
	}, "no change event emitted for new file")
}

func TestWatcher_RemovedFileDeleted(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)
	_ = store.Write("bye.md", []byte(validPost))
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, db, store, contentDir, quietLogger(), nil)

	time.Sleep(100 * time.Millisecond)
	_ = os.Remove(filepath.Join(contentDir, "bye.md"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("bye.md")
		return cs == ""
	}, "removed file still indexed")
}

func TestWatcher_UndatedFileNotIndexed(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, db, store, contentDir, quietLogger(), nil)

	time.Sleep(100 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(contentDir, "bad.md"), []byte("---\ntitle: No Date\n---\nx\n"), 0o644)

	// Give the watcher a moment; the file must stay out of the index.
	time.Sleep(500 * time.Millisecond)
	if cs, _ := db.GetChecksum("bad.md"); cs != "" {
		t.Error("undated file must not be indexed by the watcher")
	}
}
